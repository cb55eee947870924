// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	stdmath "math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/lpvm/utils/math"
)

var (
	defaultBase       = uint256.NewInt(25_000)
	defaultPerTier    = uint256.NewInt(10_000_000)
	defaultMultiplier = uint256.NewInt(1300)
)

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

func TestTier(t *testing.T) {
	tests := []struct {
		name          string
		usdSold       *uint256.Int
		tokensPerTier *uint256.Int
		basePrice     *uint256.Int
		expected      uint32
	}{
		{
			name:          "nothing sold",
			usdSold:       u(0),
			tokensPerTier: defaultPerTier,
			basePrice:     defaultBase,
			expected:      0,
		},
		{
			name:          "just below first boundary",
			usdSold:       u(249_999_999_999),
			tokensPerTier: defaultPerTier,
			basePrice:     defaultBase,
			expected:      0,
		},
		{
			name:          "exactly at first boundary",
			usdSold:       u(250_000_000_000),
			tokensPerTier: defaultPerTier,
			basePrice:     defaultBase,
			expected:      1,
		},
		{
			name:          "inside third tier",
			usdSold:       u(700_000_000_000),
			tokensPerTier: defaultPerTier,
			basePrice:     defaultBase,
			expected:      2,
		},
		{
			name:          "zero tokens per tier",
			usdSold:       u(700_000_000_000),
			tokensPerTier: u(0),
			basePrice:     defaultBase,
			expected:      0,
		},
		{
			name:          "zero base price",
			usdSold:       u(700_000_000_000),
			tokensPerTier: defaultPerTier,
			basePrice:     u(0),
			expected:      0,
		},
		{
			name:          "tier size overflows",
			usdSold:       u(700_000_000_000),
			tokensPerTier: math.MaxUint128,
			basePrice:     u(2),
			expected:      0,
		},
		{
			name:          "quotient saturates",
			usdSold:       math.MaxUint128,
			tokensPerTier: u(1),
			basePrice:     u(1),
			expected:      stdmath.MaxUint32,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, Tier(test.usdSold, test.tokensPerTier, test.basePrice))
		})
	}
}

func TestTierMonotonic(t *testing.T) {
	require := require.New(t)

	step := u(37_000_000_001)
	sold := u(0)
	last := uint32(0)
	for i := 0; i < 200; i++ {
		tier := Tier(sold, defaultPerTier, defaultBase)
		require.GreaterOrEqual(tier, last)
		last = tier
		sold = new(uint256.Int).Add(sold, step)
	}
	require.Positive(last)
}

func TestPriceCompoundsWithFloor(t *testing.T) {
	require := require.New(t)

	expected := []uint64{25_000, 32_500, 42_250, 54_925, 71_402, 92_822}
	for tier, want := range expected {
		require.Equal(want, Price(defaultBase, uint32(tier), defaultMultiplier).Uint64(), "tier %d", tier)
	}

	// The closed form 25000 * 1.3^5 would round to 92823.
	require.NotEqual(uint64(92_823), Price(defaultBase, 5, defaultMultiplier).Uint64())
}

func TestPriceNonDecreasing(t *testing.T) {
	require := require.New(t)

	for _, multiplier := range []uint64{1000, 1001, 1300, 2500} {
		last := Price(defaultBase, 0, u(multiplier))
		for tier := uint32(1); tier < 64; tier++ {
			price := Price(defaultBase, tier, u(multiplier))
			require.False(price.Lt(last), "multiplier %d tier %d", multiplier, tier)
			last = price
		}
	}
}

func TestPriceFixedPoints(t *testing.T) {
	require := require.New(t)

	// A 1.0x multiplier never moves the price.
	require.Equal(uint64(25_000), Price(defaultBase, stdmath.MaxUint32, u(1000)).Uint64())

	// A discounting multiplier eventually floors to zero and stays there.
	require.Equal(uint64(12_500), Price(defaultBase, 1, u(500)).Uint64())
	require.True(Price(defaultBase, stdmath.MaxUint32, u(500)).IsZero())

	// Overflowing steps keep the previous price.
	huge := new(uint256.Int).Div(math.MaxUint128, u(1000))
	require.Equal(huge, Price(huge, 5, defaultMultiplier))
	require.Equal(huge, Price(huge, stdmath.MaxUint32, defaultMultiplier))
}

func TestTokensForUSD(t *testing.T) {
	tests := []struct {
		name     string
		usd      *uint256.Int
		price    *uint256.Int
		expected uint64
	}{
		{
			name:     "ten dollars at base price",
			usd:      u(10_000_000),
			price:    defaultBase,
			expected: 400_000_000,
		},
		{
			name:     "floors",
			usd:      u(1),
			price:    u(3),
			expected: 333_333,
		},
		{
			name:     "zero price",
			usd:      u(10_000_000),
			price:    u(0),
			expected: 0,
		},
		{
			name:     "scaling overflows",
			usd:      math.MaxUint128,
			price:    defaultBase,
			expected: 0,
		},
		{
			name:     "dust",
			usd:      u(1),
			price:    u(2_000_000),
			expected: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, TokensForUSD(test.usd, test.price).Uint64())
		})
	}
}

func TestNextTierAt(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(250_000_000_000), NextTierAt(defaultPerTier, defaultBase, 0).Uint64())
	require.Equal(uint64(750_000_000_000), NextTierAt(defaultPerTier, defaultBase, 2).Uint64())
	require.True(NextTierAt(math.MaxUint128, u(2), 0).IsZero())
	require.True(NextTierAt(math.MaxUint128, u(1), 1).IsZero())
}

func TestDailyLimit(t *testing.T) {
	require := require.New(t)

	supply := u(120_000_000_000_000_000)
	tokens, err := DailyLimitTokens(supply, 100)
	require.NoError(err)
	require.Equal(uint64(1_200_000_000_000_000), tokens.Uint64())

	limit, err := DailyLimitUSD(supply, 100, defaultBase)
	require.NoError(err)
	require.Equal("30000000000000000000", limit.Dec())

	_, err = DailyLimitTokens(math.MaxUint128, 10_000)
	require.ErrorIs(err, ErrInvalidDailyLimit)

	_, err = DailyLimitUSD(math.MaxUint128, 1, defaultBase)
	require.ErrorIs(err, ErrInvalidDailyLimit)

	limit, err = DailyLimitUSD(u(0), 100, defaultBase)
	require.NoError(err)
	require.True(limit.IsZero())
}

func TestQuote(t *testing.T) {
	require := require.New(t)

	params := Params{
		BasePrice:      defaultBase,
		TokensPerTier:  defaultPerTier,
		TierMultiplier: defaultMultiplier,
	}

	q := params.Quote(u(0), u(10_000_000))
	require.Equal(uint32(0), q.Tier)
	require.Equal(uint64(25_000), q.Price.Uint64())
	require.Equal(uint64(400_000_000), q.Tokens.Uint64())

	q = params.Quote(u(250_000_000_000), u(32_500))
	require.Equal(uint32(1), q.Tier)
	require.Equal(uint64(32_500), q.Price.Uint64())
	require.Equal(uint64(1_000_000), q.Tokens.Uint64())
}
