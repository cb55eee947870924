// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
)

func testConfig() *Config {
	cfg := &Config{
		Admin:        "gonka1admin",
		NativeDenom:  "ngonka",
		DailyLimitBP: 100,
	}
	cfg.TotalSupply.SetUint64(120_000_000_000_000_000)
	cfg.TotalSold.SetUint64(42)
	return cfg
}

func TestConfigRoundTrip(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	want := testConfig()
	require.NoError(s.PutConfig(want))

	got, err := s.GetConfig()
	require.NoError(err)
	require.Equal(want, got)
}

func TestPricingConfigAndStats(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())

	pricingCfg := &PricingConfig{}
	pricingCfg.BasePriceUSD.SetUint64(25_000)
	pricingCfg.TokensPerTier.SetUint64(10_000_000)
	pricingCfg.TierMultiplier.SetUint64(1300)
	require.NoError(s.PutPricingConfig(pricingCfg))

	stats := &DailyStats{CurrentDay: 19_000}
	stats.SoldToday.SetUint64(7)
	require.NoError(s.PutDailyStats(stats))

	gotPricing, err := s.GetPricingConfig()
	require.NoError(err)
	require.Equal(pricingCfg, gotPricing)

	params := gotPricing.Params()
	require.Equal(uint64(25_000), params.BasePrice.Uint64())
	params.BasePrice.SetUint64(1)
	require.Equal(uint64(25_000), gotPricing.BasePriceUSD.Uint64())

	gotStats, err := s.GetDailyStats()
	require.NoError(err)
	require.Equal(stats, gotStats)
}

func TestMissingRecord(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	_, err := s.GetConfig()
	require.ErrorIs(err, ErrMissingRecord)
	_, err = s.GetPricingConfig()
	require.ErrorIs(err, ErrMissingRecord)
	_, err = s.GetDailyStats()
	require.ErrorIs(err, ErrMissingRecord)
}

func TestPutConfigRejectsInvalidBasisPoints(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	s := New(db)
	valid := testConfig()
	require.NoError(s.PutConfig(valid))
	before, err := db.Get(configKey)
	require.NoError(err)

	for _, bp := range []uint64{0, 10_001} {
		invalid := testConfig()
		invalid.DailyLimitBP = bp
		require.ErrorIs(s.PutConfig(invalid), ErrInvalidRecord)
	}

	after, err := db.Get(configKey)
	require.NoError(err)
	require.Equal(before, after)
}

func TestConfigEncodingIsStable(t *testing.T) {
	require := require.New(t)

	a, err := Codec.Marshal(CodecVersion, testConfig())
	require.NoError(err)
	b, err := Codec.Marshal(CodecVersion, testConfig())
	require.NoError(err)
	require.Equal(a, b)
}

func TestRollover(t *testing.T) {
	require := require.New(t)

	stats := DailyStats{CurrentDay: 10}
	stats.SoldToday.SetUint64(500)

	same := stats.Rollover(10)
	require.Equal(uint64(500), same.SoldToday.Uint64())

	next := stats.Rollover(11)
	require.Equal(uint64(11), next.CurrentDay)
	require.True(next.SoldToday.IsZero())

	// Rollover is computed, the receiver is unchanged.
	require.Equal(uint64(10), stats.CurrentDay)
	require.Equal(uint64(500), stats.SoldToday.Uint64())

	// Moving backwards also restarts the counter.
	prev := stats.Rollover(9)
	require.Equal(uint64(9), prev.CurrentDay)
	require.True(prev.SoldToday.IsZero())
}

func TestDay(t *testing.T) {
	require := require.New(t)

	require.Equal(uint64(0), Day(time.Unix(86_399, 0)))
	require.Equal(uint64(1), Day(time.Unix(86_400, 0)))
	require.Equal(uint64(0), Day(time.Unix(-5, 0)))
}

func TestWideAmountsRoundTrip(t *testing.T) {
	require := require.New(t)

	s := New(memdb.New())
	cfg := testConfig()
	maxUint128 := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	maxUint128.SubUint64(maxUint128, 1)
	cfg.TotalSupply = *maxUint128
	cfg.TotalSold = *maxUint128
	require.NoError(s.PutConfig(cfg))

	got, err := s.GetConfig()
	require.NoError(err)
	require.True(maxUint128.Eq(&got.TotalSupply))
	require.True(maxUint128.Eq(&got.TotalSold))
}
