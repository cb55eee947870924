// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package pricing implements the tiered price schedule of the sale.
//
// Prices are in micro-USD per whole token. Token amounts use 6 decimals.
// The price of tier n is the base price compounded n times by the tier
// multiplier, flooring after every step.
package pricing

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/holiman/uint256"

	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/utils/units"
)

var (
	ErrInvalidDailyLimit = errors.New("invalid daily limit")

	tokenUnit             = uint256.NewInt(units.Token)
	multiplierDenominator = uint256.NewInt(units.Permille)
	basisPointsDenom      = uint256.NewInt(units.BasisPoints)
)

// Params are the inputs of the price schedule.
type Params struct {
	BasePrice      *uint256.Int
	TokensPerTier  *uint256.Int
	TierMultiplier *uint256.Int
}

// Quote is the outcome of pricing a USD amount at the current tier.
type Quote struct {
	Tier   uint32
	Price  *uint256.Int
	Tokens *uint256.Int
}

// UsdPerTier returns the USD value that completes one tier.
func UsdPerTier(tokensPerTier, basePrice *uint256.Int) (*uint256.Int, error) {
	return math.Mul128(tokensPerTier, basePrice)
}

// Tier returns floor(usdSold / (tokensPerTier * basePrice)).
//
// Tier is 0 if the product is zero or overflows. Quotients that do not fit
// 32 bits saturate.
func Tier(usdSold, tokensPerTier, basePrice *uint256.Int) uint32 {
	perTier, err := UsdPerTier(tokensPerTier, basePrice)
	if err != nil || perTier.IsZero() {
		return 0
	}
	q := new(uint256.Int).Div(usdSold, perTier)
	if !q.IsUint64() || q.Uint64() > stdmath.MaxUint32 {
		return stdmath.MaxUint32
	}
	return uint32(q.Uint64())
}

// Price returns the per-token price of [tier].
//
// Each step computes floor(price * multiplier / 1000). A step that overflows
// keeps the previous price. Each step only depends on the previous price, so
// once a step leaves the price unchanged the loop can stop.
func Price(basePrice *uint256.Int, tier uint32, multiplier *uint256.Int) *uint256.Int {
	price := basePrice.Clone()
	for i := uint32(0); i < tier; i++ {
		next, err := math.Mul128(price, multiplier)
		if err != nil {
			break
		}
		next.Div(next, multiplierDenominator)
		if next.Eq(price) {
			break
		}
		price = next
	}
	return price
}

// TokensForUSD returns floor(usd * 1_000_000 / price).
//
// It returns 0 if price is 0 or if the scaling overflows.
func TokensForUSD(usd, price *uint256.Int) *uint256.Int {
	if price.IsZero() {
		return new(uint256.Int)
	}
	scaled, err := math.Mul128(usd, tokenUnit)
	if err != nil {
		return new(uint256.Int)
	}
	return scaled.Div(scaled, price)
}

// NextTierAt returns the cumulative USD sold at which tier+1 begins, or 0 on
// overflow.
func NextTierAt(tokensPerTier, basePrice *uint256.Int, tier uint32) *uint256.Int {
	perTier, err := UsdPerTier(tokensPerTier, basePrice)
	if err != nil {
		return new(uint256.Int)
	}
	at, err := math.Mul128(perTier, uint256.NewInt(uint64(tier)+1))
	if err != nil {
		return new(uint256.Int)
	}
	return at
}

// DailyLimitTokens returns floor(totalSupply * bp / 10000).
func DailyLimitTokens(totalSupply *uint256.Int, bp uint64) (*uint256.Int, error) {
	scaled, err := math.Mul128(totalSupply, uint256.NewInt(bp))
	if err != nil {
		return nil, fmt.Errorf("%w: daily_limit_bp %d: %w", ErrInvalidDailyLimit, bp, err)
	}
	return scaled.Div(scaled, basisPointsDenom), nil
}

// DailyLimitUSD returns the USD value that may be sold in one day at [price].
func DailyLimitUSD(totalSupply *uint256.Int, bp uint64, price *uint256.Int) (*uint256.Int, error) {
	tokens, err := DailyLimitTokens(totalSupply, bp)
	if err != nil {
		return nil, err
	}
	limit, err := math.Mul128(tokens, price)
	if err != nil {
		return nil, fmt.Errorf("%w: daily_limit_bp %d: %w", ErrInvalidDailyLimit, bp, err)
	}
	return limit, nil
}

// Tier returns the tier reached after [usdSold].
func (p Params) Tier(usdSold *uint256.Int) uint32 {
	return Tier(usdSold, p.TokensPerTier, p.BasePrice)
}

// Price returns the per-token price of [tier].
func (p Params) Price(tier uint32) *uint256.Int {
	return Price(p.BasePrice, tier, p.TierMultiplier)
}

// Quote prices [usdAmount] at the tier reached after [usdSold].
func (p Params) Quote(usdSold, usdAmount *uint256.Int) Quote {
	tier := p.Tier(usdSold)
	price := p.Price(tier)
	return Quote{
		Tier:   tier,
		Price:  price,
		Tokens: TokensForUSD(usdAmount, price),
	}
}
