// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quote

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/spf13/pflag"

	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/config"
	"github.com/luxfi/lpvm/vms/liquiditypool/pricing"
)

const (
	USDAmountKey      = "usd-amount"
	TotalSoldKey      = "total-sold"
	BasePriceKey      = "base-price-usd"
	TokensPerTierKey  = "tokens-per-tier"
	TierMultiplierKey = "tier-multiplier"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(USDAmountKey, "1000000", "Micro-USD amount to quote")
	flags.String(TotalSoldKey, "0", "Cumulative micro-USD sold before the purchase")
	flags.String(BasePriceKey, uint256.NewInt(config.DefaultBasePriceUSD).Dec(), "Price of tier 0 in micro-USD per token")
	flags.String(TokensPerTierKey, uint256.NewInt(config.DefaultTokensPerTier).Dec(), "Tokens sold per tier at the base price")
	flags.String(TierMultiplierKey, uint256.NewInt(config.DefaultTierMultiplier).Dec(), "Per-tier price multiplier in permille")
}

type Config struct {
	USDAmount *uint256.Int
	TotalSold *uint256.Int
	Params    pricing.Params
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	values := make(map[string]*uint256.Int)
	for _, key := range []string{USDAmountKey, TotalSoldKey, BasePriceKey, TokensPerTierKey, TierMultiplierKey} {
		str, err := flags.GetString(key)
		if err != nil {
			return nil, err
		}
		v, err := uint256.FromDecimal(str)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", key, str, err)
		}
		if err := math.Check128(v); err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", key, str, err)
		}
		values[key] = v
	}

	return &Config{
		USDAmount: values[USDAmountKey],
		TotalSold: values[TotalSoldKey],
		Params: pricing.Params{
			BasePrice:      values[BasePriceKey],
			TokensPerTier:  values[TokensPerTierKey],
			TierMultiplier: values[TierMultiplierKey],
		},
	}, nil
}
