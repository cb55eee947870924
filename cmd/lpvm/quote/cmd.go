// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quote

import (
	"encoding/json"

	"github.com/spf13/cobra"

	lpjson "github.com/luxfi/lpvm/utils/json"
	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/pricing"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "quote",
		Short: "Prices a purchase offline",
		RunE:  quoteFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

// Reply is the printed quote.
type Reply struct {
	Tier          uint32         `json:"tier"`
	PriceUSD      lpjson.Uint256 `json:"priceUSD"`
	Tokens        lpjson.Uint256 `json:"tokens"`
	NextTierAt    lpjson.Uint256 `json:"nextTierAt"`
	NextTierPrice lpjson.Uint256 `json:"nextTierPrice"`
}

// Run prices [config.USDAmount].
func Run(config *Config) *Reply {
	quote := config.Params.Quote(config.TotalSold, config.USDAmount)
	return &Reply{
		Tier:          quote.Tier,
		PriceUSD:      lpjson.NewUint256(quote.Price),
		Tokens:        lpjson.NewUint256(quote.Tokens),
		NextTierAt:    lpjson.NewUint256(pricing.NextTierAt(config.Params.TokensPerTier, config.Params.BasePrice, quote.Tier)),
		NextTierPrice: lpjson.NewUint256(config.Params.Price(math.SaturatingAdd(quote.Tier, 1))),
	}
}

func quoteFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(c.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(Run(config))
}
