// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/luxfi/lpvm/utils/units"
	"github.com/luxfi/lpvm/vms/liquiditypool/pricing"
)

const secondsPerDay = 24 * 60 * 60

// Config is the sale configuration and cumulative counters.
type Config struct {
	Admin        string      `serialize:"true" json:"admin"`
	NativeDenom  string      `serialize:"true" json:"native_denom"`
	DailyLimitBP uint64      `serialize:"true" json:"daily_limit_bp"`
	IsPaused     bool        `serialize:"true" json:"is_paused"`
	TotalSupply  uint256.Int `serialize:"true" json:"total_supply"`
	TotalSold    uint256.Int `serialize:"true" json:"total_sold"`
}

// Verify checks the invariants that hold for every stored Config.
func (c *Config) Verify() error {
	if c.DailyLimitBP == 0 || c.DailyLimitBP > units.BasisPoints {
		return fmt.Errorf("%w: daily_limit_bp %d not in [1, %d]", ErrInvalidRecord, c.DailyLimitBP, units.BasisPoints)
	}
	return nil
}

// PricingConfig holds the tier schedule parameters.
type PricingConfig struct {
	BasePriceUSD   uint256.Int `serialize:"true" json:"base_price_usd"`
	TokensPerTier  uint256.Int `serialize:"true" json:"tokens_per_tier"`
	TierMultiplier uint256.Int `serialize:"true" json:"tier_multiplier"`
}

// Params returns copies of the schedule parameters.
func (p *PricingConfig) Params() pricing.Params {
	return pricing.Params{
		BasePrice:      p.BasePriceUSD.Clone(),
		TokensPerTier:  p.TokensPerTier.Clone(),
		TierMultiplier: p.TierMultiplier.Clone(),
	}
}

// DailyStats tracks the USD sold during the current UTC day.
type DailyStats struct {
	CurrentDay uint64      `serialize:"true" json:"current_day"`
	SoldToday  uint256.Int `serialize:"true" json:"sold_today"`
}

// Rollover returns the stats as seen on [day]. The sold counter restarts
// whenever the day differs from the recorded one.
func (d DailyStats) Rollover(day uint64) DailyStats {
	if d.CurrentDay == day {
		return d
	}
	return DailyStats{CurrentDay: day}
}

// Day returns the UTC day number of [t].
func Day(t time.Time) uint64 {
	unix := max(t.Unix(), 0)
	return uint64(unix) / secondsPerDay
}
