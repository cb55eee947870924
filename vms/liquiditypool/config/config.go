// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines configuration types for the liquidity pool contract.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/lpvm/utils/units"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

// Creation defaults.
const (
	DefaultDailyLimitBP   uint64 = 100        // 1% of total supply per day
	DefaultBasePriceUSD   uint64 = 25_000     // $0.025 per token
	DefaultTokensPerTier  uint64 = 10_000_000 // 10 million tokens, $250,000 per tier at the base price
	DefaultTierMultiplier uint64 = 1300       // 1.3x
	DefaultTotalSupply    uint64 = 0

	MaxDailyLimitBP = units.BasisPoints

	// FallbackNativeDenom is used when the chain's bonded denom is unavailable.
	FallbackNativeDenom = "nicoin"
)

var (
	ErrInvalidTransport = errors.New("invalid bridge transport")
	ErrInvalidService   = errors.New("invalid query service")
)

// Config contains runtime parameters of the contract.
type Config struct {
	// BridgeTransport selects the envelope used by the purchase path and by
	// AddPaymentToken: "grpc" or "stargate".
	BridgeTransport string `json:"bridgeTransport"`
	// QueryService is the method path prefix of the registry module.
	QueryService string `json:"queryService"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BridgeTransport: bridge.GRPC,
		QueryService:    bridge.DefaultQueryService,
	}
}

// Parse returns the configuration in [b] applied over the defaults. Empty
// input yields the defaults.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(b) > 0 {
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, cfg.Verify()
}

// Verify checks the configuration.
func (c Config) Verify() error {
	switch c.BridgeTransport {
	case bridge.GRPC, bridge.Stargate:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTransport, c.BridgeTransport)
	}
	if !strings.HasPrefix(c.QueryService, "/") || len(c.QueryService) < 2 {
		return fmt.Errorf("%w: %q", ErrInvalidService, c.QueryService)
	}
	return nil
}
