// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

func TestDefaultTierBudget(t *testing.T) {
	// 10 million tokens at $0.025 each complete a $250,000 tier.
	require.Equal(t, uint64(10_000_000), DefaultTokensPerTier)
	require.Equal(t, uint64(250_000_000_000), DefaultTokensPerTier*DefaultBasePriceUSD)
}

func TestParseDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := Parse(nil)
	require.NoError(err)
	require.Equal(DefaultConfig(), cfg)
	require.Equal(bridge.GRPC, cfg.BridgeTransport)
	require.Equal("/inference.inference.Query", cfg.QueryService)
}

func TestParseOverrides(t *testing.T) {
	require := require.New(t)

	cfg, err := Parse([]byte(`{"bridgeTransport":"stargate"}`))
	require.NoError(err)
	require.Equal(bridge.Stargate, cfg.BridgeTransport)
	require.Equal(bridge.DefaultQueryService, cfg.QueryService)
}

func TestParseInvalid(t *testing.T) {
	require := require.New(t)

	_, err := Parse([]byte(`{"bridgeTransport":"ibc"}`))
	require.ErrorIs(err, ErrInvalidTransport)

	_, err = Parse([]byte(`{"queryService":"inference.Query"}`))
	require.ErrorIs(err, ErrInvalidService)

	_, err = Parse([]byte(`{`))
	require.Error(err)
}
