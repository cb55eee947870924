// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/pflag"

	"github.com/luxfi/lpvm/host"
	"github.com/luxfi/lpvm/vms/liquiditypool/config"
)

const (
	HTTPAddressKey     = "http-address"
	GRPCAddressKey     = "grpc-address"
	AllowedOriginsKey  = "http-allowed-origins"
	ChainIDKey         = "chain-id"
	AddressHRPKey      = "address-hrp"
	BondedDenomKey     = "bonded-denom"
	ContractConfigKey  = "contract-config"
	AdminKey           = "admin"
	TotalSupplyKey     = "total-supply"
	DailyLimitBPKey    = "daily-limit-bp"
	PoolBalanceKey     = "pool-balance"
	WrappedTokensKey   = "wrapped-token"
	StargateQueriesKey = "stargate-queries"
)

var errInvalidWrappedToken = errors.New("wrapped token must be <wrapped>=<chainID>/<contract>")

func AddFlags(flags *pflag.FlagSet) {
	defaults := host.DefaultConfig()
	flags.String(HTTPAddressKey, "127.0.0.1:9650", "Address of the JSON-RPC and metrics server")
	flags.String(GRPCAddressKey, "127.0.0.1:9090", "Address of the registry gRPC server")
	flags.StringSlice(AllowedOriginsKey, nil, "Origins allowed to make cross-origin API calls. The API is unauthenticated, so none are allowed by default")
	flags.String(ChainIDKey, defaults.ChainID, "Chain ID reported to the contract")
	flags.String(AddressHRPKey, defaults.AddressHRP, "Bech32 prefix of account addresses")
	flags.String(BondedDenomKey, defaults.BondedDenom, "Bonded denom of the chain, empty to make it unavailable")
	flags.String(ContractConfigKey, "", "JSON runtime configuration of the contract")
	flags.String(AdminKey, "", "Admin address, derived from the chain ID if empty")
	flags.String(TotalSupplyKey, "0", "Total supply of the native token in base units")
	flags.Uint64(DailyLimitBPKey, config.DefaultDailyLimitBP, "Daily sale cap in basis points of total supply")
	flags.String(PoolBalanceKey, "0", "Native tokens minted to the pool at startup")
	flags.StringSlice(WrappedTokensKey, nil, "Approved wrapped token as <wrapped>=<chainID>/<contract>")
	flags.Bool(StargateQueriesKey, defaults.StargateQueries, "Accept stargate query envelopes")
}

// WrappedToken is a wrapped token registered and approved at startup.
type WrappedToken struct {
	Wrapped         string
	ChainID         string
	ContractAddress string
}

type Config struct {
	HTTPAddress    string
	GRPCAddress    string
	AllowedOrigins []string
	Host           host.Config
	Contract       config.Config
	Admin          string
	TotalSupply    *uint256.Int
	DailyLimitBP   uint64
	PoolBalance    *uint256.Int
	WrappedTokens  []WrappedToken
}

func parseWrappedToken(s string) (WrappedToken, error) {
	wrapped, source, ok := strings.Cut(s, "=")
	if !ok {
		return WrappedToken{}, fmt.Errorf("%w: %q", errInvalidWrappedToken, s)
	}
	chainID, contract, ok := strings.Cut(source, "/")
	if !ok || wrapped == "" || chainID == "" || contract == "" {
		return WrappedToken{}, fmt.Errorf("%w: %q", errInvalidWrappedToken, s)
	}
	return WrappedToken{
		Wrapped:         wrapped,
		ChainID:         chainID,
		ContractAddress: contract,
	}, nil
}

func getAmount(flags *pflag.FlagSet, key string) (*uint256.Int, error) {
	str, err := flags.GetString(key)
	if err != nil {
		return nil, err
	}
	v, err := uint256.FromDecimal(str)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", key, str, err)
	}
	return v, nil
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	httpAddress, err := flags.GetString(HTTPAddressKey)
	if err != nil {
		return nil, err
	}
	grpcAddress, err := flags.GetString(GRPCAddressKey)
	if err != nil {
		return nil, err
	}
	allowedOrigins, err := flags.GetStringSlice(AllowedOriginsKey)
	if err != nil {
		return nil, err
	}

	hostConfig := host.DefaultConfig()
	if hostConfig.ChainID, err = flags.GetString(ChainIDKey); err != nil {
		return nil, err
	}
	if hostConfig.AddressHRP, err = flags.GetString(AddressHRPKey); err != nil {
		return nil, err
	}
	if hostConfig.BondedDenom, err = flags.GetString(BondedDenomKey); err != nil {
		return nil, err
	}
	if hostConfig.StargateQueries, err = flags.GetBool(StargateQueriesKey); err != nil {
		return nil, err
	}

	contractConfigStr, err := flags.GetString(ContractConfigKey)
	if err != nil {
		return nil, err
	}
	contractConfig, err := config.Parse([]byte(contractConfigStr))
	if err != nil {
		return nil, err
	}

	admin, err := flags.GetString(AdminKey)
	if err != nil {
		return nil, err
	}
	if admin == "" {
		admin, err = host.DeriveAddress(hostConfig.AddressHRP, hostConfig.ChainID+"/admin")
		if err != nil {
			return nil, err
		}
	}

	totalSupply, err := getAmount(flags, TotalSupplyKey)
	if err != nil {
		return nil, err
	}
	poolBalance, err := getAmount(flags, PoolBalanceKey)
	if err != nil {
		return nil, err
	}
	dailyLimitBP, err := flags.GetUint64(DailyLimitBPKey)
	if err != nil {
		return nil, err
	}

	tokenStrs, err := flags.GetStringSlice(WrappedTokensKey)
	if err != nil {
		return nil, err
	}
	tokens := make([]WrappedToken, len(tokenStrs))
	for i, s := range tokenStrs {
		if tokens[i], err = parseWrappedToken(s); err != nil {
			return nil, err
		}
	}

	return &Config{
		HTTPAddress:    httpAddress,
		GRPCAddress:    grpcAddress,
		AllowedOrigins: allowedOrigins,
		Host:           hostConfig,
		Contract:       contractConfig,
		Admin:          admin,
		TotalSupply:    totalSupply,
		DailyLimitBP:   dailyLimitBP,
		PoolBalance:    poolBalance,
		WrappedTokens:  tokens,
	}, nil
}
