// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package liquiditypool

import (
	"context"
	stdjson "encoding/json"
	"strings"

	"github.com/holiman/uint256"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/utils/json"
	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
	"github.com/luxfi/lpvm/vms/liquiditypool/pricing"
	"github.com/luxfi/lpvm/vms/liquiditypool/state"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

// Query never writes. Daily stats are rolled over in memory only.
func (c *Contract) Query(ctx context.Context, deps lpvm.Deps, env lpvm.Env, raw []byte) ([]byte, error) {
	msg, _, err := txs.ParseQueryMsg(raw)
	if err != nil {
		return nil, err
	}

	store := state.New(deps.DB)
	var reply any
	switch {
	case msg.Config != nil:
		reply, err = queryConfig(store)
	case msg.DailyStats != nil:
		reply, err = queryDailyStats(store, env)
	case msg.NativeBalance != nil:
		reply, err = queryNativeBalance(ctx, deps, env, store)
	case msg.PricingInfo != nil:
		reply, err = queryPricingInfo(store)
	case msg.CalculateTokens != nil:
		reply, err = queryCalculateTokens(store, msg.CalculateTokens)
	case msg.BlockHeight != nil:
		reply = txs.BlockHeightResponse{Height: env.Block.Height}
	case msg.TestBridgeValidation != nil:
		reply, err = c.testBridgeValidation(ctx, deps, msg.TestBridgeValidation.Cw20Contract)
	case msg.TestBridgeValidationStargate != nil:
		reply, err = c.testBridgeValidationStargate(ctx, deps, msg.TestBridgeValidationStargate.Cw20Contract)
	case msg.TestApprovedTokens != nil:
		reply, err = c.testApprovedTokens(ctx, deps)
	default:
		reply, err = c.testApprovedTokensStargate(ctx, deps)
	}
	if err != nil {
		return nil, err
	}
	return stdjson.Marshal(reply)
}

func queryConfig(store *state.Store) (*txs.ConfigResponse, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	return &txs.ConfigResponse{
		Admin:        cfg.Admin,
		NativeDenom:  cfg.NativeDenom,
		DailyLimitBP: json.Uint64(cfg.DailyLimitBP),
		IsPaused:     cfg.IsPaused,
		SaleState:    lpvm.SaleStateOf(cfg.IsPaused).String(),
		TotalSupply:  json.NewUint256(&cfg.TotalSupply),
		TotalSold:    json.NewUint256(&cfg.TotalSold),
	}, nil
}

// queryDailyStats reports the USD cap at the current price, the same cap a
// purchase is checked against. Limits that overflow are reported as zero.
func queryDailyStats(store *state.Store, env lpvm.Env) (*txs.DailyStatsResponse, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	pricingCfg, err := store.GetPricingConfig()
	if err != nil {
		return nil, err
	}
	stats, err := store.GetDailyStats()
	if err != nil {
		return nil, err
	}
	today := stats.Rollover(state.Day(env.Block.Time))

	params := pricingCfg.Params()
	price := params.Price(params.Tier(&cfg.TotalSold))

	limitTokens, err := pricing.DailyLimitTokens(&cfg.TotalSupply, cfg.DailyLimitBP)
	if err != nil {
		limitTokens = new(uint256.Int)
	}
	limitUSD, err := pricing.DailyLimitUSD(&cfg.TotalSupply, cfg.DailyLimitBP, price)
	if err != nil {
		limitUSD = new(uint256.Int)
	}
	return &txs.DailyStatsResponse{
		CurrentDay:       today.CurrentDay,
		SoldToday:        json.NewUint256(&today.SoldToday),
		DailyLimitTokens: json.NewUint256(limitTokens),
		DailyLimitUSD:    json.NewUint256(limitUSD),
		AvailableToday:   json.NewUint256(math.SaturatingSub128(limitUSD, &today.SoldToday)),
		TotalSupply:      json.NewUint256(&cfg.TotalSupply),
	}, nil
}

func queryNativeBalance(ctx context.Context, deps lpvm.Deps, env lpvm.Env, store *state.Store) (*txs.NativeBalanceResponse, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	funds, err := balance(ctx, deps, env, cfg.NativeDenom)
	if err != nil {
		return nil, err
	}
	return &txs.NativeBalanceResponse{
		Balance: txs.Coin{
			Denom:  cfg.NativeDenom,
			Amount: json.NewUint256(funds),
		},
	}, nil
}

func queryPricingInfo(store *state.Store) (*txs.PricingInfoResponse, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	pricingCfg, err := store.GetPricingConfig()
	if err != nil {
		return nil, err
	}

	params := pricingCfg.Params()
	tier := params.Tier(&cfg.TotalSold)
	nextTier := math.SaturatingAdd(tier, 1)
	return &txs.PricingInfoResponse{
		CurrentTier:     tier,
		CurrentPriceUSD: json.NewUint256(params.Price(tier)),
		TotalSold:       json.NewUint256(&cfg.TotalSold),
		TokensPerTier:   json.NewUint256(params.TokensPerTier),
		BasePriceUSD:    json.NewUint256(params.BasePrice),
		TierMultiplier:  json.NewUint256(params.TierMultiplier),
		NextTierAt:      json.NewUint256(pricing.NextTierAt(params.TokensPerTier, params.BasePrice, tier)),
		NextTierPrice:   json.NewUint256(params.Price(nextTier)),
	}, nil
}

func queryCalculateTokens(store *state.Store, msg *txs.CalculateTokensQuery) (*txs.TokenCalculationResponse, error) {
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	pricingCfg, err := store.GetPricingConfig()
	if err != nil {
		return nil, err
	}
	usd, err := amount("usd_amount", msg.UsdAmount)
	if err != nil {
		return nil, err
	}
	quote := pricingCfg.Params().Quote(&cfg.TotalSold, usd)
	return &txs.TokenCalculationResponse{
		Tokens:       json.NewUint256(quote.Tokens),
		CurrentPrice: json.NewUint256(quote.Price),
		CurrentTier:  quote.Tier,
	}, nil
}

// testBridgeValidation reports false for any failure.
func (c *Contract) testBridgeValidation(ctx context.Context, deps lpvm.Deps, cw20Contract string) (*txs.TestBridgeValidationResponse, error) {
	if !strings.HasPrefix(cw20Contract, bridge.CW20Prefix) {
		cw20Contract = bridge.CW20Prefix + cw20Contract
	}
	gateway, err := c.gateway(deps, bridge.GRPC)
	if err != nil {
		return nil, err
	}
	isValid, err := gateway.ValidateWrappedToken(ctx, cw20Contract)
	if err != nil {
		c.log.Debug("bridge validation failed",
			log.String("token", cw20Contract),
			log.Err(err),
		)
		isValid = false
	}
	return &txs.TestBridgeValidationResponse{IsValid: isValid}, nil
}

func (c *Contract) testBridgeValidationStargate(ctx context.Context, deps lpvm.Deps, cw20Contract string) (*txs.TestBridgeValidationResponse, error) {
	gateway, err := c.gateway(deps, bridge.Stargate)
	if err != nil {
		return nil, err
	}
	isValid, err := gateway.ValidateWrappedToken(ctx, cw20Contract)
	if err != nil {
		return nil, err
	}
	return &txs.TestBridgeValidationResponse{IsValid: isValid}, nil
}

// testApprovedTokens returns the approved tokens re-encoded as JSON.
func (c *Contract) testApprovedTokens(ctx context.Context, deps lpvm.Deps) (*txs.RawGrpcResponse, error) {
	gateway, err := c.gateway(deps, bridge.GRPC)
	if err != nil {
		return nil, err
	}
	tokens, err := gateway.ApprovedTokens(ctx)
	if err != nil {
		return nil, err
	}
	data, err := stdjson.Marshal(txs.ApprovedTokensJSON{ApprovedTokens: tokens})
	if err != nil {
		return nil, err
	}
	return &txs.RawGrpcResponse{Data: data}, nil
}

// testApprovedTokensStargate returns the module response bytes unchanged.
func (c *Contract) testApprovedTokensStargate(ctx context.Context, deps lpvm.Deps) (*txs.RawGrpcResponse, error) {
	gateway, err := c.gateway(deps, bridge.Stargate)
	if err != nil {
		return nil, err
	}
	data, err := gateway.ApprovedTokensRaw(ctx)
	if err != nil {
		return nil, err
	}
	return &txs.RawGrpcResponse{Data: data}, nil
}
