// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package liquiditypool implements a pool that sells the chain's native token
// for approved bridged tokens at a tiered USD price, subject to a daily cap.
package liquiditypool

import (
	"context"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/utils/json"
	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
	"github.com/luxfi/lpvm/vms/liquiditypool/config"
	"github.com/luxfi/lpvm/vms/liquiditypool/metrics"
	"github.com/luxfi/lpvm/vms/liquiditypool/state"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

const (
	Name    = "inference-liquidity-pool"
	version = "0.1.0"
)

var _ lpvm.Contract = (*Contract)(nil)

// Contract is stateless between calls. All state lives in the records of
// the namespace passed with each call.
type Contract struct {
	config  config.Config
	log     log.Logger
	metrics metrics.Metrics
}

// New returns a contract with the given runtime configuration.
func New(cfg config.Config, logger log.Logger, m metrics.Metrics) *Contract {
	return &Contract{
		config:  cfg,
		log:     logger,
		metrics: m,
	}
}

func (*Contract) Version() string {
	return Name + "@" + version
}

func (c *Contract) Instantiate(ctx context.Context, deps lpvm.Deps, env lpvm.Env, _ lpvm.MessageInfo, raw []byte) (*lpvm.Response, error) {
	msg, err := txs.ParseInstantiateMsg(raw)
	if err != nil {
		return nil, err
	}

	bp, err := dailyLimitBP(msg.DailyLimitBP)
	if err != nil {
		return nil, err
	}

	admin := ""
	if msg.Admin != nil && *msg.Admin != "" {
		if err := validateAddress(deps, *msg.Admin); err != nil {
			return nil, err
		}
		admin = *msg.Admin
	}

	nativeDenom := c.nativeDenom(ctx, deps)

	totalSupply, err := optionalAmount("total_supply", msg.TotalSupply, config.DefaultTotalSupply)
	if err != nil {
		return nil, err
	}
	basePrice, err := optionalAmount("base_price_usd", msg.BasePriceUSD, config.DefaultBasePriceUSD)
	if err != nil {
		return nil, err
	}
	tokensPerTier, err := optionalAmount("tokens_per_tier", msg.TokensPerTier, config.DefaultTokensPerTier)
	if err != nil {
		return nil, err
	}
	multiplier, err := optionalAmount("tier_multiplier", msg.TierMultiplier, config.DefaultTierMultiplier)
	if err != nil {
		return nil, err
	}

	store := state.New(deps.DB)
	cfg := &state.Config{
		Admin:        admin,
		NativeDenom:  nativeDenom,
		DailyLimitBP: bp,
		TotalSupply:  *totalSupply,
	}
	if err := store.PutConfig(cfg); err != nil {
		return nil, err
	}
	if err := store.PutPricingConfig(&state.PricingConfig{
		BasePriceUSD:   *basePrice,
		TokensPerTier:  *tokensPerTier,
		TierMultiplier: *multiplier,
	}); err != nil {
		return nil, err
	}
	if err := store.PutDailyStats(&state.DailyStats{
		CurrentDay: state.Day(env.Block.Time),
	}); err != nil {
		return nil, err
	}

	c.log.Info("instantiated liquidity pool",
		log.String("version", c.Version()),
		log.String("admin", admin),
		log.String("nativeDenom", nativeDenom),
		log.Uint64("dailyLimitBP", bp),
	)
	return lpvm.NewResponse().
		AddAttribute("method", "instantiate").
		AddAttribute("admin", admin).
		AddAttribute("native_denom", nativeDenom).
		AddAttribute("total_supply", totalSupply.Dec()), nil
}

func (c *Contract) Execute(ctx context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, raw []byte) (*lpvm.Response, error) {
	msg, method, err := txs.ParseExecuteMsg(raw)
	if err != nil {
		c.metrics.MarkRejected("unknown", reason(err))
		return nil, err
	}

	res, err := c.execute(ctx, deps, env, info, msg)
	if err != nil {
		c.metrics.MarkRejected(method, reason(err))
		c.log.Debug("execute failed",
			log.String("method", method),
			log.String("sender", info.Sender),
			log.Err(err),
		)
		return nil, err
	}
	return res.OnCommit(func() {
		c.metrics.MarkExecuted(method)
	}), nil
}

func (c *Contract) execute(ctx context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, msg *txs.ExecuteMsg) (*lpvm.Response, error) {
	switch {
	case msg.Receive != nil:
		return c.receive(ctx, deps, env, info, msg.Receive)
	case msg.Pause != nil:
		return c.setPaused(deps, info, true)
	case msg.Resume != nil:
		return c.setPaused(deps, info, false)
	case msg.UpdateDailyLimit != nil:
		return c.updateDailyLimit(deps, info, msg.UpdateDailyLimit)
	case msg.UpdateExchangeRates != nil:
		return c.updateExchangeRates(deps, info, msg.UpdateExchangeRates)
	case msg.AddAcceptedToken != nil:
		return c.addAcceptedToken(deps, info, msg.AddAcceptedToken)
	case msg.RemoveAcceptedToken != nil:
		return c.removeToken(deps, info, "remove_accepted_token", msg.RemoveAcceptedToken)
	case msg.WithdrawNativeTokens != nil:
		return c.withdrawNativeTokens(deps, info, msg.WithdrawNativeTokens)
	case msg.EmergencyWithdraw != nil:
		return c.emergencyWithdraw(ctx, deps, env, info, msg.EmergencyWithdraw)
	case msg.UpdatePricingConfig != nil:
		return c.updatePricingConfig(deps, info, msg.UpdatePricingConfig)
	case msg.AddPaymentToken != nil:
		return c.addPaymentToken(ctx, deps, info, msg.AddPaymentToken)
	default:
		return c.removeToken(deps, info, "remove_payment_token", msg.RemovePaymentToken)
	}
}

// nativeDenom returns the chain's bonded denom, or FallbackNativeDenom if
// it cannot be determined.
func (c *Contract) nativeDenom(ctx context.Context, deps lpvm.Deps) string {
	denom, err := deps.Querier.BondedDenom(ctx)
	if err != nil || denom == "" {
		c.log.Debug("bonded denom unavailable",
			log.String("fallback", config.FallbackNativeDenom),
			log.Err(err),
		)
		return config.FallbackNativeDenom
	}
	return denom
}

// gateway returns a registry gateway over [transport].
func (c *Contract) gateway(deps lpvm.Deps, transport string) (*bridge.Gateway, error) {
	t, err := bridge.NewTransport(transport, deps.Querier)
	if err != nil {
		return nil, err
	}
	return bridge.NewGateway(t, c.config.QueryService, c.log), nil
}

// balance returns the contract's balance of [denom].
func balance(ctx context.Context, deps lpvm.Deps, env lpvm.Env, denom string) (*uint256.Int, error) {
	b, err := deps.Querier.Balance(ctx, env.Contract.Address, denom)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance of %s: %w", env.Contract.Address, err)
	}
	return fromBig(b)
}

func fromBig(b *big.Int) (*uint256.Int, error) {
	if b.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative balance %s", ErrBalanceOutOfRange, b)
	}
	amount, overflow := uint256.FromBig(b)
	if overflow || !math.Fits128(amount) {
		return nil, fmt.Errorf("%w: %s", ErrBalanceOutOfRange, b)
	}
	return amount, nil
}

func validateAddress(deps lpvm.Deps, address string) error {
	if err := deps.API.ValidateAddress(address); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidAddress, address, err)
	}
	return nil
}

func authorize(cfg *state.Config, info lpvm.MessageInfo) error {
	if cfg.Admin == "" || info.Sender != cfg.Admin {
		return ErrUnauthorized
	}
	return nil
}

func dailyLimitBP(v *json.Uint256) (uint64, error) {
	if v == nil {
		return config.DefaultDailyLimitBP, nil
	}
	bp := v.Int()
	if bp.IsZero() || bp.GtUint64(config.MaxDailyLimitBP) {
		return 0, &InvalidBasisPointsError{Value: bp}
	}
	return bp.Uint64(), nil
}

// amount returns [v] if it fits the working width.
func amount(name string, v json.Uint256) (*uint256.Int, error) {
	x := v.Int()
	if err := math.Check128(x); err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, x.Dec(), err)
	}
	return x, nil
}

func optionalAmount(name string, v *json.Uint256, def uint64) (*uint256.Int, error) {
	if v == nil {
		return uint256.NewInt(def), nil
	}
	return amount(name, *v)
}
