// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package liquiditypool

import (
	"context"
	"slices"
	"strconv"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/vms/liquiditypool/state"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

const tierMultiplierRateError = "tier_multiplier must be > 0 (1.0x)"

// loadAuthorized returns the config if [info] is sent by the admin.
func loadAuthorized(deps lpvm.Deps, info lpvm.MessageInfo) (*state.Store, *state.Config, error) {
	store := state.New(deps.DB)
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := authorize(cfg, info); err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func (c *Contract) setPaused(deps lpvm.Deps, info lpvm.MessageInfo, paused bool) (*lpvm.Response, error) {
	store, cfg, err := loadAuthorized(deps, info)
	if err != nil {
		return nil, err
	}
	cfg.IsPaused = paused
	if err := store.PutConfig(cfg); err != nil {
		return nil, err
	}

	method := "resume"
	if paused {
		method = "pause"
	}
	c.log.Info("sale state changed",
		log.Stringer("state", lpvm.SaleStateOf(paused)),
		log.String("admin", info.Sender),
	)
	return lpvm.NewResponse().
		AddAttribute("method", method).
		AddAttribute("admin", info.Sender), nil
}

func (*Contract) updateDailyLimit(deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.UpdateDailyLimitMsg) (*lpvm.Response, error) {
	store, cfg, err := loadAuthorized(deps, info)
	if err != nil {
		return nil, err
	}
	bp, err := dailyLimitBP(msg.DailyLimitBP)
	if err != nil {
		return nil, err
	}
	cfg.DailyLimitBP = bp
	if err := store.PutConfig(cfg); err != nil {
		return nil, err
	}
	return lpvm.NewResponse().
		AddAttribute("method", "update_daily_limit").
		AddAttribute("new_limit_bp", strconv.FormatUint(bp, 10)).
		AddAttribute("admin", info.Sender), nil
}

// updateExchangeRates validates the rates. Rates are checked in sorted denom
// order so the reported denom does not depend on map iteration.
func (*Contract) updateExchangeRates(deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.UpdateExchangeRatesMsg) (*lpvm.Response, error) {
	if _, _, err := loadAuthorized(deps, info); err != nil {
		return nil, err
	}
	denoms := make([]string, 0, len(msg.Rates))
	for denom := range msg.Rates {
		denoms = append(denoms, denom)
	}
	slices.Sort(denoms)
	for _, denom := range denoms {
		rate := msg.Rates[denom]
		if rate.Int().IsZero() {
			return nil, &InvalidExchangeRateError{Token: denom}
		}
	}
	return lpvm.NewResponse().
		AddAttribute("method", "update_exchange_rates").
		AddAttribute("admin", info.Sender), nil
}

func (*Contract) addAcceptedToken(deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.AddAcceptedTokenMsg) (*lpvm.Response, error) {
	if _, _, err := loadAuthorized(deps, info); err != nil {
		return nil, err
	}
	if msg.Rate.Int().IsZero() {
		return nil, &InvalidExchangeRateError{Token: msg.Denom}
	}
	return lpvm.NewResponse().
		AddAttribute("method", "add_accepted_token").
		AddAttribute("token", msg.Denom).
		AddAttribute("rate", msg.Rate.String()).
		AddAttribute("admin", info.Sender), nil
}

func (*Contract) removeToken(deps lpvm.Deps, info lpvm.MessageInfo, method string, msg *txs.RemoveTokenMsg) (*lpvm.Response, error) {
	if _, _, err := loadAuthorized(deps, info); err != nil {
		return nil, err
	}
	return lpvm.NewResponse().
		AddAttribute("method", method).
		AddAttribute("token", msg.Denom).
		AddAttribute("admin", info.Sender), nil
}

func (c *Contract) withdrawNativeTokens(deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.WithdrawNativeTokensMsg) (*lpvm.Response, error) {
	_, cfg, err := loadAuthorized(deps, info)
	if err != nil {
		return nil, err
	}
	if err := validateAddress(deps, msg.Recipient); err != nil {
		return nil, err
	}
	withdrawn, err := amount("amount", msg.Amount)
	if err != nil {
		return nil, err
	}
	if withdrawn.IsZero() {
		return nil, ErrZeroAmount
	}

	c.log.Info("withdrawing native tokens",
		log.String("recipient", msg.Recipient),
		log.Stringer("amount", withdrawn),
		log.String("denom", cfg.NativeDenom),
	)
	return lpvm.NewResponse().
		AddMessage(lpvm.BankSend{
			ToAddress: msg.Recipient,
			Denom:     cfg.NativeDenom,
			Amount:    withdrawn,
		}).
		AddAttribute("method", "withdraw_native_tokens").
		AddAttribute("amount", withdrawn.Dec()).
		AddAttribute("recipient", msg.Recipient).
		AddAttribute("admin", info.Sender), nil
}

func (c *Contract) emergencyWithdraw(ctx context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, msg *txs.EmergencyWithdrawMsg) (*lpvm.Response, error) {
	_, cfg, err := loadAuthorized(deps, info)
	if err != nil {
		return nil, err
	}
	if err := validateAddress(deps, msg.Recipient); err != nil {
		return nil, err
	}
	funds, err := balance(ctx, deps, env, cfg.NativeDenom)
	if err != nil {
		return nil, err
	}
	if funds.IsZero() {
		return lpvm.NewResponse().
			AddAttribute("method", "emergency_withdraw").
			AddAttribute("message", "no_funds_to_withdraw"), nil
	}

	c.log.Warn("emergency withdraw",
		log.String("recipient", msg.Recipient),
		log.Stringer("amount", funds),
		log.String("denom", cfg.NativeDenom),
	)
	return lpvm.NewResponse().
		AddMessage(lpvm.BankSend{
			ToAddress: msg.Recipient,
			Denom:     cfg.NativeDenom,
			Amount:    funds,
		}).
		AddAttribute("method", "emergency_withdraw").
		AddAttribute("recipient", msg.Recipient).
		AddAttribute("withdrawn_funds", funds.Dec()+cfg.NativeDenom).
		AddAttribute("admin", info.Sender), nil
}

// updatePricingConfig replaces the provided fields. Fields are validated in
// order and nothing is written unless all of them pass.
func (*Contract) updatePricingConfig(deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.UpdatePricingConfigMsg) (*lpvm.Response, error) {
	store, _, err := loadAuthorized(deps, info)
	if err != nil {
		return nil, err
	}
	pricingCfg, err := store.GetPricingConfig()
	if err != nil {
		return nil, err
	}

	if msg.BasePriceUSD != nil {
		price, err := amount("base_price_usd", *msg.BasePriceUSD)
		if err != nil {
			return nil, err
		}
		if price.IsZero() {
			return nil, ErrZeroAmount
		}
		pricingCfg.BasePriceUSD = *price
	}
	if msg.TokensPerTier != nil {
		tokens, err := amount("tokens_per_tier", *msg.TokensPerTier)
		if err != nil {
			return nil, err
		}
		if tokens.IsZero() {
			return nil, ErrZeroAmount
		}
		pricingCfg.TokensPerTier = *tokens
	}
	if msg.TierMultiplier != nil {
		multiplier, err := amount("tier_multiplier", *msg.TierMultiplier)
		if err != nil {
			return nil, err
		}
		if multiplier.IsZero() {
			return nil, &InvalidExchangeRateError{Token: tierMultiplierRateError}
		}
		pricingCfg.TierMultiplier = *multiplier
	}

	if err := store.PutPricingConfig(pricingCfg); err != nil {
		return nil, err
	}
	return lpvm.NewResponse().
		AddAttribute("method", "update_pricing_config").
		AddAttribute("admin", info.Sender), nil
}

func (c *Contract) addPaymentToken(ctx context.Context, deps lpvm.Deps, info lpvm.MessageInfo, msg *txs.AddPaymentTokenMsg) (*lpvm.Response, error) {
	if _, _, err := loadAuthorized(deps, info); err != nil {
		return nil, err
	}
	if msg.UsdRate.Int().IsZero() {
		return nil, &InvalidExchangeRateError{Token: msg.Denom}
	}

	gateway, err := c.gateway(deps, c.config.BridgeTransport)
	if err != nil {
		return nil, err
	}
	approved, err := gateway.ValidateWrappedToken(ctx, msg.Denom)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, &TokenNotAcceptedError{Token: msg.Denom}
	}
	return lpvm.NewResponse().
		AddAttribute("method", "add_payment_token").
		AddAttribute("token", msg.Denom).
		AddAttribute("usd_rate", msg.UsdRate.String()).
		AddAttribute("bridge_token_validated", "true").
		AddAttribute("admin", info.Sender), nil
}
