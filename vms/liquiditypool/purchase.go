// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package liquiditypool

import (
	"context"
	"fmt"
	"strconv"

	"github.com/holiman/uint256"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/pricing"
	"github.com/luxfi/lpvm/vms/liquiditypool/state"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

// receive sells native tokens for the wrapped tokens just transferred to the
// pool. The caller is the wrapped token contract and msg.Sender is the buyer.
// Wrapped tokens are USD-pegged with 6 decimals, so the amount received is
// its micro-USD value.
func (c *Contract) receive(ctx context.Context, deps lpvm.Deps, env lpvm.Env, info lpvm.MessageInfo, msg *txs.Cw20ReceiveMsg) (*lpvm.Response, error) {
	tokenContract := info.Sender
	c.log.Debug("receive",
		log.String("tokenContract", tokenContract),
		log.String("buyer", msg.Sender),
		log.Stringer("amount", msg.Amount),
		log.Int("msgLen", len(msg.Msg)),
	)

	store := state.New(deps.DB)
	cfg, err := store.GetConfig()
	if err != nil {
		return nil, err
	}
	pricingCfg, err := store.GetPricingConfig()
	if err != nil {
		return nil, err
	}

	if cfg.IsPaused {
		return nil, ErrContractPaused
	}

	gateway, err := c.gateway(deps, c.config.BridgeTransport)
	if err != nil {
		return nil, err
	}
	approved, err := gateway.ValidateWrappedToken(ctx, tokenContract)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, &TokenNotAcceptedError{Token: tokenContract}
	}

	if _, err := txs.ParsePurchaseTokenMsg(msg.Msg); err != nil {
		return nil, err
	}

	stats, err := store.GetDailyStats()
	if err != nil {
		return nil, err
	}
	today := stats.Rollover(state.Day(env.Block.Time))

	usd, err := amount("amount", msg.Amount)
	if err != nil {
		return nil, err
	}
	if usd.IsZero() {
		return nil, ErrZeroAmount
	}

	quote := pricingCfg.Params().Quote(&cfg.TotalSold, usd)
	if quote.Tokens.IsZero() {
		return nil, ErrZeroAmount
	}

	limit, err := pricing.DailyLimitUSD(&cfg.TotalSupply, cfg.DailyLimitBP, quote.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", &InvalidBasisPointsError{Value: uint256.NewInt(cfg.DailyLimitBP)}, err)
	}
	available := math.SaturatingSub128(limit, &today.SoldToday)
	if usd.Gt(available) {
		return nil, &DailyLimitExceededError{
			Available: available,
			Requested: usd,
		}
	}

	poolBalance, err := balance(ctx, deps, env, cfg.NativeDenom)
	if err != nil {
		return nil, err
	}
	if quote.Tokens.Gt(poolBalance) {
		return nil, &InsufficientBalanceError{
			Available: poolBalance,
			Needed:    quote.Tokens,
		}
	}

	soldToday, err := math.Add128(&today.SoldToday, usd)
	if err != nil {
		return nil, fmt.Errorf("sold_today: %w", err)
	}
	totalSold, err := math.Add128(&cfg.TotalSold, usd)
	if err != nil {
		return nil, fmt.Errorf("total_sold: %w", err)
	}
	today.SoldToday = *soldToday
	cfg.TotalSold = *totalSold

	if err := store.PutDailyStats(&today); err != nil {
		return nil, err
	}
	if err := store.PutConfig(cfg); err != nil {
		return nil, err
	}

	return lpvm.NewResponse().
		OnCommit(func() {
			c.metrics.MarkPurchase(usd, quote.Tokens, quote.Tier)
		}).
		AddMessage(lpvm.BankSend{
			ToAddress: msg.Sender,
			Denom:     cfg.NativeDenom,
			Amount:    quote.Tokens,
		}).
		AddAttribute("method", "purchase_with_wrapped_token").
		AddAttribute("buyer", msg.Sender).
		AddAttribute("wrapped_token_contract", tokenContract).
		AddAttribute("wrapped_token_amount", msg.Amount.String()).
		AddAttribute("tokens_purchased", quote.Tokens.Dec()).
		AddAttribute("usd_value", usd.Dec()).
		AddAttribute("current_tier", strconv.FormatUint(uint64(quote.Tier), 10)).
		AddAttribute("price_per_token", quote.Price.Dec()), nil
}
