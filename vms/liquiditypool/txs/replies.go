// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/lpvm/utils/json"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

type ConfigResponse struct {
	Admin        string       `json:"admin"`
	NativeDenom  string       `json:"native_denom"`
	DailyLimitBP json.Uint64  `json:"daily_limit_bp"`
	IsPaused     bool         `json:"is_paused"`
	SaleState    string       `json:"sale_state"`
	TotalSupply  json.Uint256 `json:"total_supply"`
	TotalSold    json.Uint256 `json:"total_sold"`
}

type DailyStatsResponse struct {
	CurrentDay       uint64       `json:"current_day"`
	SoldToday        json.Uint256 `json:"sold_today"`
	DailyLimitTokens json.Uint256 `json:"daily_limit_tokens"`
	DailyLimitUSD    json.Uint256 `json:"daily_limit_usd"`
	AvailableToday   json.Uint256 `json:"available_today"`
	TotalSupply      json.Uint256 `json:"total_supply"`
}

type Coin struct {
	Denom  string       `json:"denom"`
	Amount json.Uint256 `json:"amount"`
}

type NativeBalanceResponse struct {
	Balance Coin `json:"balance"`
}

type PricingInfoResponse struct {
	CurrentTier     uint32       `json:"current_tier"`
	CurrentPriceUSD json.Uint256 `json:"current_price_usd"`
	TotalSold       json.Uint256 `json:"total_sold"`
	TokensPerTier   json.Uint256 `json:"tokens_per_tier"`
	BasePriceUSD    json.Uint256 `json:"base_price_usd"`
	TierMultiplier  json.Uint256 `json:"tier_multiplier"`
	NextTierAt      json.Uint256 `json:"next_tier_at"`
	NextTierPrice   json.Uint256 `json:"next_tier_price"`
}

type TokenCalculationResponse struct {
	Tokens       json.Uint256 `json:"tokens"`
	CurrentPrice json.Uint256 `json:"current_price"`
	CurrentTier  uint32       `json:"current_tier"`
}

type TestBridgeValidationResponse struct {
	IsValid bool `json:"is_valid"`
}

type BlockHeightResponse struct {
	Height uint64 `json:"height"`
}

// RawGrpcResponse carries module query bytes, base64 encoded in JSON.
type RawGrpcResponse struct {
	Data []byte `json:"data"`
}

type ApprovedTokensJSON struct {
	ApprovedTokens []bridge.ApprovedToken `json:"approved_tokens"`
}
