// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the JSON messages accepted by the sale contract.
//
// Execute and query messages are tagged unions: exactly one field is set and
// its snake_case name selects the operation.
package txs

import (
	"github.com/luxfi/lpvm/utils/json"
)

// Empty is the body of variants that carry no fields.
type Empty struct{}

// InstantiateMsg creates the contract. Unset fields take their defaults.
type InstantiateMsg struct {
	Admin          *string       `json:"admin,omitempty"`
	DailyLimitBP   *json.Uint256 `json:"daily_limit_bp,omitempty"`
	BasePriceUSD   *json.Uint256 `json:"base_price_usd,omitempty"`
	TokensPerTier  *json.Uint256 `json:"tokens_per_tier,omitempty"`
	TierMultiplier *json.Uint256 `json:"tier_multiplier,omitempty"`
	TotalSupply    *json.Uint256 `json:"total_supply,omitempty"`
}

// ParseInstantiateMsg decodes an InstantiateMsg.
func ParseInstantiateMsg(b []byte) (*InstantiateMsg, error) {
	msg := &InstantiateMsg{}
	return msg, decodeStrict(b, msg)
}

// ExecuteMsg is the union of state-changing operations.
type ExecuteMsg struct {
	Receive              *Cw20ReceiveMsg          `json:"receive,omitempty"`
	Pause                *Empty                   `json:"pause,omitempty"`
	Resume               *Empty                   `json:"resume,omitempty"`
	UpdateDailyLimit     *UpdateDailyLimitMsg     `json:"update_daily_limit,omitempty"`
	UpdateExchangeRates  *UpdateExchangeRatesMsg  `json:"update_exchange_rates,omitempty"`
	AddAcceptedToken     *AddAcceptedTokenMsg     `json:"add_accepted_token,omitempty"`
	RemoveAcceptedToken  *RemoveTokenMsg          `json:"remove_accepted_token,omitempty"`
	WithdrawNativeTokens *WithdrawNativeTokensMsg `json:"withdraw_native_tokens,omitempty"`
	EmergencyWithdraw    *EmergencyWithdrawMsg    `json:"emergency_withdraw,omitempty"`
	UpdatePricingConfig  *UpdatePricingConfigMsg  `json:"update_pricing_config,omitempty"`
	AddPaymentToken      *AddPaymentTokenMsg      `json:"add_payment_token,omitempty"`
	RemovePaymentToken   *RemoveTokenMsg          `json:"remove_payment_token,omitempty"`
}

// ParseExecuteMsg decodes an ExecuteMsg and returns the selected variant.
func ParseExecuteMsg(b []byte) (*ExecuteMsg, string, error) {
	msg := &ExecuteMsg{}
	name, err := parse(b, msg)
	return msg, name, err
}

// Cw20ReceiveMsg is delivered by a token contract after a transfer to the
// pool. Sender is the account that made the transfer.
type Cw20ReceiveMsg struct {
	Sender string       `json:"sender"`
	Amount json.Uint256 `json:"amount"`
	Msg    []byte       `json:"msg"`
}

// PurchaseTokenMsg is the payload a buyer attaches to a transfer.
type PurchaseTokenMsg struct{}

// ParsePurchaseTokenMsg decodes the payload of a Cw20ReceiveMsg.
func ParsePurchaseTokenMsg(b []byte) (*PurchaseTokenMsg, error) {
	msg := &PurchaseTokenMsg{}
	return msg, decodeStrict(b, msg)
}

type UpdateDailyLimitMsg struct {
	DailyLimitBP *json.Uint256 `json:"daily_limit_bp,omitempty"`
}

type UpdateExchangeRatesMsg struct {
	Rates map[string]json.Uint256 `json:"rates"`
}

type AddAcceptedTokenMsg struct {
	Denom string       `json:"denom"`
	Rate  json.Uint256 `json:"rate"`
}

type RemoveTokenMsg struct {
	Denom string `json:"denom"`
}

type WithdrawNativeTokensMsg struct {
	Amount    json.Uint256 `json:"amount"`
	Recipient string       `json:"recipient"`
}

type EmergencyWithdrawMsg struct {
	Recipient string `json:"recipient"`
}

type UpdatePricingConfigMsg struct {
	BasePriceUSD   *json.Uint256 `json:"base_price_usd,omitempty"`
	TokensPerTier  *json.Uint256 `json:"tokens_per_tier,omitempty"`
	TierMultiplier *json.Uint256 `json:"tier_multiplier,omitempty"`
}

type AddPaymentTokenMsg struct {
	Denom   string       `json:"denom"`
	UsdRate json.Uint256 `json:"usd_rate"`
}

// QueryMsg is the union of read-only operations.
type QueryMsg struct {
	Config                       *Empty                 `json:"config,omitempty"`
	DailyStats                   *Empty                 `json:"daily_stats,omitempty"`
	NativeBalance                *Empty                 `json:"native_balance,omitempty"`
	PricingInfo                  *Empty                 `json:"pricing_info,omitempty"`
	CalculateTokens              *CalculateTokensQuery  `json:"calculate_tokens,omitempty"`
	TestBridgeValidation         *BridgeValidationQuery `json:"test_bridge_validation,omitempty"`
	BlockHeight                  *Empty                 `json:"block_height,omitempty"`
	TestApprovedTokens           *Empty                 `json:"test_approved_tokens,omitempty"`
	TestApprovedTokensStargate   *Empty                 `json:"test_approved_tokens_stargate,omitempty"`
	TestBridgeValidationStargate *BridgeValidationQuery `json:"test_bridge_validation_stargate,omitempty"`
}

// ParseQueryMsg decodes a QueryMsg and returns the selected variant.
func ParseQueryMsg(b []byte) (*QueryMsg, string, error) {
	msg := &QueryMsg{}
	name, err := parse(b, msg)
	return msg, name, err
}

type CalculateTokensQuery struct {
	UsdAmount json.Uint256 `json:"usd_amount"`
}

type BridgeValidationQuery struct {
	Cw20Contract string `json:"cw20_contract"`
}
