// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package liquiditypool

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/lpvm/utils/math"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
	"github.com/luxfi/lpvm/vms/liquiditypool/state"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrContractPaused      = errors.New("contract is paused")
	ErrZeroAmount          = errors.New("amount must be greater than zero")
	ErrTokenNotAccepted    = errors.New("token not accepted")
	ErrInvalidBasisPoints  = errors.New("invalid basis points")
	ErrDailyLimitExceeded  = errors.New("daily limit exceeded")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidExchangeRate = errors.New("invalid exchange rate")
	ErrBalanceOutOfRange   = errors.New("balance exceeds 128 bits")
	ErrInvalidAddress      = errors.New("invalid address")
)

// TokenNotAcceptedError is returned when the registry does not approve a
// wrapped token for trade.
type TokenNotAcceptedError struct {
	Token string
}

func (e *TokenNotAcceptedError) Error() string {
	return fmt.Sprintf("%s: %s is not a bridge token approved for trading", ErrTokenNotAccepted, e.Token)
}

func (*TokenNotAcceptedError) Unwrap() error {
	return ErrTokenNotAccepted
}

type InvalidBasisPointsError struct {
	Value *uint256.Int
}

func (e *InvalidBasisPointsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidBasisPoints, e.Value.Dec())
}

func (*InvalidBasisPointsError) Unwrap() error {
	return ErrInvalidBasisPoints
}

type DailyLimitExceededError struct {
	Available *uint256.Int
	Requested *uint256.Int
}

func (e *DailyLimitExceededError) Error() string {
	return fmt.Sprintf("%s: available %s, requested %s", ErrDailyLimitExceeded, e.Available.Dec(), e.Requested.Dec())
}

func (*DailyLimitExceededError) Unwrap() error {
	return ErrDailyLimitExceeded
}

type InsufficientBalanceError struct {
	Available *uint256.Int
	Needed    *uint256.Int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: available %s, needed %s", ErrInsufficientBalance, e.Available.Dec(), e.Needed.Dec())
}

func (*InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

type InvalidExchangeRateError struct {
	Token string
}

func (e *InvalidExchangeRateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidExchangeRate, e.Token)
}

func (*InvalidExchangeRateError) Unwrap() error {
	return ErrInvalidExchangeRate
}

// reason returns a metrics label for [err].
func reason(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrContractPaused):
		return "paused"
	case errors.Is(err, ErrZeroAmount):
		return "zero_amount"
	case errors.Is(err, ErrTokenNotAccepted):
		return "token_not_accepted"
	case errors.Is(err, ErrInvalidBasisPoints):
		return "invalid_basis_points"
	case errors.Is(err, ErrDailyLimitExceeded):
		return "daily_limit_exceeded"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrInvalidExchangeRate):
		return "invalid_exchange_rate"
	case errors.Is(err, ErrInvalidAddress):
		return "invalid_address"
	case errors.Is(err, ErrBalanceOutOfRange), errors.Is(err, math.ErrOverflow):
		return "overflow"
	case errors.Is(err, txs.ErrInvalidMessage):
		return "invalid_message"
	case errors.Is(err, bridge.ErrSystem), errors.Is(err, bridge.ErrContract),
		errors.Is(err, bridge.ErrDecode), errors.Is(err, bridge.ErrUnknownResult):
		return "bridge"
	case errors.Is(err, state.ErrMissingRecord), errors.Is(err, state.ErrInvalidRecord):
		return "state"
	default:
		return "other"
	}
}
