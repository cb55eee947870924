// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/database"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSupplyOverflow    = errors.New("balance overflow")
)

// Bank holds account balances by denom.
type Bank struct {
	db database.Database
}

func NewBank(db database.Database) *Bank {
	return &Bank{db: db}
}

func balanceKey(address, denom string) []byte {
	return []byte(denom + "/" + address)
}

func (b *Bank) Balance(address, denom string) (*uint256.Int, error) {
	bytes, err := b.db.Get(balanceKey(address, denom))
	if errors.Is(err, database.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(bytes), nil
}

func (b *Bank) setBalance(address, denom string, amount *uint256.Int) error {
	key := balanceKey(address, denom)
	if amount.IsZero() {
		return b.db.Delete(key)
	}
	return b.db.Put(key, amount.Bytes())
}

// Mint credits [amount] to [address].
func (b *Bank) Mint(address, denom string, amount *uint256.Int) error {
	balance, err := b.Balance(address, denom)
	if err != nil {
		return err
	}
	sum, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return fmt.Errorf("%w: %s %s", ErrSupplyOverflow, address, denom)
	}
	return b.setBalance(address, denom, sum)
}

// Transfer moves [amount] of [denom] from [from] to [to].
func (b *Bank) Transfer(from, to, denom string, amount *uint256.Int) error {
	balance, err := b.Balance(from, denom)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return fmt.Errorf("%w: %s has %s%s, needs %s%s",
			ErrInsufficientFunds, from, balance.Dec(), denom, amount.Dec(), denom)
	}
	if err := b.setBalance(from, denom, new(uint256.Int).Sub(balance, amount)); err != nil {
		return err
	}
	return b.Mint(to, denom, amount)
}
