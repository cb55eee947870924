// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lpvm

import (
	"context"
	"math/big"
)

// Querier is the read-only view of the host ledger.
type Querier interface {
	// BondedDenom returns the staking denomination of the chain.
	BondedDenom(ctx context.Context) (string, error)

	// Balance returns the balance of [address] in [denom].
	Balance(ctx context.Context, address, denom string) (*big.Int, error)

	// RawQuery sends an encoded query envelope to another module and returns
	// the encoded result envelope.
	RawQuery(ctx context.Context, request []byte) ([]byte, error)
}

// AddressValidator checks that an account address is well formed.
type AddressValidator interface {
	ValidateAddress(address string) error
}

// QueryHandler serves a binary module query registered under a method path.
type QueryHandler func(ctx context.Context, data []byte) ([]byte, error)
