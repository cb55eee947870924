// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lpvm defines the interfaces between a ledger-resident contract and
// the host that executes it.
package lpvm

import (
	"context"
	"time"

	"github.com/luxfi/database"
)

// Contract defines the entry points a host invokes on a contract.
//
// Every call is executed atomically by the host: if a call returns an error,
// none of its writes to Deps.DB are persisted and none of the returned
// messages are applied.
type Contract interface {
	// Instantiate runs once, when the contract is created.
	Instantiate(ctx context.Context, deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)

	// Execute handles a state-changing message.
	Execute(ctx context.Context, deps Deps, env Env, info MessageInfo, msg []byte) (*Response, error)

	// Query handles a read-only message and returns its JSON encoded reply.
	Query(ctx context.Context, deps Deps, env Env, msg []byte) ([]byte, error)

	// Version returns the contract name and version.
	Version() string
}

// BlockInfo describes the block a call is executed in.
type BlockInfo struct {
	Height  uint64
	Time    time.Time
	ChainID string
}

// ContractInfo describes the executing contract.
type ContractInfo struct {
	Address string
}

// Env is the execution environment of a call.
type Env struct {
	Block    BlockInfo
	Contract ContractInfo
}

// MessageInfo describes the caller of an Execute or Instantiate call.
type MessageInfo struct {
	Sender string
}

// Deps bundles the host collaborators available to a single call.
type Deps struct {
	// DB is the contract's private namespace.
	DB      database.Database
	Querier Querier
	API     AddressValidator
}
