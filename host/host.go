// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package host runs a single contract against a local ledger. Every call is
// serialized and executed atomically.
package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/holiman/uint256"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
)

var (
	_ lpvm.Querier = (*querier)(nil)

	ErrNoBondedDenom  = errors.New("bonded denom unavailable")
	ErrNotInitialized = errors.New("contract not instantiated")

	bankPrefix     = []byte("bank")
	contractPrefix = []byte("contract")
	metaPrefix     = []byte("meta")
	heightKey      = []byte("height")
)

// Config describes the simulated chain.
type Config struct {
	ChainID string `json:"chainID"`
	// AddressHRP is the bech32 prefix of account addresses.
	AddressHRP string `json:"addressHRP"`
	// BondedDenom is reported by the staking query. Empty means the query
	// fails.
	BondedDenom string `json:"bondedDenom"`
	// GRPCQueries enables the grpc query envelope.
	GRPCQueries bool `json:"grpcQueries"`
	// StargateQueries enables the stargate query envelope.
	StargateQueries bool `json:"stargateQueries"`
}

func DefaultConfig() Config {
	return Config{
		ChainID:         "gonka-devnet",
		AddressHRP:      DefaultHRP,
		BondedDenom:     "ngonka",
		GRPCQueries:     true,
		StargateQueries: true,
	}
}

// Host owns the ledger state of one contract.
type Host struct {
	lock sync.Mutex

	config    Config
	db        database.Database
	contract  lpvm.Contract
	address   string
	clock     *Clock
	router    *Router
	addresses *Bech32Validator
	log       log.Logger
}

// New returns a host running [contract] over [db].
func New(cfg Config, db database.Database, contract lpvm.Contract, logger log.Logger) (*Host, error) {
	address, err := DeriveAddress(cfg.AddressHRP, cfg.ChainID+"/"+contract.Version())
	if err != nil {
		return nil, fmt.Errorf("failed to derive contract address: %w", err)
	}
	return &Host{
		config:    cfg,
		db:        db,
		contract:  contract,
		address:   address,
		clock:     &Clock{},
		router:    NewRouter(cfg.GRPCQueries, cfg.StargateQueries),
		addresses: &Bech32Validator{HRP: cfg.AddressHRP},
		log:       logger,
	}, nil
}

// Address returns the contract account address.
func (h *Host) Address() string {
	return h.address
}

func (h *Host) Clock() *Clock {
	return h.clock
}

// Router returns the module query router.
func (h *Host) Router() *Router {
	return h.router
}

// ValidateAddress checks [address] against the chain's address format.
func (h *Host) ValidateAddress(address string) error {
	return h.addresses.ValidateAddress(address)
}

// Height returns the height of the last committed block.
func (h *Host) Height() (uint64, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	return h.height(h.db)
}

func (*Host) height(db database.Database) (uint64, error) {
	height, err := database.GetUInt64(prefixdb.New(metaPrefix, db), heightKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return height, err
}

// Balance returns the committed balance of [address].
func (h *Host) Balance(address, denom string) (*uint256.Int, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	return NewBank(prefixdb.New(bankPrefix, h.db)).Balance(address, denom)
}

// Mint credits [amount] to [address] in its own block.
func (h *Host) Mint(address, denom string, amount *uint256.Int) error {
	_, err := h.call(context.Background(), func(_ lpvm.Deps, _ lpvm.Env, bank *Bank) (*lpvm.Response, error) {
		return lpvm.NewResponse(), bank.Mint(address, denom, amount)
	})
	return err
}

// Instantiate creates the contract.
func (h *Host) Instantiate(ctx context.Context, sender string, msg []byte) (*lpvm.Response, error) {
	return h.call(ctx, func(deps lpvm.Deps, env lpvm.Env, _ *Bank) (*lpvm.Response, error) {
		return h.contract.Instantiate(ctx, deps, env, lpvm.MessageInfo{Sender: sender}, msg)
	})
}

// Execute runs a message sent by [sender].
func (h *Host) Execute(ctx context.Context, sender string, msg []byte) (*lpvm.Response, error) {
	return h.call(ctx, func(deps lpvm.Deps, env lpvm.Env, _ *Bank) (*lpvm.Response, error) {
		return h.contract.Execute(ctx, deps, env, lpvm.MessageInfo{Sender: sender}, msg)
	})
}

// Send delivers the receive hook of a wrapped token transfer of [amount]
// from [buyer] to the contract. The token contract is the caller.
func (h *Host) Send(ctx context.Context, tokenContract, buyer string, amount *uint256.Int, payload []byte) (*lpvm.Response, error) {
	msg, err := json.Marshal(map[string]any{
		"receive": map[string]any{
			"sender": buyer,
			"amount": amount.Dec(),
			"msg":    payload,
		},
	})
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, tokenContract, msg)
}

// Query runs a read-only message against committed state.
func (h *Host) Query(ctx context.Context, msg []byte) ([]byte, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	vdb := versiondb.New(h.db)
	defer vdb.Abort()

	height, err := h.height(vdb)
	if err != nil {
		return nil, err
	}
	deps, _ := h.deps(vdb)
	return h.contract.Query(ctx, deps, h.env(height), msg)
}

// QueryInto runs a query and decodes its reply into [reply].
func QueryInto[T any](ctx context.Context, h *Host, msg []byte) (*T, error) {
	bytes, err := h.Query(ctx, msg)
	if err != nil {
		return nil, err
	}
	reply := new(T)
	return reply, json.Unmarshal(bytes, reply)
}

func (h *Host) env(height uint64) lpvm.Env {
	return lpvm.Env{
		Block: lpvm.BlockInfo{
			Height:  height,
			Time:    h.clock.Time(),
			ChainID: h.config.ChainID,
		},
		Contract: lpvm.ContractInfo{Address: h.address},
	}
}

func (h *Host) deps(db database.Database) (lpvm.Deps, *Bank) {
	bank := NewBank(prefixdb.New(bankPrefix, db))
	return lpvm.Deps{
		DB: prefixdb.New(contractPrefix, db),
		Querier: &querier{
			bank:        bank,
			router:      h.router,
			bondedDenom: h.config.BondedDenom,
		},
		API: h.addresses,
	}, bank
}

type callFunc func(lpvm.Deps, lpvm.Env, *Bank) (*lpvm.Response, error)

// call runs [fn] in a new block. Writes and bank transfers are committed only
// if [fn] and every transfer it requests succeed.
func (h *Host) call(ctx context.Context, fn callFunc) (*lpvm.Response, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vdb := versiondb.New(h.db)
	height, err := h.height(vdb)
	if err != nil {
		return nil, err
	}
	height++

	deps, bank := h.deps(vdb)
	res, err := fn(deps, h.env(height), bank)
	if err != nil {
		vdb.Abort()
		return nil, err
	}
	for _, msg := range res.Messages {
		if err := bank.Transfer(h.address, msg.ToAddress, msg.Denom, msg.Amount); err != nil {
			vdb.Abort()
			return nil, fmt.Errorf("failed to apply bank send: %w", err)
		}
	}
	if err := database.PutUInt64(prefixdb.New(metaPrefix, vdb), heightKey, height); err != nil {
		vdb.Abort()
		return nil, err
	}
	if err := vdb.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit block %d: %w", height, err)
	}
	res.Committed()

	h.log.Debug("committed block",
		log.Uint64("height", height),
		log.Int("messages", len(res.Messages)),
		log.Int("attributes", len(res.Attributes)),
	)
	return res, nil
}

type querier struct {
	bank        *Bank
	router      *Router
	bondedDenom string
}

func (q *querier) BondedDenom(context.Context) (string, error) {
	if q.bondedDenom == "" {
		return "", ErrNoBondedDenom
	}
	return q.bondedDenom, nil
}

func (q *querier) Balance(_ context.Context, address, denom string) (*big.Int, error) {
	balance, err := q.bank.Balance(address, denom)
	if err != nil {
		return nil, err
	}
	return balance.ToBig(), nil
}

func (q *querier) RawQuery(ctx context.Context, request []byte) ([]byte, error) {
	return q.router.Handle(ctx, request), nil
}
