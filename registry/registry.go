// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry tracks which externally-originated tokens are approved for
// trade and which wrapped token contract represents each of them.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

var (
	ErrNotRegistered = errors.New("wrapped token not registered")

	approvedPrefix = []byte("BridgeTradeApprovedToken/")
	wrappedPrefix  = []byte("WrappedContractReverse/")
)

type tokenRecord struct {
	ChainID         string `serialize:"true"`
	ContractAddress string `serialize:"true"`
}

// Registry is safe for concurrent use.
type Registry struct {
	lock sync.RWMutex
	db   database.Database
	log  log.Logger
}

// New returns a registry stored in [db].
func New(db database.Database, logger log.Logger) *Registry {
	return &Registry{
		db:  db,
		log: logger,
	}
}

func approvedKey(chainID, contractAddress string) []byte {
	return append(append([]byte{}, approvedPrefix...), chainID+"/"+strings.ToLower(contractAddress)...)
}

func wrappedKey(wrappedAddress string) []byte {
	return append(append([]byte{}, wrappedPrefix...), strings.ToLower(wrappedAddress)...)
}

func validateToken(chainID, contractAddress string) error {
	return errors.Join(
		ValidateChainID(chainID),
		ValidateContractAddress(contractAddress),
	)
}

func (r *Registry) put(key []byte, chainID, contractAddress string) error {
	bytes, err := Codec.Marshal(codecVersion, &tokenRecord{
		ChainID:         chainID,
		ContractAddress: strings.ToLower(contractAddress),
	})
	if err != nil {
		return err
	}
	return r.db.Put(key, bytes)
}

func (*Registry) decode(bytes []byte) (bridge.ApprovedToken, error) {
	record := tokenRecord{}
	if _, err := Codec.Unmarshal(bytes, &record); err != nil {
		return bridge.ApprovedToken{}, err
	}
	return bridge.ApprovedToken{
		ChainID:         record.ChainID,
		ContractAddress: record.ContractAddress,
	}, nil
}

// Approve marks the external token as approved for trade.
func (r *Registry) Approve(chainID, contractAddress string) error {
	if err := validateToken(chainID, contractAddress); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.put(approvedKey(chainID, contractAddress), chainID, contractAddress); err != nil {
		return fmt.Errorf("failed to approve %s/%s: %w", chainID, contractAddress, err)
	}
	r.log.Info("approved bridge token for trade",
		log.String("chainID", chainID),
		log.String("contract", contractAddress),
	)
	return nil
}

// Revoke removes the trade approval of the external token.
func (r *Registry) Revoke(chainID, contractAddress string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.db.Delete(approvedKey(chainID, contractAddress))
}

// IsApproved reports whether the external token is approved for trade.
func (r *Registry) IsApproved(chainID, contractAddress string) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.db.Has(approvedKey(chainID, contractAddress))
}

// RegisterWrapped records that [wrappedAddress] is the local contract of the
// external token.
func (r *Registry) RegisterWrapped(wrappedAddress, chainID, contractAddress string) error {
	if err := errors.Join(
		validateToken(chainID, contractAddress),
		ValidateContractAddress(wrappedAddress),
	); err != nil {
		return err
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.put(wrappedKey(wrappedAddress), chainID, contractAddress); err != nil {
		return fmt.Errorf("failed to register %s: %w", wrappedAddress, err)
	}
	return nil
}

// Wrapped returns the external token represented by [wrappedAddress].
func (r *Registry) Wrapped(wrappedAddress string) (bridge.ApprovedToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	bytes, err := r.db.Get(wrappedKey(wrappedAddress))
	if errors.Is(err, database.ErrNotFound) {
		return bridge.ApprovedToken{}, fmt.Errorf("%w: %s", ErrNotRegistered, wrappedAddress)
	}
	if err != nil {
		return bridge.ApprovedToken{}, err
	}
	return r.decode(bytes)
}

// ValidateWrappedTokenForTrade reports whether [wrappedAddress] is registered
// and its external token is approved for trade.
func (r *Registry) ValidateWrappedTokenForTrade(wrappedAddress string) (bool, error) {
	token, err := r.Wrapped(wrappedAddress)
	if errors.Is(err, ErrNotRegistered) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return r.IsApproved(token.ChainID, token.ContractAddress)
}

// ApprovedTokens returns the approved tokens in key order.
func (r *Registry) ApprovedTokens() ([]bridge.ApprovedToken, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	it := r.db.NewIteratorWithPrefix(approvedPrefix)
	defer it.Release()

	tokens := []bridge.ApprovedToken{}
	for it.Next() {
		token, err := r.decode(it.Value())
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", it.Key(), err)
		}
		tokens = append(tokens, token)
	}
	return tokens, it.Error()
}
