// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the three records of the sale contract.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
)

var (
	ErrMissingRecord = errors.New("missing record")
	ErrInvalidRecord = errors.New("invalid record")

	configKey        = []byte("config")
	pricingConfigKey = []byte("pricing_config")
	dailyStatsKey    = []byte("daily_stats")
)

// Store reads and writes the contract records in a single namespace.
//
// Store is not safe for concurrent use. The host serializes calls and
// provides atomicity for each one.
type Store struct {
	db database.Database
}

// New returns a store over [db].
func New(db database.Database) *Store {
	return &Store{db: db}
}

func (s *Store) get(key []byte, dst interface{}) error {
	bytes, err := s.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrMissingRecord, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if _, err := Codec.Unmarshal(bytes, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) put(key []byte, src interface{}) error {
	bytes, err := Codec.Marshal(CodecVersion, src)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.db.Put(key, bytes); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) GetConfig() (*Config, error) {
	cfg := &Config{}
	return cfg, s.get(configKey, cfg)
}

// PutConfig verifies and writes [cfg].
func (s *Store) PutConfig(cfg *Config) error {
	if err := cfg.Verify(); err != nil {
		return err
	}
	return s.put(configKey, cfg)
}

func (s *Store) GetPricingConfig() (*PricingConfig, error) {
	cfg := &PricingConfig{}
	return cfg, s.get(pricingConfigKey, cfg)
}

func (s *Store) PutPricingConfig(cfg *PricingConfig) error {
	return s.put(pricingConfigKey, cfg)
}

func (s *Store) GetDailyStats() (*DailyStats, error) {
	stats := &DailyStats{}
	return stats, s.get(dailyStatsKey, stats)
}

func (s *Store) PutDailyStats(stats *DailyStats) error {
	return s.put(dailyStatsKey, stats)
}
