// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/luxfi/ids"

	"github.com/luxfi/lpvm"
)

// DefaultHRP is the human readable part of account addresses.
const DefaultHRP = "gonka"

var (
	_ lpvm.AddressValidator = (*Bech32Validator)(nil)

	ErrInvalidAddress = errors.New("invalid address")
)

// Bech32Validator accepts lowercase bech32 addresses with a fixed prefix.
type Bech32Validator struct {
	HRP string
}

func (v *Bech32Validator) ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAddress)
	}
	if address != strings.ToLower(address) {
		return fmt.Errorf("%w: %q is not normalized", ErrInvalidAddress, address)
	}
	hrp, _, err := bech32.Decode(address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if hrp != v.HRP {
		return fmt.Errorf("%w: prefix %q, expected %q", ErrInvalidAddress, hrp, v.HRP)
	}
	return nil
}

// FormatAddress returns the bech32 address of [id].
func FormatAddress(hrp string, id ids.ShortID) (string, error) {
	data, err := bech32.ConvertBits(id[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, data)
}

// DeriveAddress returns a deterministic address for [label].
func DeriveAddress(hrp, label string) (string, error) {
	digest := sha256.Sum256([]byte(label))
	var id ids.ShortID
	copy(id[:], digest[:])
	return FormatAddress(hrp, id)
}
