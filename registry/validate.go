// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	maxChainIDLen         = 50
	minContractAddressLen = 10
	maxContractAddressLen = 128
	evmAddressHexLen      = 40
)

var (
	ErrInvalidChainID         = errors.New("invalid chain id")
	ErrInvalidContractAddress = errors.New("invalid contract address")
)

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hasControl(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsControl(r) || r == unicode.ReplacementChar
	}) >= 0
}

// ValidateChainID checks that [chainID] is a non-empty identifier made of
// letters, digits, '-' and '_'.
func ValidateChainID(chainID string) error {
	if strings.TrimSpace(chainID) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidChainID)
	}
	if len(chainID) > maxChainIDLen {
		return fmt.Errorf("%w: %d characters", ErrInvalidChainID, len(chainID))
	}
	for _, r := range chainID {
		if !isAlnum(r) && r != '-' && r != '_' {
			return fmt.Errorf("%w: %q", ErrInvalidChainID, chainID)
		}
	}
	return nil
}

// ValidateContractAddress accepts 0x-prefixed EVM addresses and other
// addresses of 10 to 128 characters from [A-Za-z0-9-_.:].
func ValidateContractAddress(address string) error {
	if strings.TrimSpace(address) == "" || hasControl(address) {
		return fmt.Errorf("%w: %q", ErrInvalidContractAddress, address)
	}
	if len(address) < minContractAddressLen || len(address) > maxContractAddressLen {
		return fmt.Errorf("%w: %d characters", ErrInvalidContractAddress, len(address))
	}
	if strings.HasPrefix(strings.ToLower(address), "0x") {
		hexPart := address[2:]
		if len(hexPart) != evmAddressHexLen {
			return fmt.Errorf("%w: %q", ErrInvalidContractAddress, address)
		}
		for _, r := range hexPart {
			if !isHex(r) {
				return fmt.Errorf("%w: %q", ErrInvalidContractAddress, address)
			}
		}
		return nil
	}
	for _, r := range address {
		if !isAlnum(r) && r != '-' && r != '_' && r != '.' && r != ':' {
			return fmt.Errorf("%w: %q", ErrInvalidContractAddress, address)
		}
	}
	return nil
}
