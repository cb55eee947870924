// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lpvm

// SaleState is the high-level state of a sale contract.
type SaleState uint8

const (
	// Active indicates purchases are accepted.
	Active SaleState = iota

	// Paused indicates purchases are rejected.
	Paused
)

// SaleStateOf returns the sale state for the paused flag.
func SaleStateOf(paused bool) SaleState {
	if paused {
		return Paused
	}
	return Active
}

// String returns the string representation of the state
func (s SaleState) String() string {
	switch s {
	case Active:
		return "Active"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}
