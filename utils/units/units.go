// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package units

// Denominations of value.
// Both the pool token and USD prices use 6 decimals.
const (
	MicroToken uint64 = 1                 // Base unit of the pool token
	MilliToken uint64 = 1000 * MicroToken // 0.001 token
	Token      uint64 = 1000 * MilliToken // 1 token = 10^6 base units

	// BasisPoints is the number of basis points in 100%.
	BasisPoints uint64 = 10_000

	// Permille is the denominator of tier multipliers (1000 = 1.0x).
	Permille uint64 = 1000
)
