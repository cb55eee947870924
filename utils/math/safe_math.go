// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"

	"github.com/holiman/uint256"
)

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

var ErrOverflow = errors.New("overflow")

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// SaturatingAdd returns a + b, or the maximum value of T on overflow.
func SaturatingAdd[T Unsigned](a, b T) T {
	sum, err := Add(a, b)
	if err != nil {
		return MaxUint[T]()
	}
	return sum
}

// Amount arithmetic below is carried out on uint256 values constrained to a
// 128-bit working width. Any result wider than 128 bits is an overflow.

// MaxUint128 is the largest amount representable in the working width.
var MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// Fits128 reports whether x fits the working width.
func Fits128(x *uint256.Int) bool {
	return x.BitLen() <= 128
}

// Check128 returns ErrOverflow if x does not fit the working width.
func Check128(x *uint256.Int) error {
	if !Fits128(x) {
		return ErrOverflow
	}
	return nil
}

// Add128 returns a + b or ErrOverflow.
func Add128(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow || !Fits128(sum) {
		return nil, ErrOverflow
	}
	return sum, nil
}

// SaturatingSub128 returns a - b, or zero if b > a.
func SaturatingSub128(a, b *uint256.Int) *uint256.Int {
	if a.Lt(b) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(a, b)
}

// Mul128 returns a * b or ErrOverflow.
func Mul128(a, b *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow || !Fits128(product) {
		return nil, ErrOverflow
	}
	return product, nil
}
