// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

const maxUint64 uint64 = math.MaxUint64

func TestMaxUint(t *testing.T) {
	require := require.New(t)

	require.Equal(uint(math.MaxUint), MaxUint[uint]())
	require.Equal(uint8(math.MaxUint8), MaxUint[uint8]())
	require.Equal(uint32(math.MaxUint32), MaxUint[uint32]())
	require.Equal(maxUint64, MaxUint[uint64]())
}

func TestAdd(t *testing.T) {
	require := require.New(t)

	sum, err := Add(0, maxUint64)
	require.NoError(err)
	require.Equal(maxUint64, sum)

	_, err = Add(1, maxUint64)
	require.ErrorIs(err, ErrOverflow)

	require.Equal(maxUint64, SaturatingAdd(maxUint64, 5))
	require.Equal(uint32(7), SaturatingAdd[uint32](3, 4))
}

func TestMaxUint128(t *testing.T) {
	require := require.New(t)

	require.Equal(128, MaxUint128.BitLen())
	require.True(Fits128(MaxUint128))

	wider := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	require.False(Fits128(wider))
	require.ErrorIs(Check128(wider), ErrOverflow)
}

func TestAdd128(t *testing.T) {
	require := require.New(t)

	sum, err := Add128(uint256.NewInt(2), uint256.NewInt(3))
	require.NoError(err)
	require.Equal(uint64(5), sum.Uint64())

	_, err = Add128(MaxUint128, uint256.NewInt(1))
	require.ErrorIs(err, ErrOverflow)
}

func TestSaturatingSub128(t *testing.T) {
	require := require.New(t)

	require.True(SaturatingSub128(uint256.NewInt(3), uint256.NewInt(5)).IsZero())
	require.Equal(uint64(2), SaturatingSub128(uint256.NewInt(5), uint256.NewInt(3)).Uint64())
}

func TestMul128(t *testing.T) {
	require := require.New(t)

	// 120e15 * 100 * 25000 does not fit 64 bits but fits the working width.
	product, err := Mul128(uint256.NewInt(120_000_000_000_000_000), uint256.NewInt(100))
	require.NoError(err)
	product, err = Mul128(product, uint256.NewInt(25_000))
	require.NoError(err)
	require.Equal("300000000000000000000000", product.Dec())

	_, err = Mul128(MaxUint128, uint256.NewInt(2))
	require.ErrorIs(err, ErrOverflow)
}
