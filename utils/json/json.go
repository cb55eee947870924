// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json provides JSON serialization utilities for numeric types.
package json

import (
	"errors"
	"strconv"

	"github.com/holiman/uint256"
)

const Null = "null"

var errEmptyNumber = errors.New("empty number")

func unquote(b []byte) string {
	str := string(b)
	if len(str) >= 2 {
		if lastIndex := len(str) - 1; str[0] == '"' && str[lastIndex] == '"' {
			str = str[1:lastIndex]
		}
	}
	return str
}

// Uint64 is a uint64 that can be JSON marshaled as a string.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(u), 10) + `"`), nil
}

func (u *Uint64) UnmarshalJSON(b []byte) error {
	if string(b) == Null {
		return nil
	}
	val, err := strconv.ParseUint(unquote(b), 10, 64)
	*u = Uint64(val)
	return err
}

// Uint256 is an unsigned amount that is JSON marshaled as a decimal string.
// Both quoted and bare decimal numbers are accepted when unmarshaling.
type Uint256 uint256.Int

// NewUint256 returns a copy of x.
func NewUint256(x *uint256.Int) Uint256 {
	return Uint256(*x)
}

// FromUint64 returns v as a Uint256.
func FromUint64(v uint64) Uint256 {
	return Uint256(*uint256.NewInt(v))
}

// Int returns a copy of u as a *uint256.Int.
func (u Uint256) Int() *uint256.Int {
	x := uint256.Int(u)
	return &x
}

func (u Uint256) String() string {
	return u.Int().Dec()
}

func (u Uint256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

func (u *Uint256) UnmarshalJSON(b []byte) error {
	if string(b) == Null {
		return nil
	}
	str := unquote(b)
	if str == "" {
		return errEmptyNumber
	}
	val, err := uint256.FromDecimal(str)
	if err != nil {
		return err
	}
	*u = Uint256(*val)
	return nil
}
