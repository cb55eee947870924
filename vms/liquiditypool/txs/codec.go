// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrNoVariant      = errors.New("message has no variant")
	ErrManyVariants   = errors.New("message has more than one variant")
)

// decodeStrict unmarshals [b] into [dst], rejecting unknown fields and
// trailing data.
func decodeStrict(b []byte, dst any) error {
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: trailing data", ErrInvalidMessage)
	}
	return nil
}

// variant returns the JSON name of the single non-nil pointer field of the
// struct pointed to by [msg].
func variant(msg any) (string, error) {
	v := reflect.ValueOf(msg).Elem()
	t := v.Type()
	name := ""
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() != reflect.Pointer || field.IsNil() {
			continue
		}
		if name != "" {
			return "", ErrManyVariants
		}
		name, _, _ = strings.Cut(t.Field(i).Tag.Get("json"), ",")
	}
	if name == "" {
		return "", ErrNoVariant
	}
	return name, nil
}

func parse(b []byte, msg any) (string, error) {
	if err := decodeStrict(b, msg); err != nil {
		return "", err
	}
	name, err := variant(msg)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return name, nil
}
