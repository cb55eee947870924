// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	contractAddressField protowire.Number = 1
	isValidField         protowire.Number = 1
	approvedTokensField  protowire.Number = 1
	chainIDField         protowire.Number = 1
	tokenAddressField    protowire.Number = 2
)

var (
	ErrEncode = errors.New("failed to encode bridge message")
	ErrDecode = errors.New("failed to decode bridge message")
)

// ApprovedToken is an externally-originated token approved for trade.
type ApprovedToken struct {
	ChainID         string `json:"chain_id"`
	ContractAddress string `json:"contract_address"`
}

// EncodeValidateRequest encodes a ValidateWrappedTokenForTrade request.
func EncodeValidateRequest(contractAddress string) []byte {
	return appendString(nil, contractAddressField, contractAddress)
}

// DecodeValidateRequest decodes a ValidateWrappedTokenForTrade request.
func DecodeValidateRequest(b []byte) (string, error) {
	var contractAddress string
	err := walk(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num != contractAddressField || typ != protowire.BytesType {
			return skip(num, typ, field)
		}
		v, n := protowire.ConsumeString(field)
		contractAddress = v
		return n, nil
	})
	return contractAddress, err
}

// EncodeValidateResponse encodes a ValidateWrappedTokenForTrade response.
func EncodeValidateResponse(isValid bool) []byte {
	if !isValid {
		return []byte{}
	}
	b := protowire.AppendTag(nil, isValidField, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(true))
}

// DecodeValidateResponse decodes a ValidateWrappedTokenForTrade response.
// An empty message decodes as false.
func DecodeValidateResponse(b []byte) (bool, error) {
	var isValid bool
	err := walk(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num != isValidField || typ != protowire.VarintType {
			return skip(num, typ, field)
		}
		v, n := protowire.ConsumeVarint(field)
		isValid = protowire.DecodeBool(v)
		return n, nil
	})
	return isValid, err
}

// EncodeApprovedTokensResponse encodes an ApprovedTokensForTrade response.
func EncodeApprovedTokensResponse(tokens []ApprovedToken) []byte {
	var b []byte
	for _, token := range tokens {
		var inner []byte
		inner = appendString(inner, chainIDField, token.ChainID)
		inner = appendString(inner, tokenAddressField, token.ContractAddress)
		b = protowire.AppendTag(b, approvedTokensField, protowire.BytesType)
		b = protowire.AppendBytes(b, inner)
	}
	if b == nil {
		return []byte{}
	}
	return b
}

// DecodeApprovedTokensResponse decodes an ApprovedTokensForTrade response.
func DecodeApprovedTokensResponse(b []byte) ([]ApprovedToken, error) {
	tokens := []ApprovedToken{}
	err := walk(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if num != approvedTokensField || typ != protowire.BytesType {
			return skip(num, typ, field)
		}
		inner, n := protowire.ConsumeBytes(field)
		if n < 0 {
			return n, nil
		}
		token, err := decodeApprovedToken(inner)
		if err != nil {
			return 0, err
		}
		tokens = append(tokens, token)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func decodeApprovedToken(b []byte) (ApprovedToken, error) {
	var token ApprovedToken
	err := walk(b, func(num protowire.Number, typ protowire.Type, field []byte) (int, error) {
		if typ != protowire.BytesType {
			return skip(num, typ, field)
		}
		switch num {
		case chainIDField:
			v, n := protowire.ConsumeString(field)
			token.ChainID = v
			return n, nil
		case tokenAddressField:
			v, n := protowire.ConsumeString(field)
			token.ContractAddress = v
			return n, nil
		default:
			return skip(num, typ, field)
		}
	})
	return token, err
}

// proto3 omits fields holding their default value.
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// walk calls [visit] with the remaining bytes after each tag. [visit] returns
// the number of bytes it consumed or a negative protowire error code.
func walk(b []byte, visit func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrDecode, protowire.ParseError(n))
		}
		b = b[n:]
		n, err := visit(num, typ, b)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrDecode, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	return protowire.ConsumeFieldValue(num, typ, b), nil
}
