// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/luxfi/lpvm"
)

const (
	GRPC     = "grpc"
	Stargate = "stargate"
)

var (
	ErrSystem           = errors.New("host query failed")
	ErrContract         = errors.New("module query failed")
	ErrUnknownResult    = errors.New("unknown query result")
	ErrUnknownTransport = errors.New("unknown transport")
)

// Transport delivers an encoded module query to a method path.
type Transport interface {
	Name() string
	Query(ctx context.Context, path string, data []byte) ([]byte, error)
}

// NewTransport returns the envelope transport named [name].
func NewTransport(name string, querier lpvm.Querier) (Transport, error) {
	switch name {
	case GRPC:
		return NewGRPCTransport(querier), nil
	case Stargate:
		return NewStargateTransport(querier), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, name)
	}
}

// NewGRPCTransport returns a transport that wraps requests in the grpc
// envelope.
func NewGRPCTransport(querier lpvm.Querier) Transport {
	return &envelopeTransport{kind: GRPC, querier: querier}
}

// NewStargateTransport returns a transport that wraps requests in the legacy
// stargate envelope.
func NewStargateTransport(querier lpvm.Querier) Transport {
	return &envelopeTransport{kind: Stargate, querier: querier}
}

// Request is the body of both query envelopes.
type Request struct {
	Path string `json:"path"`
	Data []byte `json:"data"`
}

type envelopeTransport struct {
	kind    string
	querier lpvm.Querier
}

func (t *envelopeTransport) Name() string {
	return t.kind
}

func (t *envelopeTransport) Query(ctx context.Context, path string, data []byte) ([]byte, error) {
	if data == nil {
		data = []byte{}
	}
	request, err := json.Marshal(map[string]Request{
		t.kind: {Path: path, Data: data},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	raw, err := t.querier.RawQuery(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSystem, err)
	}
	return ParseResult(raw)
}

// ParseResult unwraps a host result envelope:
//
//	{"ok":{"ok":"<base64>"}}  success
//	{"ok":{"error":"..."}}    the module rejected the query
//	{"error":{...}}           the host could not route the query
func ParseResult(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: invalid json", ErrUnknownResult)
	}
	result := gjson.ParseBytes(raw)
	if sysErr := result.Get("error"); sysErr.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrSystem, sysErr.Raw)
	}
	if contractErr := result.Get("ok.error"); contractErr.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrContract, contractErr.String())
	}
	ok := result.Get("ok.ok")
	if !ok.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResult, raw)
	}
	data, err := base64.StdEncoding.DecodeString(ok.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return data, nil
}

// EncodeResult wraps [data] in a success envelope.
func EncodeResult(data []byte) []byte {
	b, _ := json.Marshal(map[string]map[string][]byte{"ok": {"ok": data}})
	return b
}

// EncodeModuleError wraps [err] in a module error envelope.
func EncodeModuleError(err error) []byte {
	b, _ := json.Marshal(map[string]map[string]string{"ok": {"error": err.Error()}})
	return b
}

// EncodeSystemError wraps a routing failure of [kind] in a system error
// envelope.
func EncodeSystemError(kind, detail string) []byte {
	b, _ := json.Marshal(map[string]map[string]string{"error": {kind: detail}})
	return b
}
