// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

var _ encoding.Codec = RawCodec{}

// Frame is an already encoded protobuf message.
type Frame struct {
	Data []byte
}

// RawCodec passes Frames through unchanged. It is registered under the proto
// content subtype so that peers expecting protobuf accept the payload.
type RawCodec struct{}

func (RawCodec) Marshal(v any) ([]byte, error) {
	frame, ok := v.(*Frame)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected message %T", ErrEncode, v)
	}
	return frame.Data, nil
}

func (RawCodec) Unmarshal(data []byte, v any) error {
	frame, ok := v.(*Frame)
	if !ok {
		return fmt.Errorf("%w: unexpected message %T", ErrDecode, v)
	}
	frame.Data = append([]byte(nil), data...)
	return nil
}

func (RawCodec) Name() string {
	return "proto"
}

// ConnTransport sends queries as unary gRPC calls.
type ConnTransport struct {
	conn grpc.ClientConnInterface
}

// NewConnTransport returns a transport over [conn].
func NewConnTransport(conn grpc.ClientConnInterface) *ConnTransport {
	return &ConnTransport{conn: conn}
}

func (*ConnTransport) Name() string {
	return "conn"
}

func (t *ConnTransport) Query(ctx context.Context, path string, data []byte) ([]byte, error) {
	reply := &Frame{}
	if err := t.conn.Invoke(ctx, path, &Frame{Data: data}, reply, grpc.ForceCodec(RawCodec{})); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSystem, err)
	}
	return reply.Data, nil
}
