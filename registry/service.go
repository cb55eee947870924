// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

// Routes returns the binary query handlers of the registry under [service].
func (r *Registry) Routes(service string) map[string]lpvm.QueryHandler {
	if service == "" {
		service = bridge.DefaultQueryService
	}
	return map[string]lpvm.QueryHandler{
		bridge.MethodPath(service, bridge.ValidateWrappedTokenMethod): r.handleValidate,
		bridge.MethodPath(service, bridge.ApprovedTokensMethod):       r.handleApprovedTokens,
	}
}

func (r *Registry) handleValidate(_ context.Context, data []byte) ([]byte, error) {
	wrappedAddress, err := bridge.DecodeValidateRequest(data)
	if err != nil {
		return nil, err
	}
	isValid, err := r.ValidateWrappedTokenForTrade(wrappedAddress)
	if err != nil {
		return nil, err
	}
	return bridge.EncodeValidateResponse(isValid), nil
}

func (r *Registry) handleApprovedTokens(context.Context, []byte) ([]byte, error) {
	tokens, err := r.ApprovedTokens()
	if err != nil {
		return nil, err
	}
	return bridge.EncodeApprovedTokensResponse(tokens), nil
}

// NewServer returns a gRPC server that serves the registry routes. Messages
// are exchanged in their encoded form.
func NewServer(routes map[string]lpvm.QueryHandler, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts,
		grpc.ForceServerCodec(bridge.RawCodec{}),
		grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
			method, ok := grpc.MethodFromServerStream(stream)
			if !ok {
				return status.Error(codes.Internal, "missing method")
			}
			handler, ok := routes[method]
			if !ok {
				return status.Errorf(codes.Unimplemented, "unknown method %s", method)
			}
			request := &bridge.Frame{}
			if err := stream.RecvMsg(request); err != nil {
				return err
			}
			reply, err := handler(stream.Context(), request.Data)
			if err != nil {
				return status.Error(codes.InvalidArgument, err.Error())
			}
			return stream.SendMsg(&bridge.Frame{Data: reply})
		}),
	)
	return grpc.NewServer(opts...)
}
