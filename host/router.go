// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"encoding/base64"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/luxfi/math/set"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

const unsupportedRequest = "unsupported_request"

// Router dispatches module queries carried in grpc or stargate envelopes.
type Router struct {
	lock    sync.RWMutex
	routes  map[string]lpvm.QueryHandler
	enabled set.Set[string]
}

// NewRouter returns a router accepting the enabled envelopes.
func NewRouter(grpc, stargate bool) *Router {
	enabled := make(set.Set[string], 2)
	if grpc {
		enabled.Add(bridge.GRPC)
	}
	if stargate {
		enabled.Add(bridge.Stargate)
	}
	return &Router{
		routes:  make(map[string]lpvm.QueryHandler),
		enabled: enabled,
	}
}

// Register adds [routes], replacing handlers registered under the same path.
func (r *Router) Register(routes map[string]lpvm.QueryHandler) {
	r.lock.Lock()
	defer r.lock.Unlock()

	for path, handler := range routes {
		r.routes[path] = handler
	}
}

// Handle answers [request] with a result envelope.
func (r *Router) Handle(ctx context.Context, request []byte) []byte {
	if !gjson.ValidBytes(request) {
		return bridge.EncodeSystemError("invalid_request", "malformed query envelope")
	}
	parsed := gjson.ParseBytes(request)
	for _, kind := range []string{bridge.GRPC, bridge.Stargate} {
		envelope := parsed.Get(kind)
		if !envelope.Exists() {
			continue
		}
		if !r.enabled.Contains(kind) {
			return bridge.EncodeSystemError(unsupportedRequest, kind+" queries are disabled")
		}
		return r.route(ctx, envelope.Get("path").String(), envelope.Get("data").String())
	}
	return bridge.EncodeSystemError(unsupportedRequest, "unknown query kind")
}

func (r *Router) route(ctx context.Context, path, encoded string) []byte {
	r.lock.RLock()
	handler, ok := r.routes[path]
	r.lock.RUnlock()
	if !ok {
		return bridge.EncodeSystemError("no_such_route", path)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return bridge.EncodeSystemError("invalid_request", err.Error())
	}
	reply, err := handler(ctx, data)
	if err != nil {
		return bridge.EncodeModuleError(err)
	}
	return bridge.EncodeResult(reply)
}
