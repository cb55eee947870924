// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridge asks the bridge-token registry module whether a wrapped token
// is approved for trade.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/luxfi/log"
)

const (
	// DefaultQueryService is the query service of the registry module.
	DefaultQueryService = "/inference.inference.Query"

	ValidateWrappedTokenMethod = "ValidateWrappedTokenForTrade"
	ApprovedTokensMethod       = "ApprovedTokensForTrade"

	// CW20Prefix may prefix wrapped token contract addresses.
	CW20Prefix = "cw20:"
)

// NormalizeTokenID strips a single leading "cw20:" prefix.
func NormalizeTokenID(id string) string {
	return strings.TrimPrefix(id, CW20Prefix)
}

// MethodPath returns the full method path of [method] on [service].
func MethodPath(service, method string) string {
	return strings.TrimSuffix(service, "/") + "/" + method
}

// Gateway issues registry queries over a single transport.
type Gateway struct {
	transport Transport
	service   string
	log       log.Logger
}

// NewGateway returns a gateway for [service] over [transport]. An empty
// service selects DefaultQueryService.
func NewGateway(transport Transport, service string, logger log.Logger) *Gateway {
	if service == "" {
		service = DefaultQueryService
	}
	return &Gateway{
		transport: transport,
		service:   service,
		log:       logger,
	}
}

// Transport returns the name of the transport used by the gateway.
func (g *Gateway) Transport() string {
	return g.transport.Name()
}

// ValidateWrappedToken reports whether the registry approves [tokenID] for
// trade. The result is false for unknown tokens. Transport and decode failures
// are returned as errors.
func (g *Gateway) ValidateWrappedToken(ctx context.Context, tokenID string) (bool, error) {
	address := NormalizeTokenID(tokenID)
	data, err := g.transport.Query(ctx, MethodPath(g.service, ValidateWrappedTokenMethod), EncodeValidateRequest(address))
	if err != nil {
		return false, fmt.Errorf("failed to validate %q over %s: %w", address, g.transport.Name(), err)
	}
	isValid, err := DecodeValidateResponse(data)
	if err != nil {
		return false, err
	}
	g.log.Debug("validated wrapped token",
		log.String("token", address),
		log.String("transport", g.transport.Name()),
		log.Bool("valid", isValid),
	)
	return isValid, nil
}

// ApprovedTokensRaw returns the encoded ApprovedTokensForTrade response.
func (g *Gateway) ApprovedTokensRaw(ctx context.Context) ([]byte, error) {
	data, err := g.transport.Query(ctx, MethodPath(g.service, ApprovedTokensMethod), []byte{})
	if err != nil {
		return nil, fmt.Errorf("failed to list approved tokens over %s: %w", g.transport.Name(), err)
	}
	return data, nil
}

// ApprovedTokens returns the decoded list of approved tokens.
func (g *Gateway) ApprovedTokens(ctx context.Context) ([]ApprovedToken, error) {
	data, err := g.ApprovedTokensRaw(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeApprovedTokensResponse(data)
}
