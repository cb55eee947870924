// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api serves the liquidity pool over JSON-RPC.
package api

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/utils/json"
	utilmetric "github.com/luxfi/lpvm/utils/metric"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

// ServiceName is the JSON-RPC namespace of the service.
const ServiceName = "lp"

var errMissingMsg = errors.New("missing msg")

// Backend runs calls against the contract.
type Backend interface {
	Query(ctx context.Context, msg []byte) ([]byte, error)
	Execute(ctx context.Context, sender string, msg []byte) (*lpvm.Response, error)
	Send(ctx context.Context, tokenContract, buyer string, amount *uint256.Int, payload []byte) (*lpvm.Response, error)
}

// Service is the JSON-RPC API of a liquidity pool.
type Service struct {
	backend Backend
	log     log.Logger
}

// NewService returns an http handler serving [backend]. Request metrics are
// registered with [registerer] if it is non-nil.
func NewService(backend Backend, logger log.Logger, registerer prometheus.Registerer) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	if registerer != nil {
		interceptor, err := utilmetric.NewAPIInterceptor(ServiceName+"_api", registerer)
		if err != nil {
			return nil, err
		}
		server.RegisterInterceptFunc(interceptor.InterceptRequest)
		server.RegisterAfterFunc(interceptor.AfterRequest)
	}
	return server, server.RegisterService(
		&Service{
			backend: backend,
			log:     logger,
		},
		ServiceName,
	)
}

func (s *Service) query(r *http.Request, method string, msg *txs.QueryMsg, reply any) error {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", method),
	)

	request, err := stdjson.Marshal(msg)
	if err != nil {
		return err
	}
	bytes, err := s.backend.Query(r.Context(), request)
	if err != nil {
		return err
	}
	if err := stdjson.Unmarshal(bytes, reply); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", method, err)
	}
	return nil
}

// GetConfig returns the sale configuration.
func (s *Service) GetConfig(r *http.Request, _ *struct{}, reply *txs.ConfigResponse) error {
	return s.query(r, "getConfig", &txs.QueryMsg{Config: &txs.Empty{}}, reply)
}

// GetDailyStats returns today's sales and the daily cap.
func (s *Service) GetDailyStats(r *http.Request, _ *struct{}, reply *txs.DailyStatsResponse) error {
	return s.query(r, "getDailyStats", &txs.QueryMsg{DailyStats: &txs.Empty{}}, reply)
}

// GetPricingInfo returns the current tier and price schedule.
func (s *Service) GetPricingInfo(r *http.Request, _ *struct{}, reply *txs.PricingInfoResponse) error {
	return s.query(r, "getPricingInfo", &txs.QueryMsg{PricingInfo: &txs.Empty{}}, reply)
}

type CalculateTokensArgs struct {
	UsdAmount json.Uint256 `json:"usdAmount"`
}

// CalculateTokens quotes the tokens [args.UsdAmount] buys at the current tier.
func (s *Service) CalculateTokens(r *http.Request, args *CalculateTokensArgs, reply *txs.TokenCalculationResponse) error {
	return s.query(r, "calculateTokens", &txs.QueryMsg{
		CalculateTokens: &txs.CalculateTokensQuery{UsdAmount: args.UsdAmount},
	}, reply)
}

// GetNativeBalance returns the native tokens held by the pool.
func (s *Service) GetNativeBalance(r *http.Request, _ *struct{}, reply *txs.NativeBalanceResponse) error {
	return s.query(r, "getNativeBalance", &txs.QueryMsg{NativeBalance: &txs.Empty{}}, reply)
}

// GetBlockHeight returns the height of the last block.
func (s *Service) GetBlockHeight(r *http.Request, _ *struct{}, reply *txs.BlockHeightResponse) error {
	return s.query(r, "getBlockHeight", &txs.QueryMsg{BlockHeight: &txs.Empty{}}, reply)
}

type ValidateBridgeTokenArgs struct {
	Token string `json:"token"`
	// Stargate selects the stargate envelope instead of grpc.
	Stargate bool `json:"stargate"`
}

// ValidateBridgeToken asks the registry whether [args.Token] may be traded.
func (s *Service) ValidateBridgeToken(r *http.Request, args *ValidateBridgeTokenArgs, reply *txs.TestBridgeValidationResponse) error {
	q := &txs.BridgeValidationQuery{Cw20Contract: args.Token}
	msg := &txs.QueryMsg{TestBridgeValidation: q}
	if args.Stargate {
		msg = &txs.QueryMsg{TestBridgeValidationStargate: q}
	}
	return s.query(r, "validateBridgeToken", msg, reply)
}

// BankSend is a transfer made by the pool.
type BankSend struct {
	ToAddress string       `json:"toAddress"`
	Denom     string       `json:"denom"`
	Amount    json.Uint256 `json:"amount"`
}

type ExecuteReply struct {
	Messages   []BankSend       `json:"messages"`
	Attributes []lpvm.Attribute `json:"attributes"`
}

func (reply *ExecuteReply) set(res *lpvm.Response) {
	reply.Attributes = res.Attributes
	reply.Messages = make([]BankSend, len(res.Messages))
	for i, msg := range res.Messages {
		reply.Messages[i] = BankSend{
			ToAddress: msg.ToAddress,
			Denom:     msg.Denom,
			Amount:    json.NewUint256(msg.Amount),
		}
	}
}

type ExecuteArgs struct {
	Sender string             `json:"sender"`
	Msg    stdjson.RawMessage `json:"msg"`
}

// Execute runs an execute message on behalf of [args.Sender].
func (s *Service) Execute(r *http.Request, args *ExecuteArgs, reply *ExecuteReply) error {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", "execute"),
		log.String("sender", args.Sender),
	)
	if len(args.Msg) == 0 {
		return errMissingMsg
	}
	res, err := s.backend.Execute(r.Context(), args.Sender, args.Msg)
	if err != nil {
		return err
	}
	reply.set(res)
	return nil
}

type PurchaseArgs struct {
	// TokenContract is the wrapped token paid with.
	TokenContract string       `json:"tokenContract"`
	Buyer         string       `json:"buyer"`
	Amount        json.Uint256 `json:"amount"`
}

// Purchase delivers a transfer of [args.Amount] wrapped tokens from
// [args.Buyer] to the pool.
func (s *Service) Purchase(r *http.Request, args *PurchaseArgs, reply *ExecuteReply) error {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", "purchase"),
		log.String("buyer", args.Buyer),
		log.String("tokenContract", args.TokenContract),
	)
	res, err := s.backend.Send(r.Context(), args.TokenContract, args.Buyer, args.Amount.Int(), []byte(`{}`))
	if err != nil {
		return err
	}
	reply.set(res)
	return nil
}
