// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm"
	"github.com/luxfi/lpvm/host"
	"github.com/luxfi/lpvm/registry"
	"github.com/luxfi/lpvm/vms/liquiditypool"
	"github.com/luxfi/lpvm/vms/liquiditypool/config"
	"github.com/luxfi/lpvm/vms/liquiditypool/metrics"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

type testServer struct {
	server *httptest.Server
	host   *host.Host
	admin  string
	token  string
	buyer  string
}

func newAddress(t *testing.T) string {
	t.Helper()
	addr, err := host.FormatAddress(host.DefaultHRP, ids.GenerateTestShortID())
	require.NoError(t, err)
	return addr
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	require := require.New(t)

	contract := liquiditypool.New(config.DefaultConfig(), log.NewNoOpLogger(), metrics.NewNoOp())
	h, err := host.New(host.DefaultConfig(), memdb.New(), contract, log.NewNoOpLogger())
	require.NoError(err)

	reg := registry.New(memdb.New(), log.NewNoOpLogger())
	h.Router().Register(reg.Routes(""))

	s := &testServer{
		host:  h,
		admin: newAddress(t),
		token: newAddress(t),
		buyer: newAddress(t),
	}
	require.NoError(reg.Approve("ethereum", "0x2222222222222222222222222222222222222222"))
	require.NoError(reg.RegisterWrapped(s.token, "ethereum", "0x2222222222222222222222222222222222222222"))

	init, err := stdjson.Marshal(map[string]string{
		"admin":        s.admin,
		"total_supply": "120000000000000000",
	})
	require.NoError(err)
	_, err = h.Instantiate(context.Background(), s.admin, init)
	require.NoError(err)
	require.NoError(h.Mint(h.Address(), "ngonka", uint256.NewInt(10_000_000_000)))

	handler, err := NewService(h, log.NewNoOpLogger(), prometheus.NewRegistry())
	require.NoError(err)
	s.server = httptest.NewServer(handler)
	t.Cleanup(s.server.Close)
	return s
}

type rpcError struct {
	Message string `json:"message"`
}

type rpcResponse struct {
	Result stdjson.RawMessage `json:"result"`
	Error  *rpcError          `json:"error"`
}

// call returns the JSON-RPC error message, if any.
func (s *testServer) call(t *testing.T, method string, params any, reply any) string {
	t.Helper()
	require := require.New(t)

	body, err := stdjson.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(err)

	resp, err := http.Post(s.server.URL, "application/json", bytes.NewReader(body))
	require.NoError(err)
	defer resp.Body.Close()

	res := rpcResponse{}
	require.NoError(stdjson.NewDecoder(resp.Body).Decode(&res))
	if res.Error != nil {
		return res.Error.Message
	}
	require.NoError(stdjson.Unmarshal(res.Result, reply))
	return ""
}

func TestServiceQueries(t *testing.T) {
	require := require.New(t)

	s := newTestServer(t)

	cfg := txs.ConfigResponse{}
	require.Empty(s.call(t, "lp.getConfig", struct{}{}, &cfg))
	require.Equal(s.admin, cfg.Admin)
	require.Equal("ngonka", cfg.NativeDenom)

	pricingInfo := txs.PricingInfoResponse{}
	require.Empty(s.call(t, "lp.getPricingInfo", struct{}{}, &pricingInfo))
	require.Equal("25000", pricingInfo.CurrentPriceUSD.String())

	calculation := txs.TokenCalculationResponse{}
	require.Empty(s.call(t, "lp.calculateTokens", map[string]string{"usdAmount": "100000000"}, &calculation))
	require.Equal("4000000000", calculation.Tokens.String())

	nativeBalance := txs.NativeBalanceResponse{}
	require.Empty(s.call(t, "lp.getNativeBalance", struct{}{}, &nativeBalance))
	require.Equal("10000000000", nativeBalance.Balance.Amount.String())

	stats := txs.DailyStatsResponse{}
	require.Empty(s.call(t, "lp.getDailyStats", struct{}{}, &stats))
	require.Equal("30000000000000000000", stats.DailyLimitUSD.String())

	height := txs.BlockHeightResponse{}
	require.Empty(s.call(t, "lp.getBlockHeight", struct{}{}, &height))
	require.Equal(uint64(2), height.Height)

	for _, stargate := range []bool{false, true} {
		validation := txs.TestBridgeValidationResponse{}
		require.Empty(s.call(t, "lp.validateBridgeToken", ValidateBridgeTokenArgs{Token: s.token, Stargate: stargate}, &validation))
		require.True(validation.IsValid)
	}
}

func TestServicePurchase(t *testing.T) {
	require := require.New(t)

	s := newTestServer(t)

	reply := ExecuteReply{}
	require.Empty(s.call(t, "lp.purchase", map[string]string{
		"tokenContract": s.token,
		"buyer":         s.buyer,
		"amount":        "100000000",
	}, &reply))
	require.Len(reply.Messages, 1)
	require.Equal(s.buyer, reply.Messages[0].ToAddress)
	require.Equal("4000000000", reply.Messages[0].Amount.String())

	balance, err := s.host.Balance(s.buyer, "ngonka")
	require.NoError(err)
	require.Equal(uint64(4_000_000_000), balance.Uint64())

	msg := s.call(t, "lp.purchase", map[string]string{
		"tokenContract": newAddress(t),
		"buyer":         s.buyer,
		"amount":        "100000000",
	}, &reply)
	require.Contains(msg, liquiditypool.ErrTokenNotAccepted.Error())
}

func TestServiceExecute(t *testing.T) {
	require := require.New(t)

	s := newTestServer(t)

	reply := ExecuteReply{}
	require.Empty(s.call(t, "lp.execute", map[string]any{
		"sender": s.admin,
		"msg":    map[string]any{"pause": map[string]any{}},
	}, &reply))
	require.Contains(reply.Attributes, lpvm.Attribute{Key: "method", Value: "pause"})

	msg := s.call(t, "lp.execute", map[string]any{
		"sender": s.buyer,
		"msg":    map[string]any{"resume": map[string]any{}},
	}, &reply)
	require.Contains(msg, liquiditypool.ErrUnauthorized.Error())

	msg = s.call(t, "lp.execute", map[string]any{"sender": s.admin}, &reply)
	require.Contains(msg, errMissingMsg.Error())
}
