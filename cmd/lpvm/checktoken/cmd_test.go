// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checktoken

import (
	"context"
	"net"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm/registry"
	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

const (
	wrapped  = "gonka1wrappedusdccontract"
	chainID  = "ethereum"
	external = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"
)

func dial(t *testing.T) *grpc.ClientConn {
	t.Helper()
	require := require.New(t)

	r := registry.New(memdb.New(), log.NewNoOpLogger())
	require.NoError(r.Approve(chainID, external))
	require.NoError(r.RegisterWrapped(wrapped, chainID, external))

	listener := bufconn.Listen(1 << 20)
	server := registry.NewServer(r.Routes(bridge.DefaultQueryService))
	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func TestRun(t *testing.T) {
	require := require.New(t)

	conn := dial(t)
	ctx := context.Background()

	reply, err := Run(ctx, conn, &Config{
		QueryService: bridge.DefaultQueryService,
		Token:        bridge.CW20Prefix + wrapped,
		List:         true,
	})
	require.NoError(err)
	require.Equal(wrapped, reply.Token)
	require.NotNil(reply.IsValid)
	require.True(*reply.IsValid)
	require.Equal([]bridge.ApprovedToken{{ChainID: chainID, ContractAddress: external}}, reply.ApprovedTokens)

	reply, err = Run(ctx, conn, &Config{
		QueryService: bridge.DefaultQueryService,
		Token:        "gonka1unknowncontract",
	})
	require.NoError(err)
	require.False(*reply.IsValid)
	require.Empty(reply.ApprovedTokens)
}

func TestParseFlagsRequiresTarget(t *testing.T) {
	flags := pflag.NewFlagSet("check-token", pflag.ContinueOnError)
	AddFlags(flags)
	_, err := ParseFlags(flags, nil)
	require.ErrorIs(t, err, errMissingToken)
}
