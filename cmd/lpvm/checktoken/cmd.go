// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checktoken

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/luxfi/log"

	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "check-token",
		Short: "Asks a registry whether a wrapped token is approved for trade",
		RunE:  checkTokenFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

// Reply is the printed result.
type Reply struct {
	Token          string                 `json:"token,omitempty"`
	IsValid        *bool                  `json:"isValid,omitempty"`
	ApprovedTokens []bridge.ApprovedToken `json:"approvedTokens,omitempty"`
}

// Run queries the registry reachable through [conn].
func Run(ctx context.Context, conn grpc.ClientConnInterface, config *Config) (*Reply, error) {
	gateway := bridge.NewGateway(bridge.NewConnTransport(conn), config.QueryService, log.NewNoOpLogger())

	reply := &Reply{}
	if config.Token != "" {
		isValid, err := gateway.ValidateWrappedToken(ctx, config.Token)
		if err != nil {
			return nil, err
		}
		reply.Token = bridge.NormalizeTokenID(config.Token)
		reply.IsValid = &isValid
	}
	if config.List {
		tokens, err := gateway.ApprovedTokens(ctx)
		if err != nil {
			return nil, err
		}
		reply.ApprovedTokens = tokens
	}
	return reply, nil
}

func checkTokenFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	conn, err := grpc.NewClient(config.GRPCAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	reply, err := Run(c.Context(), conn, config)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(c.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(reply)
}
