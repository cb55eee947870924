// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package checktoken

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/luxfi/lpvm/vms/liquiditypool/bridge"
)

const (
	GRPCAddressKey  = "grpc-address"
	QueryServiceKey = "query-service"
	TokenKey        = "token"
	ListKey         = "list"
)

var errMissingToken = errors.New("--token or --list is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(GRPCAddressKey, "127.0.0.1:9090", "Address of the registry gRPC server")
	flags.String(QueryServiceKey, bridge.DefaultQueryService, "Query service of the registry module")
	flags.String(TokenKey, "", "Wrapped token contract to validate")
	flags.Bool(ListKey, false, "List the tokens approved for trade")
}

type Config struct {
	GRPCAddress  string
	QueryService string
	Token        string
	List         bool
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	address, err := flags.GetString(GRPCAddressKey)
	if err != nil {
		return nil, err
	}
	service, err := flags.GetString(QueryServiceKey)
	if err != nil {
		return nil, err
	}
	token, err := flags.GetString(TokenKey)
	if err != nil {
		return nil, err
	}
	list, err := flags.GetBool(ListKey)
	if err != nil {
		return nil, err
	}
	if token == "" && !list {
		return nil, errMissingToken
	}

	return &Config{
		GRPCAddress:  address,
		QueryService: service,
		Token:        token,
		List:         list,
	}, nil
}
