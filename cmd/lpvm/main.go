// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/luxfi/lpvm/cmd/lpvm/checktoken"
	"github.com/luxfi/lpvm/cmd/lpvm/quote"
	"github.com/luxfi/lpvm/cmd/lpvm/serve"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:   "lpvm",
		Short: "Runs and inspects an inference liquidity pool",
	}
	cmd.AddCommand(
		serve.Command(),
		quote.Command(),
		checktoken.Command(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
