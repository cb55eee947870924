// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serve

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/log"

	"github.com/luxfi/lpvm/host"
	"github.com/luxfi/lpvm/registry"
	"github.com/luxfi/lpvm/utils/json"
	"github.com/luxfi/lpvm/vms/liquiditypool"
	"github.com/luxfi/lpvm/vms/liquiditypool/api"
	"github.com/luxfi/lpvm/vms/liquiditypool/metrics"
	"github.com/luxfi/lpvm/vms/liquiditypool/txs"
)

const (
	apiPath         = "/ext/lp"
	metricsPath     = "/metrics"
	metricNamespace = "lp"
	shutdownTimeout = 10 * time.Second
)

var (
	hostPrefix     = []byte("host")
	registryPrefix = []byte("registry")
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Runs a pool on a local in-memory ledger",
		RunE:  serveFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

// Node is a pool, its registry and their servers.
type Node struct {
	Host       *host.Host
	Registry   *registry.Registry
	Gatherer   prometheus.Gatherer
	HTTP       http.Handler
	GRPCServer interface {
		Serve(net.Listener) error
		GracefulStop()
	}
}

// NewNode creates and instantiates a pool on a fresh ledger.
func NewNode(ctx context.Context, config *Config, logger log.Logger) (*Node, error) {
	registerer := prometheus.NewRegistry()
	if err := registerer.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	m, err := metrics.New(metricNamespace, registerer)
	if err != nil {
		return nil, err
	}

	factory := &liquiditypool.Factory{
		Config:  config.Contract,
		Metrics: m,
	}
	contract, err := factory.New(logger)
	if err != nil {
		return nil, err
	}

	db := memdb.New()
	h, err := host.New(config.Host, prefixdb.New(hostPrefix, db), contract, logger)
	if err != nil {
		return nil, err
	}

	reg := registry.New(prefixdb.New(registryPrefix, db), logger)
	for _, token := range config.WrappedTokens {
		if err := reg.Approve(token.ChainID, token.ContractAddress); err != nil {
			return nil, err
		}
		if err := reg.RegisterWrapped(token.Wrapped, token.ChainID, token.ContractAddress); err != nil {
			return nil, err
		}
	}
	routes := reg.Routes(config.Contract.QueryService)
	h.Router().Register(routes)

	totalSupply := json.NewUint256(config.TotalSupply)
	dailyLimitBP := json.FromUint64(config.DailyLimitBP)
	msg, err := stdjson.Marshal(&txs.InstantiateMsg{
		Admin:        &config.Admin,
		DailyLimitBP: &dailyLimitBP,
		TotalSupply:  &totalSupply,
	})
	if err != nil {
		return nil, err
	}
	if _, err := h.Instantiate(ctx, config.Admin, msg); err != nil {
		return nil, fmt.Errorf("failed to instantiate %s: %w", contract.Version(), err)
	}

	if !config.PoolBalance.IsZero() {
		cfg, err := host.QueryInto[txs.ConfigResponse](ctx, h, []byte(`{"config":{}}`))
		if err != nil {
			return nil, err
		}
		if err := h.Mint(h.Address(), cfg.NativeDenom, config.PoolBalance); err != nil {
			return nil, err
		}
	}

	service, err := api.NewService(h, logger, registerer)
	if err != nil {
		return nil, err
	}
	// lp.execute trusts the caller's sender, so cross-origin calls are only
	// accepted from explicitly listed origins.
	var apiHandler http.Handler = service
	if len(config.AllowedOrigins) > 0 {
		apiHandler = cors.New(cors.Options{
			AllowedOrigins: config.AllowedOrigins,
		}).Handler(service)
	}
	router := mux.NewRouter()
	router.Handle(apiPath, apiHandler).Methods(http.MethodPost, http.MethodOptions)
	router.Handle(metricsPath, promhttp.HandlerFor(registerer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	grpcMetrics := grpc_prometheus.NewServerMetrics()
	if err := registerer.Register(grpcMetrics); err != nil {
		return nil, err
	}
	grpcServer := registry.NewServer(routes, grpc.StreamInterceptor(grpcMetrics.StreamServerInterceptor()))
	grpcMetrics.InitializeMetrics(grpcServer)

	logger.Info("pool ready",
		log.String("contract", h.Address()),
		log.String("admin", config.Admin),
		log.Stringer("poolBalance", config.PoolBalance),
		log.Int("wrappedTokens", len(config.WrappedTokens)),
	)
	return &Node{
		Host:       h,
		Registry:   reg,
		Gatherer:   registerer,
		HTTP:       router,
		GRPCServer: grpcServer,
	}, nil
}

func serveFunc(c *cobra.Command, args []string) error {
	config, err := ParseFlags(c.Flags(), args)
	if err != nil {
		return err
	}

	logger := log.NewLogger("lpvm")
	node, err := NewNode(c.Context(), config, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", config.GRPCAddress)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              config.HTTPAddress,
		Handler:           node.HTTP,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(c.Context())
	g.Go(func() error {
		logger.Info("serving registry", log.String("address", listener.Addr().String()))
		return node.GRPCServer.Serve(listener)
	})
	g.Go(func() error {
		logger.Info("serving api",
			log.String("address", config.HTTPAddress),
			log.String("path", apiPath),
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		node.GRPCServer.GracefulStop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
