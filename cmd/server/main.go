// Copyright 2020 The Unifiedpay Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moov-io/base/admin"
	"github.com/moov-io/base/http/bind"

	"github.com/unifiedpay/transferd/internal/accounts"
	appcfg "github.com/unifiedpay/transferd/internal/config"
	"github.com/unifiedpay/transferd/internal/events"
	"github.com/unifiedpay/transferd/internal/fee"
	"github.com/unifiedpay/transferd/internal/ledger"
	"github.com/unifiedpay/transferd/internal/model"
	"github.com/unifiedpay/transferd/internal/policy"
	"github.com/unifiedpay/transferd/internal/route"
	"github.com/unifiedpay/transferd/internal/transactions"
	"github.com/unifiedpay/transferd/internal/transfers"
	"github.com/unifiedpay/transferd/internal/util"
	"github.com/unifiedpay/transferd/internal/version"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
)

var (
	httpAddr  = flag.String("http.addr", bind.HTTP("transferd"), "HTTP listen address")
	adminAddr = flag.String("admin.addr", bind.Admin("transferd"), "Admin HTTP listen address")

	flagConfigFile = flag.String("config", "", "Filepath for config file to load")
)

func main() {
	flag.Parse()

	configFilepath := util.Or(os.Getenv("CONFIG_FILE"), *flagConfigFile)
	cfg, err := appcfg.FromFile(configFilepath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	cfg.Logger.Log("startup", fmt.Sprintf("Starting transferd server version %s", version.Version))

	// Listen for application termination.
	errs := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errs <- fmt.Errorf("%s", <-c)
	}()

	// Setup the ledger with its demo accounts
	ledgerRepo := ledger.NewInMemory()
	if err := ledgerRepo.Seed(seedAccounts(cfg)); err != nil {
		panic(fmt.Sprintf("problem seeding accounts: %v", err))
	}
	ledgerRepo.RecordMetrics()

	// Spin up admin HTTP server and optionally override -admin.addr
	if v := os.Getenv("HTTP_ADMIN_BIND_ADDRESS"); v != "" {
		*adminAddr = v
	}
	if cfg.Admin.BindAddress != "" {
		*adminAddr = cfg.Admin.BindAddress
	}
	adminServer := admin.NewServer(*adminAddr)
	adminServer.AddVersionHandler(version.Version) // Setup 'GET /version'
	adminServer.AddLivenessCheck("ledger", ledgerRepo.Ping)
	go func() {
		cfg.Logger.Log("admin", fmt.Sprintf("listening on %s", adminServer.BindAddr()))
		if err := adminServer.Listen(); err != nil {
			err = fmt.Errorf("problem starting admin http: %v", err)
			cfg.Logger.Log("admin", err)
			errs <- err
		}
	}()
	defer adminServer.Shutdown()

	// Refresh ledger gauges periodically
	gaugeTicker := cron.New()
	gaugeTicker.AddFunc("@every 1m", func() {
		ledgerRepo.RecordMetrics()
	})
	gaugeTicker.Start()
	defer gaugeTicker.Stop()

	calc := feeCalculator(cfg)
	if err := calc.Validate(); err != nil {
		panic(fmt.Sprintf("problem with fee schedule: %v", err))
	}

	eventRepo := events.NewInMemoryRepo()
	orchestrator := transfers.NewOrchestrator(cfg.Logger, ledgerRepo, outcomePolicy(cfg), calc, eventRepo)

	// Create HTTP handler
	handler := mux.NewRouter()
	handler.NotFoundHandler = route.NotFoundHandler(cfg.Logger)
	route.AddHealthRoute(cfg.Logger, handler)
	events.AddRoutes(cfg.Logger, handler, eventRepo)

	latency := cfg.Simulation.Latency
	accounts.AddRoutes(cfg.Logger, handler, ledgerRepo, latency.Account())
	transactions.AddRoutes(cfg.Logger, handler, ledgerRepo, latency.Transactions(), latency.Transaction())

	xferRouter := transfers.NewTransferRouter(cfg.Logger, orchestrator, latency.Domestic(), latency.International())
	xferRouter.RegisterRoutes(handler)

	// Check to see if our -http.addr flag has been overridden
	if v := os.Getenv("HTTP_BIND_ADDRESS"); v != "" {
		*httpAddr = v
	}
	if cfg.Http.BindAddress != "" {
		*httpAddr = cfg.Http.BindAddress
	}
	serve := &http.Server{
		Addr:         *httpAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	shutdownServer := func() {
		if err := serve.Shutdown(context.TODO()); err != nil {
			cfg.Logger.Log("shutdown", err)
		}
	}
	defer shutdownServer()

	// Start main HTTP server
	go func() {
		cfg.Logger.Log("startup", fmt.Sprintf("binding to %s for HTTP server", *httpAddr))
		if err := serve.ListenAndServe(); err != nil {
			cfg.Logger.Log("exit", err)
		}
	}()

	if err := <-errs; err != nil {
		cfg.Logger.Log("exit", err)
	}
}

func seedAccounts(cfg *appcfg.Config) []*model.Account {
	var out []*model.Account
	for i := range cfg.Accounts.Seed {
		out = append(out, cfg.Accounts.Seed[i].Account())
	}
	return out
}

func feeCalculator(cfg *appcfg.Config) *fee.Calculator {
	calc := fee.NewCalculator()
	calc.DomesticRate = cfg.Transfers.DomesticFeeRate
	calc.InternationalRate = cfg.Transfers.InternationalFeeRate
	calc.InternationalMinimum = cfg.Transfers.InternationalMinimumFee
	calc.ArrivalDays = cfg.Transfers.InternationalArrivalDays
	return calc
}

// outcomePolicy picks the transfer outcome policy. The random failure and
// compliance behaviors stay off unless the simulation is enabled.
func outcomePolicy(cfg *appcfg.Config) policy.Policy {
	if !cfg.Simulation.Enabled {
		return policy.AcceptAll{}
	}
	return policy.NewSimulated(
		cfg.Simulation.DomesticFailureRate,
		cfg.Simulation.ComplianceBlockRate,
		cfg.Simulation.Seed,
	)
}
