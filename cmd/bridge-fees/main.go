package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantumauth-io/bridge-fees/cmd/bridge-fees/config"
	"github.com/quantumauth-io/bridge-fees/internal/balances"
	"github.com/quantumauth-io/bridge-fees/internal/constants"
	"github.com/quantumauth-io/bridge-fees/internal/eth"
	"github.com/quantumauth-io/bridge-fees/internal/fees"
	apphttp "github.com/quantumauth-io/bridge-fees/internal/http"
	"github.com/quantumauth-io/bridge-fees/internal/metrics"
	"github.com/quantumauth-io/bridge-fees/internal/quote"
	"github.com/quantumauth-io/bridge-fees/internal/tokens"
	"github.com/quantumauth-io/bridge-fees/internal/whitelist"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	log.Info(constants.AppName,
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.DefaultPaths()...)
	if err != nil {
		log.Fatal("failed to parse config", "error", err)
	}

	tokenList, err := cfg.TokenList()
	if err != nil {
		log.Fatal("invalid token list", "error", err)
	}

	clients, err := eth.NewFromConfig(&cfg.EthNetworks)
	if err != nil {
		log.Fatal("failed to init eth clients", "error", err)
	}
	defer clients.Close()

	l1, err := clients.ForChain(ctx, cfg.Bridge.L1ChainID)
	if err != nil {
		log.Error("L1 client init failed", "chain_id", cfg.Bridge.L1ChainID, "error", err)
		return
	}

	resolver := whitelist.NewResolver(l1, cfg.AdminAddress(), cfg.Bridge.FromBlock)
	prices := fees.NewCoingecko(cfg.PriceFeed.BaseURL, cfg.PriceFeed.Timeout)
	calc := fees.NewCalculator(l1, prices, cfg.Bridge.FeeLimitPercent)
	quotes := quote.NewService(resolver, calc, quote.NewPoolReader(l1), cfg.WETHAddress())

	backends := func(ctx context.Context, chainID uint64) (balances.Backend, error) {
		c, err := clients.ForChain(ctx, chainID)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	go verifyTokenList(ctx, clients, tokenList)

	feeBuffer, err := cfg.NativeFeeBuffer()
	if err != nil {
		log.Fatal("invalid native fee buffer", "error", err)
	}
	settings := apphttp.Settings{
		NativeFeeBuffer: feeBuffer,
		FeeLimitPercent: cfg.Bridge.FeeLimitPercent,
		L1ChainID:       cfg.Bridge.L1ChainID,
	}

	handler := apphttp.NewHandler(quotes, tokenList, backends, settings, metrics.NewMetricManager())
	router := apphttp.NewRouter(handler, cfg.Server.AllowedOrigins)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
	} else {
		log.Info("HTTP server gracefully stopped")
	}
}

// verifyTokenList checks the configured token metadata against each chain and
// logs what disagrees. It never blocks serving.
func verifyTokenList(ctx context.Context, clients *eth.Clients, list *tokens.List) {
	for _, chainID := range list.Chains() {
		verifyCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		client, err := clients.ForChain(verifyCtx, chainID)
		if err != nil {
			cancel()
			log.Warn("token list check skipped", "chain_id", chainID, "error", err)
			continue
		}

		mismatches, err := tokens.Verify(verifyCtx, client, list.ForChain(chainID))
		cancel()
		if err != nil {
			log.Warn("token list check failed", "chain_id", chainID, "error", err)
		}
		for _, m := range mismatches {
			log.Warn("token list disagrees with chain",
				"chain_id", chainID,
				"token", m.Token.Address.Hex(),
				"field", m.Field,
				"configured", m.Configured,
				"on_chain", m.OnChain,
			)
		}
	}
}
