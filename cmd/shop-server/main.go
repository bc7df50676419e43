package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/petalworks/flowershop/internal/config"
	"github.com/petalworks/flowershop/internal/httpx"
	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/pkg/cache"
	"github.com/petalworks/flowershop/internal/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.ServiceName)

	if cfg.OTLPEndpoint != "" {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("tracer shutdown failed", "error", err)
			}
		}()
	}

	ledger := inventory.NewLedger(inventory.WithObserver(&inventory.LogObserver{}))

	opts := []httpx.HandlerOption{
		httpx.WithFreshnessDays(cfg.FreshnessDays),
		httpx.WithLowStockThreshold(cfg.LowStockThreshold),
	}
	if cfg.RedisAddr != "" {
		opts = append(opts, httpx.WithReportCache(
			cache.NewRedis(cfg.RedisAddr, cfg.ServiceName), cfg.ReportCacheTTL))
	}

	router := httpx.NewRouter(httpx.NewHandler(ledger, opts...))

	slog.Info("flower shop listening", "addr", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
