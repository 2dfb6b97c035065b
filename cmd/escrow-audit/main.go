package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/toju-network/escrow-contract/internal/audit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Panicf("[‼️  Config parsing failed] %+v\n", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Fatal("escrow audit", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	b, err := newRemoteBlockChain(ctx, cfg.RPCEndpoint, cfg.Contract)
	if err != nil {
		return fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	ver, err := b.version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}

	logger.Info("escrow contract found",
		zap.Stringer("contract", cfg.Contract),
		zap.Stringer("version", ver))

	if cfg.Once {
		r, err := audit.NewAuditor(b, logger, nil, cfg.Interval).RunOnce(ctx)
		if err != nil {
			return err
		}
		if !r.OK() {
			return fmt.Errorf("%d accounting violations found", len(r.Violations))
		}
		return nil
	}

	reg := prometheus.NewRegistry()
	a := audit.NewAuditor(b, logger, audit.NewMetrics(reg), cfg.Interval)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
		Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listen and serve", zap.Error(err))
		}
	}()

	a.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		panic(err)
	}
	cfg.Level.SetLevel(lvl)

	lg, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return lg
}
