// Package main runs the GnuCash-Lite ledger API server.
//
// @title GnuCash-Lite API
// @version 1.0
// @description Double-entry ledger with purchasing and financial reports
//
// @host localhost:8080
// @BasePath /api
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the API token
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pigeonworks-llc/gnucash-lite/internal/api"
	"github.com/pigeonworks-llc/gnucash-lite/internal/ledger"
	"github.com/pigeonworks-llc/gnucash-lite/internal/store"
	"github.com/pigeonworks-llc/gnucash-lite/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Setup structured JSON logging.
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Initialize store.
	st, err := store.New(cfg.Server.DBPath)
	if err != nil {
		slog.Error("failed to initialize store", "error", err, "db_path", cfg.Server.DBPath)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", cfg.Server.DBPath)

	svc := ledger.NewService(st, ledger.Config{
		PayableAccountCode:  cfg.Ledger.PayableAccountCode,
		CashAccountPrefixes: cfg.Ledger.CashAccountPrefixes,
	})

	if cfg.Server.SeedChart {
		n, err := svc.Seed(ledger.DefaultChart())
		if err != nil {
			slog.Error("failed to seed chart of accounts", "error", err)
			os.Exit(1)
		}
		if n > 0 {
			slog.Info("chart of accounts seeded", "accounts", n)
		}
	}

	if cfg.Server.APIToken == "" {
		slog.Warn("API_TOKEN is not set, authentication is disabled")
	}

	router := api.NewRouter(svc, api.RouterConfig{
		Token:       cfg.Server.APIToken,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("starting ledger API server", "addr", addr, "port", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-idle

	slog.Info("server stopped")
}
