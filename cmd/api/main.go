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

	"github.com/joho/godotenv"

	"github.com/dfarias/fincontrol/internal/auth"
	authStore "github.com/dfarias/fincontrol/internal/auth/store"
	"github.com/dfarias/fincontrol/internal/catalog"
	catalogStore "github.com/dfarias/fincontrol/internal/catalog/store"
	"github.com/dfarias/fincontrol/internal/config"
	"github.com/dfarias/fincontrol/internal/database"
	apiHttp "github.com/dfarias/fincontrol/internal/http"
	authHandler "github.com/dfarias/fincontrol/internal/http/auth"
	catalogHandler "github.com/dfarias/fincontrol/internal/http/catalog"
	dashboardHandler "github.com/dfarias/fincontrol/internal/http/dashboard"
	entryHandler "github.com/dfarias/fincontrol/internal/http/entry"
	"github.com/dfarias/fincontrol/internal/ledger"
	ledgerStore "github.com/dfarias/fincontrol/internal/ledger/store"
	"github.com/dfarias/fincontrol/internal/observability"
	"github.com/dfarias/fincontrol/internal/report"
	reportStore "github.com/dfarias/fincontrol/internal/report/store"
	"github.com/dfarias/fincontrol/internal/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("creating uploads dir: %w", err)
	}

	var (
		ledgerService  = ledger.NewService(ledgerStore.New(db))
		reportService  = report.NewService(reportStore.New(db))
		catalogService = catalog.NewService(catalogStore.New(db))
		authService    = auth.NewService(authStore.New(db), cfg.Auth.Secret, cfg.Auth.TokenTTL)
	)

	var (
		authH      = authHandler.NewHandler(authService)
		entriesH   = entryHandler.NewHandler(ledgerService, cfg.Uploads.Dir)
		dashboardH = dashboardHandler.NewHandler(reportService)
		catalogH   = catalogHandler.NewHandler(catalogService)
	)

	metrics := observability.NewMetrics()
	router := apiHttp.New(metrics, authService, authH, entriesH, dashboardH, catalogH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewOverdueSweeper(ledgerService, cfg.Worker.OverdueInterval)
	go sweeper.Run(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}
