// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, storage and handlers into the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/ledger-api/internal/config"
	"codeberg.org/oliverandrich/ledger-api/internal/database"
	"codeberg.org/oliverandrich/ledger-api/internal/handlers"
	"codeberg.org/oliverandrich/ledger-api/internal/i18n"
	appmw "codeberg.org/oliverandrich/ledger-api/internal/middleware"
	"codeberg.org/oliverandrich/ledger-api/internal/repository"
	authsvc "codeberg.org/oliverandrich/ledger-api/internal/services/auth"
	"codeberg.org/oliverandrich/ledger-api/internal/services/password"
	"codeberg.org/oliverandrich/ledger-api/internal/services/token"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	SetupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database, with pending migrations applied
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	e, err := New(cfg, repository.New(db))
	if err != nil {
		return err
	}

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the echo instance with middleware and routes.
func New(cfg *config.Config, repo *repository.Repository) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg)
	if err := setupRoutes(e, cfg, repo); err != nil {
		return nil, err
	}

	return e, nil
}

func setupRoutes(e *echo.Echo, cfg *config.Config, repo *repository.Repository) error {
	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)
	tokens := token.NewService(repo, cfg.Auth.TokenName)
	credentials, err := authsvc.NewService(repo, tokens, hasher)
	if err != nil {
		return err
	}

	h := handlers.New(repo)
	a := handlers.NewAuth(credentials)
	requireToken := appmw.RequireToken(credentials)

	e.GET("/health", h.Health)

	// Public
	e.POST("/register", a.Register)
	e.POST("/login", a.Login)

	// Bearer token required
	e.POST("/logout", a.Logout, requireToken)
	e.POST("/update-password", a.UpdatePassword, requireToken)
	e.GET("/user", a.Me, requireToken)
	e.GET("/invoices", h.ListInvoices, requireToken)
	e.POST("/invoices", h.CreateInvoice, requireToken)
	e.GET("/finances", h.Finances, requireToken)
	e.POST("/finances", h.CreateFinanceEntry, requireToken)

	return nil
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}
