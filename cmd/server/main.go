package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/api"
	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/config"
	"github.com/sheikh-saqib/udharbook/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(false)
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.ForFormat(os.Stderr, cfg.LogFormat, cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize")
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close")
		}
	}()

	if _, err := a.Book.EnsureDefaultBusiness(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create default business")
	}

	handler := api.NewHandler(a.Book, a.Ledger, log)
	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTP.Addr).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting udharbook server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("Server error")
		return
	}
	log.Info().Msg("Server stopped")
}
