// Package app wires configuration, storage, the ledger engine and the book
// service together for the server and CLI binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/config"
	"github.com/sheikh-saqib/udharbook/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/ledger"
	"github.com/sheikh-saqib/udharbook/internal/storage/bolt"
	"github.com/sheikh-saqib/udharbook/internal/storage/memory"
	"github.com/sheikh-saqib/udharbook/internal/storage/postgres"
	"github.com/sheikh-saqib/udharbook/internal/storage/sqlite"
)

type App struct {
	Config *config.Config
	Log    zerolog.Logger
	Store  interfaces.LedgerStore
	Ledger *ledger.Ledger
	Book   *book.Service

	publisher *kafka.Publisher
}

// New opens the configured store and builds the services on top of it.
// The caller must Close the App.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("driver", cfg.Storage.Driver).Msg("store opened")

	a := &App{Config: cfg, Log: log, Store: store}

	ledgerOpts := []ledger.Option{ledger.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		a.publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		ledgerOpts = append(ledgerOpts, ledger.WithPublisher(a.publisher))
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing entry events")
	}

	a.Ledger = ledger.NewLedger(store, ledgerOpts...)
	a.Book = book.New(store,
		book.WithLogger(log),
		book.WithCurrency(cfg.Currency),
		book.WithLocation(cfg.Location()),
	)
	return a, nil
}

// OpenStore returns the store named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (interfaces.LedgerStore, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewMemoryLedgerStore(), nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverBolt:
		s, err := bolt.Open(cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close publisher: %w", err))
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	return errors.Join(errs...)
}
