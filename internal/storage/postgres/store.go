package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/storage/sqlstore"
)

// Dialect makes sqlstore emit $n placeholders and lock the party row
// read by a ledger transaction.
var Dialect = sqlstore.Dialect{
	Name:                 "postgres",
	NumberedPlaceholders: true,
	LockClause:           " FOR UPDATE",
}

// PostgresLedgerStore is the PostgreSQL backed ledger store.
type PostgresLedgerStore struct {
	*sqlstore.Store
}

// NewPostgresLedgerStore wraps an existing connection pool. Call Migrate
// before first use on an empty database.
func NewPostgresLedgerStore(db *sql.DB) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		Store: sqlstore.New(db, Dialect),
	}
}

// Open connects to dsn, checks the connection and creates the schema.
func Open(ctx context.Context, dsn string) (*PostgresLedgerStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewPostgresLedgerStore(db)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Migrate creates missing tables and indexes.
func (p *PostgresLedgerStore) Migrate(ctx context.Context) error {
	_, err := p.DB().ExecContext(ctx, Schema)
	return err
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
