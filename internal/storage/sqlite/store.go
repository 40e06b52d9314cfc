package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/storage/sqlstore"
)

var Dialect = sqlstore.Dialect{Name: "sqlite"}

// Store is a ledger store kept in a single SQLite file.
type Store struct {
	*sqlstore.Store
}

// Open opens (or creates) the database at dbPath.
// It enables WAL mode and foreign key constraints, and takes the write
// lock when a transaction begins so concurrent ledger writes queue
// instead of failing with SQLITE_BUSY halfway through.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	// Ensure database file's parent directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{Store: sqlstore.New(db, Dialect)}, nil
}

var _ interfaces.LedgerStore = (*Store)(nil)
