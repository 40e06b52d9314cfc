package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/config"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

func TestNewWithEachLocalDriver(t *testing.T) {
	tests := []struct {
		driver string
		dsn    string
	}{
		{config.DriverMemory, ""},
		{config.DriverSQLite, "book.db"},
		{config.DriverBolt, "book.bolt"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.Default()
			cfg.Timezone = "UTC"
			cfg.Storage = config.StorageConfig{Driver: tt.driver}
			if tt.dsn != "" {
				cfg.Storage.DSN = filepath.Join(t.TempDir(), tt.dsn)
			}

			a, err := New(ctx, cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer a.Close()

			b, err := a.Book.ActiveBusiness(ctx)
			if err != nil {
				t.Fatalf("ActiveBusiness() error = %v", err)
			}
			p, err := a.Book.AddParty(ctx, b.ID, book.PartyInput{Name: "Ramesh"})
			if err != nil {
				t.Fatal(err)
			}
			if _, err := a.Ledger.AddEntry(ctx, p.ID, models.EntryGot, 10, "", time.Time{}); err != nil {
				t.Fatalf("AddEntry() error = %v", err)
			}
			sum, err := a.Book.Summary(ctx, b.ID)
			if err != nil || sum.Receivable != 10 {
				t.Errorf("Summary() = %+v, %v", sum, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "mysql"
	if _, err := New(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Error("New() should reject an unknown driver")
	}
}

func TestNewWithKafkaDoesNotDial(t *testing.T) {
	cfg := config.Default()
	cfg.Storage = config.StorageConfig{Driver: config.DriverMemory}
	cfg.Kafka.Brokers = []string{"localhost:1"}

	a, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if a.publisher == nil {
		t.Error("expected a publisher when brokers are configured")
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
