package interfaces

import (
	"context"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

type BusinessStore interface {
	InsertBusiness(ctx context.Context, business models.Business) (int64, error)
	GetBusiness(ctx context.Context, id int64) (models.Business, error)
	ListBusinesses(ctx context.Context) ([]models.Business, error)
	UpdateBusiness(ctx context.Context, business models.Business) error
	// DeleteBusiness also removes the business's parties, their entries and its cash entries.
	DeleteBusiness(ctx context.Context, id int64) error
}

type PartyStore interface {
	// InsertParty stores a new party. The Balance field is ignored: every party starts at 0.
	InsertParty(ctx context.Context, party models.Party) (int64, error)
	GetParty(ctx context.Context, id int64) (models.Party, error)
	// ListPartiesForBusiness returns parties newest first.
	ListPartiesForBusiness(ctx context.Context, businessID int64) ([]models.Party, error)
	// UpdateParty writes the profile fields only. Balance is never written here.
	UpdateParty(ctx context.Context, party models.Party) error
	// DeleteParty also removes the party's ledger entries.
	DeleteParty(ctx context.Context, id int64) error
}

type EntryReader interface {
	GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error)
	// ListEntriesForParty returns entries by descending timestamp.
	ListEntriesForParty(ctx context.Context, partyID int64) ([]models.LedgerEntry, error)
}

type CashStore interface {
	InsertCashEntry(ctx context.Context, entry models.CashEntry) (int64, error)
	GetCashEntry(ctx context.Context, id int64) (models.CashEntry, error)
	// ListCashEntriesForBusiness returns entries by descending timestamp.
	ListCashEntriesForBusiness(ctx context.Context, businessID int64) ([]models.CashEntry, error)
	DeleteCashEntry(ctx context.Context, id int64) error
}

// PreferenceStore keeps small key/value settings such as the active business.
type PreferenceStore interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
}

// LedgerTx is the only write path for ledger entries and party balances.
// Everything done through one LedgerTx commits together or not at all.
type LedgerTx interface {
	GetParty(ctx context.Context, id int64) (models.Party, error)
	GetEntry(ctx context.Context, id int64) (models.LedgerEntry, error)
	InsertEntry(ctx context.Context, entry models.LedgerEntry) (int64, error)
	UpdateEntry(ctx context.Context, entry models.LedgerEntry) error
	DeleteEntry(ctx context.Context, id int64) error
	UpdatePartyBalance(ctx context.Context, partyID int64, balance int64) error
}

type LedgerStore interface {
	BusinessStore
	PartyStore
	EntryReader
	CashStore
	PreferenceStore

	// RunInTx runs fn inside a transaction. It commits when fn returns nil
	// and rolls back otherwise, returning fn's error unchanged.
	RunInTx(ctx context.Context, fn func(tx LedgerTx) error) error
	Close() error
}
