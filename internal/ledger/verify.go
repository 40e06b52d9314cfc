package ledger

import (
	"context"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// Audit compares a party's cached balance with the sum of its entries.
type Audit struct {
	PartyID  int64 `json:"party_id"`
	Cached   int64 `json:"cached"`
	Computed int64 `json:"computed"`
	Entries  int   `json:"entries"`
}

// Consistent reports whether the cached balance matches the entries.
func (a Audit) Consistent() bool {
	return a.Cached == a.Computed
}

// Verify recomputes a party's balance from its entries. It only reads.
func (l *Ledger) Verify(ctx context.Context, partyID int64) (Audit, error) {
	unlock := l.lockParty(partyID)
	defer unlock()

	party, err := l.store.GetParty(ctx, partyID)
	if err != nil {
		return Audit{}, err
	}
	entries, err := l.store.ListEntriesForParty(ctx, partyID)
	if err != nil {
		return Audit{}, err
	}

	return Audit{
		PartyID:  partyID,
		Cached:   party.Balance,
		Computed: Balance(entries),
		Entries:  len(entries),
	}, nil
}

// Balance is the signed sum of the entries' effects.
func Balance(entries []models.LedgerEntry) int64 {
	var balance int64
	for _, e := range entries {
		balance += e.Effect()
	}
	return balance
}
