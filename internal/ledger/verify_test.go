package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

func TestVerifyDetectsDrift(t *testing.T) {
	ctx := context.Background()
	l, store, partyID := newTestLedger(t)

	if _, err := l.AddEntry(ctx, partyID, models.EntryGot, 90, "", baseTime); err != nil {
		t.Fatal(err)
	}
	audit, err := l.Verify(ctx, partyID)
	if err != nil {
		t.Fatal(err)
	}
	if !audit.Consistent() || audit.Entries != 1 || audit.Computed != 90 {
		t.Errorf("Verify() = %+v, expected a consistent audit of one entry", audit)
	}

	// Corrupt the cached balance behind the ledger's back.
	err = store.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		return tx.UpdatePartyBalance(ctx, partyID, 10)
	})
	if err != nil {
		t.Fatal(err)
	}
	audit, err = l.Verify(ctx, partyID)
	if err != nil {
		t.Fatal(err)
	}
	if audit.Consistent() || audit.Cached != 10 || audit.Computed != 90 {
		t.Errorf("Verify() = %+v, expected drift between 10 and 90", audit)
	}
	if b := balanceOf(t, store, partyID); b != 10 {
		t.Errorf("Verify() wrote the balance: got %d", b)
	}
}

func TestVerifyUnknownParty(t *testing.T) {
	l, _, _ := newTestLedger(t)
	if _, err := l.Verify(context.Background(), 42); !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("Verify() error = %v, expected ErrPartyNotFound", err)
	}
}
