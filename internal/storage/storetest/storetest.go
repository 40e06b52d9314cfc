// Package storetest holds the behaviour every LedgerStore backend must share.
// Backends call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// Opener returns a fresh, empty store. The suite closes it.
type Opener func(t *testing.T) interfaces.LedgerStore

var base = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

// Run runs the conformance suite against stores produced by open.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s interfaces.LedgerStore)
	}{
		{"Businesses", testBusinesses},
		{"Parties", testParties},
		{"UpdatePartyKeepsBalance", testUpdatePartyKeepsBalance},
		{"Entries", testEntries},
		{"EntryOrder", testEntryOrder},
		{"RollbackOnError", testRollbackOnError},
		{"DeletePartyCascades", testDeletePartyCascades},
		{"DeleteBusinessCascades", testDeleteBusinessCascades},
		{"Cash", testCash},
		{"Preferences", testPreferences},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

func mustBusiness(t *testing.T, s interfaces.LedgerStore, name string) int64 {
	t.Helper()
	id, err := s.InsertBusiness(context.Background(), models.Business{Name: name, Category: models.CategoryGeneral})
	if err != nil {
		t.Fatalf("InsertBusiness(%q) error = %v", name, err)
	}
	return id
}

func mustParty(t *testing.T, s interfaces.LedgerStore, businessID int64, name string) int64 {
	t.Helper()
	id, err := s.InsertParty(context.Background(), models.Party{
		BusinessID: businessID,
		Name:       name,
		Phone:      "9800000000",
		Role:       models.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("InsertParty(%q) error = %v", name, err)
	}
	return id
}

// mustEntry writes an entry and the matching balance the way the ledger engine does.
func mustEntry(t *testing.T, s interfaces.LedgerStore, partyID int64, typ models.EntryType, amount int64, at time.Time) int64 {
	t.Helper()
	ctx := context.Background()
	var id int64
	err := s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		p, err := tx.GetParty(ctx, partyID)
		if err != nil {
			return err
		}
		balance := p.Balance + typ.Effect(amount)
		id, err = tx.InsertEntry(ctx, models.LedgerEntry{
			PartyID:        partyID,
			Type:           typ,
			Amount:         amount,
			RunningBalance: balance,
			CreatedAt:      at,
		})
		if err != nil {
			return err
		}
		return tx.UpdatePartyBalance(ctx, partyID, balance)
	})
	if err != nil {
		t.Fatalf("writing entry: %v", err)
	}
	return id
}

func testBusinesses(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()

	if _, err := s.GetBusiness(ctx, 42); !errors.Is(err, models.ErrBusinessNotFound) {
		t.Fatalf("GetBusiness(missing) error = %v, expected ErrBusinessNotFound", err)
	}

	first := mustBusiness(t, s, "Shop")
	second, err := s.InsertBusiness(ctx, models.Business{Name: "Dairy", Category: models.CategoryDairy})
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("InsertBusiness returned the same id %d twice", first)
	}

	got, err := s.GetBusiness(ctx, second)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Dairy" || got.Category != models.CategoryDairy {
		t.Errorf("GetBusiness() = %+v", got)
	}

	got.Name = "Milk Centre"
	if err := s.UpdateBusiness(ctx, got); err != nil {
		t.Fatal(err)
	}
	list, err := s.ListBusinesses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != first || list[1].Name != "Milk Centre" {
		t.Errorf("ListBusinesses() = %+v", list)
	}

	if err := s.UpdateBusiness(ctx, models.Business{ID: 999, Name: "x"}); !errors.Is(err, models.ErrBusinessNotFound) {
		t.Errorf("UpdateBusiness(missing) error = %v", err)
	}
	if err := s.DeleteBusiness(ctx, 999); !errors.Is(err, models.ErrBusinessNotFound) {
		t.Errorf("DeleteBusiness(missing) error = %v", err)
	}
}

func testParties(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	other := mustBusiness(t, s, "Other")

	if _, err := s.InsertParty(ctx, models.Party{BusinessID: 999, Name: "Nobody"}); !errors.Is(err, models.ErrBusinessNotFound) {
		t.Errorf("InsertParty(unknown business) error = %v", err)
	}

	id, err := s.InsertParty(ctx, models.Party{BusinessID: biz, Name: "Ravi", Role: models.RoleSupplier, Balance: 500})
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.GetParty(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Balance != 0 {
		t.Errorf("new party balance = %d, expected 0", p.Balance)
	}
	if p.Role != models.RoleSupplier || p.BusinessID != biz {
		t.Errorf("GetParty() = %+v", p)
	}

	second := mustParty(t, s, biz, "Sita")
	mustParty(t, s, other, "Elsewhere")

	list, err := s.ListPartiesForBusiness(ctx, biz)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("ListPartiesForBusiness() returned %d parties, expected 2", len(list))
	}
	if list[0].ID != second || list[1].ID != id {
		t.Errorf("ListPartiesForBusiness() order = [%d %d], expected newest first [%d %d]", list[0].ID, list[1].ID, second, id)
	}

	if _, err := s.GetParty(ctx, 999); !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("GetParty(missing) error = %v", err)
	}
	if err := s.UpdateParty(ctx, models.Party{ID: 999, Name: "x"}); !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("UpdateParty(missing) error = %v", err)
	}
	if err := s.DeleteParty(ctx, 999); !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("DeleteParty(missing) error = %v", err)
	}
}

func testUpdatePartyKeepsBalance(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	id := mustParty(t, s, biz, "Ravi")
	mustEntry(t, s, id, models.EntryGot, 300, base)

	err := s.UpdateParty(ctx, models.Party{ID: id, BusinessID: biz, Name: "Ravi Kumar", Phone: "1", Role: models.RoleCustomer, Address: "Main Road", Balance: -1})
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.GetParty(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Ravi Kumar" || p.Address != "Main Road" {
		t.Errorf("UpdateParty() did not write profile: %+v", p)
	}
	if p.Balance != 300 {
		t.Errorf("UpdateParty() changed balance to %d, expected 300", p.Balance)
	}
}

func testEntries(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	party := mustParty(t, s, biz, "Ravi")

	id := mustEntry(t, s, party, models.EntryGave, 100, base)
	e, err := s.GetEntry(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if e.PartyID != party || e.Type != models.EntryGave || e.Amount != 100 || e.RunningBalance != -100 {
		t.Errorf("GetEntry() = %+v", e)
	}
	if !e.CreatedAt.Equal(base) {
		t.Errorf("GetEntry().CreatedAt = %v, expected %v", e.CreatedAt, base)
	}

	err = s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		e.Note = "edited"
		e.Amount = 150
		return tx.UpdateEntry(ctx, e)
	})
	if err != nil {
		t.Fatal(err)
	}
	e, _ = s.GetEntry(ctx, id)
	if e.Note != "edited" || e.Amount != 150 {
		t.Errorf("UpdateEntry() not applied: %+v", e)
	}

	err = s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		return tx.DeleteEntry(ctx, id)
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEntry(ctx, id); !errors.Is(err, models.ErrEntryNotFound) {
		t.Errorf("GetEntry(deleted) error = %v", err)
	}

	err = s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		return tx.DeleteEntry(ctx, id)
	})
	if !errors.Is(err, models.ErrEntryNotFound) {
		t.Errorf("DeleteEntry(missing) error = %v", err)
	}

	err = s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		return tx.UpdatePartyBalance(ctx, 999, 1)
	})
	if !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("UpdatePartyBalance(missing) error = %v", err)
	}
}

func testEntryOrder(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	party := mustParty(t, s, biz, "Ravi")
	other := mustParty(t, s, biz, "Sita")

	oldest := mustEntry(t, s, party, models.EntryGot, 10, base)
	newest := mustEntry(t, s, party, models.EntryGot, 20, base.Add(48*time.Hour))
	middle := mustEntry(t, s, party, models.EntryGave, 5, base.Add(24*time.Hour))
	mustEntry(t, s, other, models.EntryGot, 99, base)

	entries, err := s.ListEntriesForParty(ctx, party)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{newest, middle, oldest}
	if len(entries) != len(want) {
		t.Fatalf("ListEntriesForParty() returned %d entries, expected %d", len(entries), len(want))
	}
	for i, id := range want {
		if entries[i].ID != id {
			t.Errorf("entries[%d].ID = %d, expected %d", i, entries[i].ID, id)
		}
	}
}

func testRollbackOnError(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	party := mustParty(t, s, biz, "Ravi")

	boom := errors.New("boom")
	err := s.RunInTx(ctx, func(tx interfaces.LedgerTx) error {
		if _, err := tx.InsertEntry(ctx, models.LedgerEntry{
			PartyID: party, Type: models.EntryGot, Amount: 50, RunningBalance: 50, CreatedAt: base,
		}); err != nil {
			return err
		}
		if err := tx.UpdatePartyBalance(ctx, party, 50); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunInTx() error = %v, expected %v", err, boom)
	}

	p, err := s.GetParty(ctx, party)
	if err != nil {
		t.Fatal(err)
	}
	if p.Balance != 0 {
		t.Errorf("balance after rollback = %d, expected 0", p.Balance)
	}
	entries, err := s.ListEntriesForParty(ctx, party)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("entries after rollback = %d, expected 0", len(entries))
	}
}

func testDeletePartyCascades(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	party := mustParty(t, s, biz, "Ravi")
	keep := mustParty(t, s, biz, "Sita")
	entry := mustEntry(t, s, party, models.EntryGot, 10, base)
	kept := mustEntry(t, s, keep, models.EntryGot, 10, base)

	if err := s.DeleteParty(ctx, party); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEntry(ctx, entry); !errors.Is(err, models.ErrEntryNotFound) {
		t.Errorf("entry of deleted party still readable: err = %v", err)
	}
	if _, err := s.GetEntry(ctx, kept); err != nil {
		t.Errorf("entry of other party removed: %v", err)
	}
}

func testDeleteBusinessCascades(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")
	party := mustParty(t, s, biz, "Ravi")
	entry := mustEntry(t, s, party, models.EntryGave, 10, base)
	cash, err := s.InsertCashEntry(ctx, models.CashEntry{BusinessID: biz, Amount: 5, Type: models.CashIn, CreatedAt: base})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteBusiness(ctx, biz); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetParty(ctx, party); !errors.Is(err, models.ErrPartyNotFound) {
		t.Errorf("party survived business delete: err = %v", err)
	}
	if _, err := s.GetEntry(ctx, entry); !errors.Is(err, models.ErrEntryNotFound) {
		t.Errorf("entry survived business delete: err = %v", err)
	}
	if _, err := s.GetCashEntry(ctx, cash); !errors.Is(err, models.ErrCashEntryNotFound) {
		t.Errorf("cash entry survived business delete: err = %v", err)
	}
}

func testCash(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()
	biz := mustBusiness(t, s, "Shop")

	if _, err := s.InsertCashEntry(ctx, models.CashEntry{BusinessID: 999, Amount: 1, Type: models.CashIn, CreatedAt: base}); !errors.Is(err, models.ErrBusinessNotFound) {
		t.Errorf("InsertCashEntry(unknown business) error = %v", err)
	}

	in, err := s.InsertCashEntry(ctx, models.CashEntry{BusinessID: biz, Amount: 500, Type: models.CashIn, Category: "Sales", Note: "milk", CreatedAt: base})
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.InsertCashEntry(ctx, models.CashEntry{BusinessID: biz, Amount: 120, Type: models.CashOut, Category: "General", CreatedAt: base.Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetCashEntry(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Amount != 500 || got.Type != models.CashIn || got.Category != "Sales" || got.Note != "milk" {
		t.Errorf("GetCashEntry() = %+v", got)
	}

	list, err := s.ListCashEntriesForBusiness(ctx, biz)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != out || list[1].ID != in {
		t.Errorf("ListCashEntriesForBusiness() = %+v, expected newest first", list)
	}

	if err := s.DeleteCashEntry(ctx, in); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCashEntry(ctx, in); !errors.Is(err, models.ErrCashEntryNotFound) {
		t.Errorf("DeleteCashEntry(twice) error = %v", err)
	}
}

func testPreferences(t *testing.T, s interfaces.LedgerStore) {
	ctx := context.Background()

	if _, found, err := s.GetPreference(ctx, "last_business_id"); err != nil || found {
		t.Fatalf("GetPreference(unset) = found %v, err %v", found, err)
	}
	if err := s.SetPreference(ctx, "last_business_id", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetPreference(ctx, "last_business_id", "2"); err != nil {
		t.Fatal(err)
	}
	v, found, err := s.GetPreference(ctx, "last_business_id")
	if err != nil || !found || v != "2" {
		t.Errorf("GetPreference() = %q, %v, %v; expected \"2\", true, nil", v, found, err)
	}
}
