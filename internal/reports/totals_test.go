package reports

import (
	"reflect"
	"testing"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

func partiesWithBalances(balances ...int64) []models.Party {
	parties := make([]models.Party, len(balances))
	for i, b := range balances {
		parties[i] = models.Party{ID: int64(i + 1), Name: "party", Balance: b}
	}
	return parties
}

func TestHomeTotals(t *testing.T) {
	parties := partiesWithBalances(200, -50, -30, 0)

	if got := TotalReceivable(parties); got != 200 {
		t.Errorf("TotalReceivable() = %d, expected 200", got)
	}
	if got := TotalPayable(parties); got != 80 {
		t.Errorf("TotalPayable() = %d, expected 80", got)
	}

	overdue := OverdueParties(parties)
	var ids []int64
	for _, p := range overdue {
		ids = append(ids, p.ID)
	}
	if !reflect.DeepEqual(ids, []int64{2, 3}) {
		t.Errorf("OverdueParties() ids = %v, expected [2 3]", ids)
	}
}

func TestTotalsOnEmptyInput(t *testing.T) {
	if TotalReceivable(nil) != 0 || TotalPayable(nil) != 0 {
		t.Error("totals of no parties should be zero")
	}
	if got := OverdueParties(nil); got == nil || len(got) != 0 {
		t.Errorf("OverdueParties(nil) = %#v, expected empty slice", got)
	}
}

func TestCashTotals(t *testing.T) {
	tests := []struct {
		name    string
		entries []models.CashEntry
		want    CashSummary
	}{
		{"empty", nil, CashSummary{}},
		{
			"mixed",
			[]models.CashEntry{
				{Type: models.CashIn, Amount: 500},
				{Type: models.CashOut, Amount: 120},
				{Type: models.CashIn, Amount: 80},
			},
			CashSummary{In: 580, Out: 120, Net: 460},
		},
		{
			"more out than in",
			[]models.CashEntry{
				{Type: models.CashIn, Amount: 10},
				{Type: models.CashOut, Amount: 40},
			},
			CashSummary{In: 10, Out: 40, Net: -30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CashTotals(tt.entries); got != tt.want {
				t.Errorf("CashTotals() = %+v, expected %+v", got, tt.want)
			}
		})
	}
}

func TestGroupEntriesByDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	at := func(day, hour int) time.Time {
		return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
	}

	// Newest first, as the store returns them. 20:00 UTC on the 11th is
	// already the 12th in IST.
	entries := []models.LedgerEntry{
		{ID: 5, CreatedAt: at(11, 20)},
		{ID: 4, CreatedAt: at(11, 9)},
		{ID: 3, CreatedAt: at(11, 8)},
		{ID: 2, CreatedAt: at(9, 10)},
		{ID: 1, CreatedAt: at(9, 7)},
	}

	groups := GroupEntriesByDay(entries, ist)

	var days []string
	var ids [][]int64
	for _, g := range groups {
		days = append(days, g.Day)
		var group []int64
		for _, e := range g.Entries {
			group = append(group, e.ID)
		}
		ids = append(ids, group)
	}

	if want := []string{"12 Mar 25", "11 Mar 25", "09 Mar 25"}; !reflect.DeepEqual(days, want) {
		t.Errorf("GroupEntriesByDay() days = %v, expected %v", days, want)
	}
	if want := [][]int64{{5}, {4, 3}, {2, 1}}; !reflect.DeepEqual(ids, want) {
		t.Errorf("GroupEntriesByDay() ids = %v, expected %v", ids, want)
	}
}

func TestGroupEntriesByDayKeepsFirstAppearanceOrder(t *testing.T) {
	// Unsorted input: groups follow the first entry met, never the label.
	entries := []models.LedgerEntry{
		{ID: 1, CreatedAt: time.Date(2025, time.January, 2, 10, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2025, time.February, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 3, CreatedAt: time.Date(2025, time.January, 2, 11, 0, 0, 0, time.UTC)},
	}

	groups := GroupEntriesByDay(entries, time.UTC)
	if len(groups) != 2 {
		t.Fatalf("GroupEntriesByDay() returned %d groups, expected 2", len(groups))
	}
	if groups[0].Day != "02 Jan 25" || len(groups[0].Entries) != 2 || groups[0].Entries[1].ID != 3 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Day != "01 Feb 25" {
		t.Errorf("second group day = %q, expected 01 Feb 25", groups[1].Day)
	}
}
