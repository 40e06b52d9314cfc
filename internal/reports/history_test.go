package reports

import (
	"testing"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

func TestWithRunningBalances(t *testing.T) {
	day := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entries []models.LedgerEntry
		want    []int64
	}{
		{
			name: "stale snapshots after editing the older entry",
			entries: []models.LedgerEntry{
				{ID: 2, Type: models.EntryGot, Amount: 40, RunningBalance: -60, CreatedAt: day.Add(time.Hour)},
				{ID: 1, Type: models.EntryGave, Amount: 10, RunningBalance: 30, CreatedAt: day},
			},
			want: []int64{30, -10},
		},
		{
			name: "same timestamp folds by ID",
			entries: []models.LedgerEntry{
				{ID: 5, Type: models.EntryGave, Amount: 5, CreatedAt: day},
				{ID: 4, Type: models.EntryGot, Amount: 20, CreatedAt: day},
			},
			want: []int64{15, 20},
		},
		{
			name:    "empty",
			entries: nil,
			want:    []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithRunningBalances(tt.entries)
			if len(got) != len(tt.want) {
				t.Fatalf("WithRunningBalances() returned %d entries, expected %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.RunningBalance != tt.want[i] {
					t.Errorf("entry %d running balance = %d, expected %d", e.ID, e.RunningBalance, tt.want[i])
				}
				if e.ID != tt.entries[i].ID {
					t.Errorf("entry order changed at %d: got ID %d, expected %d", i, e.ID, tt.entries[i].ID)
				}
			}
		})
	}
}

func TestWithRunningBalancesLeavesInputAlone(t *testing.T) {
	entries := []models.LedgerEntry{{ID: 1, Type: models.EntryGot, Amount: 10, RunningBalance: 99}}
	WithRunningBalances(entries)
	if entries[0].RunningBalance != 99 {
		t.Errorf("input running balance = %d, expected 99", entries[0].RunningBalance)
	}
}
