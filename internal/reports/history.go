package reports

import (
	"sort"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// WithRunningBalances returns a copy of a party's full entry list where each
// RunningBalance is the fold of that entry and every older one, oldest
// first from zero. The stored snapshots are ignored, so the values stay
// right after an older entry is edited or deleted. Order is kept.
func WithRunningBalances(entries []models.LedgerEntry) []models.LedgerEntry {
	out := make([]models.LedgerEntry, len(entries))
	copy(out, entries)

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := out[order[a]], out[order[b]]
		if !ea.CreatedAt.Equal(eb.CreatedAt) {
			return ea.CreatedAt.Before(eb.CreatedAt)
		}
		return ea.ID < eb.ID
	})

	var balance int64
	for _, i := range order {
		balance += out[i].Effect()
		out[i].RunningBalance = balance
	}
	return out
}
