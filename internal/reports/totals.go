// Package reports derives the home screen, due list, cashbook and statement
// views from snapshots of parties and entries. Everything here is a pure
// fold over its input; nothing is cached.
package reports

import (
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// TotalReceivable is what all parties together owe the business.
func TotalReceivable(parties []models.Party) int64 {
	var total int64
	for _, p := range parties {
		if p.Balance > 0 {
			total += p.Balance
		}
	}
	return total
}

// TotalPayable is what the business owes all parties together, as a
// non-negative number.
func TotalPayable(parties []models.Party) int64 {
	var total int64
	for _, p := range parties {
		if p.Balance < 0 {
			total -= p.Balance
		}
	}
	return total
}

// OverdueParties keeps the parties with a negative balance in input order.
func OverdueParties(parties []models.Party) []models.Party {
	result := []models.Party{}
	for _, p := range parties {
		if p.Balance < 0 {
			result = append(result, p)
		}
	}
	return result
}

// CashSummary totals a cashbook.
type CashSummary struct {
	In  int64 `json:"in"`
	Out int64 `json:"out"`
	Net int64 `json:"net"`
}

func CashTotals(entries []models.CashEntry) CashSummary {
	var s CashSummary
	for _, e := range entries {
		switch e.Type {
		case models.CashIn:
			s.In += e.Amount
		case models.CashOut:
			s.Out += e.Amount
		}
	}
	s.Net = s.In - s.Out
	return s
}

// DayLayout formats the day headers of a party's entry list.
const DayLayout = "02 Jan 06"

// TimeLayout formats the time shown next to each entry.
const TimeLayout = "03:04 PM"

// DayGroup is one section of a party's entry list.
type DayGroup struct {
	Day     string               `json:"day"`
	Entries []models.LedgerEntry `json:"entries"`
}

// GroupEntriesByDay splits entries into calendar days in loc. Groups appear
// in the order their first entry is met and entries keep their input order,
// so a list sorted newest first yields days newest first.
func GroupEntriesByDay(entries []models.LedgerEntry, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}

	groups := []DayGroup{}
	index := make(map[string]int)
	for _, e := range entries {
		day := e.CreatedAt.In(loc).Format(DayLayout)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
