// Package calculator prices milk deliveries from weight, fat percentage and
// the per-unit rate agreed with the customer.
package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxTotal = decimal.NewFromInt(math.MaxInt64)
)

// DairyResult is a suggested amount for a ledger entry and the note that
// describes how it was derived.
type DairyResult struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

// ComputeDairyAmount parses the three inputs and calls Compute. ok is false
// when any input is not a positive number, in which case the caller keeps
// whatever amount it already had.
func ComputeDairyAmount(weight, fat, rate string) (DairyResult, bool) {
	w, ok := parsePositive(weight)
	if !ok {
		return DairyResult{}, false
	}
	f, ok := parsePositive(fat)
	if !ok {
		return DairyResult{}, false
	}
	r, ok := parsePositive(rate)
	if !ok {
		return DairyResult{}, false
	}
	return Compute(w, f, r)
}

// Compute returns round(weight * fat * rate / 100) with halves rounded up,
// and a note of the form "<weight> kg | <fat> Fat | Rate <rate>". ok is
// false when the total does not fit in an int64.
func Compute(weight, fat, rate decimal.Decimal) (DairyResult, bool) {
	if !weight.IsPositive() || !fat.IsPositive() || !rate.IsPositive() {
		return DairyResult{}, false
	}

	// Round(0) rounds half away from zero, which is half-up for positives.
	total := weight.Mul(fat).Mul(rate).Div(hundred).Round(0)
	if total.GreaterThan(maxTotal) {
		return DairyResult{}, false
	}
	return DairyResult{
		Amount: total.IntPart(),
		Note:   fmt.Sprintf("%s kg | %s Fat | Rate %s", weight, fat, rate),
	}, true
}

func parsePositive(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
