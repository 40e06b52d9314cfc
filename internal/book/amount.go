package book

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// ParseAmount turns user text into a whole positive amount. Fractions are
// rounded half-up, so "99.5" becomes 100 and "0.4" is rejected. Amounts
// above models.MaxAmount are rejected too.
func ParseAmount(text string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return 0, models.ErrInvalidAmount
	}
	d = d.Round(0)
	if !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(models.MaxAmount)) {
		return 0, models.ErrInvalidAmount
	}
	return d.IntPart(), nil
}
