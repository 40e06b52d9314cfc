package models

import "fmt"

// BusinessCategory selects which entry helpers a business is offered.
type BusinessCategory string

const (
	CategoryGeneral BusinessCategory = "General"
	CategoryDairy   BusinessCategory = "Dairy"
)

// Default business created on first run when none exists.
const (
	DefaultBusinessName     = "My Dairy"
	DefaultBusinessCategory = CategoryDairy
)

// ParseBusinessCategory accepts the category names case-sensitively, with
// an empty string meaning General.
func ParseBusinessCategory(s string) (BusinessCategory, error) {
	switch BusinessCategory(s) {
	case "", CategoryGeneral:
		return CategoryGeneral, nil
	case CategoryDairy:
		return CategoryDairy, nil
	default:
		return "", fmt.Errorf("%w: unknown business category %q", ErrInvalidInput, s)
	}
}

// Business is a bookkeeping profile. It owns parties and cash entries.
type Business struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Category BusinessCategory `json:"category"`
}

// OffersDairyCalculator reports whether entries for this business can be
// priced with the weight/fat/rate calculator.
func (b Business) OffersDairyCalculator() bool {
	return b.Category == CategoryDairy
}
