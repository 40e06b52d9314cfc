package models

import (
	"fmt"
	"time"
)

// CashType is the direction of a cashbook entry.
type CashType string

const (
	CashIn  CashType = "IN"
	CashOut CashType = "OUT"
)

func ParseCashType(s string) (CashType, error) {
	switch CashType(s) {
	case CashIn, CashOut:
		return CashType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown cash type %q", ErrInvalidInput, s)
	}
}

// DefaultCashCategory is used when a cash entry is saved without one.
const DefaultCashCategory = "General"

// CashEntry is a business-level cash movement. It is not tied to a party
// and never touches party balances.
type CashEntry struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	Amount     int64     `json:"amount"`
	Type       CashType  `json:"type"`
	Category   string    `json:"category"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
