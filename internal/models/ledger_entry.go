package models

import (
	"fmt"
	"time"
)

// EntryType is the direction of a ledger entry.
type EntryType string

const (
	// EntryGot records money the business received: balance += amount.
	EntryGot EntryType = "GOT"
	// EntryGave records money the business handed out: balance -= amount.
	EntryGave EntryType = "GAVE"
)

// ParseEntryType only accepts the two upper-case names.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case EntryGot, EntryGave:
		return EntryType(s), nil
	default:
		return "", fmt.Errorf("%w: unknown entry type %q", ErrInvalidInput, s)
	}
}

// MaxAmount is the largest amount a single entry may carry.
const MaxAmount int64 = 1_000_000_000_000

// ValidAmount reports whether amount can be recorded as one entry or cash
// movement.
func ValidAmount(amount int64) bool {
	return amount > 0 && amount <= MaxAmount
}

// AddBalance returns balance+delta. ok is false when the sum does not fit
// in an int64.
func AddBalance(balance, delta int64) (sum int64, ok bool) {
	sum = balance + delta
	if (delta > 0 && sum < balance) || (delta < 0 && sum > balance) {
		return 0, false
	}
	return sum, true
}

// Effect returns the signed change an entry of this type and amount
// applies to the party balance.
func (t EntryType) Effect(amount int64) int64 {
	if t == EntryGot {
		return amount
	}
	return -amount
}

// LedgerEntry represents a single GOT/GAVE record for a party
type LedgerEntry struct {
	ID             int64     `json:"id"`              // unique identifier
	PartyID        int64     `json:"party_id"`        // which party this entry belongs to
	Type           EntryType `json:"type"`            // GOT or GAVE
	Amount         int64     `json:"amount"`          // always positive, direction comes from Type
	RunningBalance int64     `json:"running_balance"` // party balance right after this entry was written
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"created_at"`
}

// Effect is the signed change this entry applied to its party's balance.
func (e LedgerEntry) Effect() int64 {
	return e.Type.Effect(e.Amount)
}
