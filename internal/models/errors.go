package models

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is zero, negative, too
	// large or not a number, or would push a balance out of range.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidInput is wrapped by every other validation failure.
	ErrInvalidInput = errors.New("invalid input")

	ErrBusinessNotFound  = errors.New("business not found")
	ErrPartyNotFound     = errors.New("party not found")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrCashEntryNotFound = errors.New("cash entry not found")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBusinessNotFound) ||
		errors.Is(err, ErrPartyNotFound) ||
		errors.Is(err, ErrEntryNotFound) ||
		errors.Is(err, ErrCashEntryNotFound)
}

// IsInvalid reports whether err was caused by bad caller input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidAmount) || errors.Is(err, ErrInvalidInput)
}
