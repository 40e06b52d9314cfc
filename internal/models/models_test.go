package models

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestEntryEffect(t *testing.T) {
	tests := []struct {
		typ    EntryType
		amount int64
		want   int64
	}{
		{EntryGot, 100, 100},
		{EntryGave, 100, -100},
		{EntryGave, 1, -1},
	}
	for _, tt := range tests {
		if got := tt.typ.Effect(tt.amount); got != tt.want {
			t.Errorf("%s.Effect(%d) = %d, expected %d", tt.typ, tt.amount, got, tt.want)
		}
		e := LedgerEntry{Type: tt.typ, Amount: tt.amount}
		if got := e.Effect(); got != tt.want {
			t.Errorf("LedgerEntry{%s, %d}.Effect() = %d, expected %d", tt.typ, tt.amount, got, tt.want)
		}
	}
}

func TestParsers(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) (string, error)
		input   string
		want    string
		wantErr bool
	}{
		{"entry got", parseAs(ParseEntryType), "GOT", "GOT", false},
		{"entry lower case", parseAs(ParseEntryType), "got", "", true},
		{"entry empty", parseAs(ParseEntryType), "", "", true},
		{"role default", parseAs(ParsePartyRole), "", "Customer", false},
		{"role supplier", parseAs(ParsePartyRole), "Supplier", "Supplier", false},
		{"role unknown", parseAs(ParsePartyRole), "Vendor", "", true},
		{"category default", parseAs(ParseBusinessCategory), "", "General", false},
		{"category dairy", parseAs(ParseBusinessCategory), "Dairy", "Dairy", false},
		{"category unknown", parseAs(ParseBusinessCategory), "Bakery", "", true},
		{"cash in", parseAs(ParseCashType), "IN", "IN", false},
		{"cash unknown", parseAs(ParseCashType), "BOTH", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("parse(%q) error = %v, expected it to wrap ErrInvalidInput", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("parse(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

func parseAs[T ~string](parse func(string) (T, error)) func(string) (string, error) {
	return func(s string) (string, error) {
		v, err := parse(s)
		return string(v), err
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("failed to load party: %w", ErrPartyNotFound)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound() should see through wrapping")
	}
	if IsNotFound(ErrInvalidAmount) {
		t.Error("ErrInvalidAmount is not a not-found error")
	}
	if !IsInvalid(ErrInvalidAmount) || !IsInvalid(fmt.Errorf("%w: name is required", ErrInvalidInput)) {
		t.Error("IsInvalid() should match both validation sentinels")
	}
	if IsInvalid(ErrEntryNotFound) {
		t.Error("ErrEntryNotFound is not a validation error")
	}
}

func TestOffersDairyCalculator(t *testing.T) {
	if !(Business{Category: CategoryDairy}).OffersDairyCalculator() {
		t.Error("dairy businesses should offer the calculator")
	}
	if (Business{Category: CategoryGeneral}).OffersDairyCalculator() {
		t.Error("general businesses should not offer the calculator")
	}
}

func TestAddBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		delta   int64
		want    int64
		wantOK  bool
	}{
		{"plain", -60, 100, 40, true},
		{"up to max", math.MaxInt64 - 10, 10, math.MaxInt64, true},
		{"past max", math.MaxInt64 - 10, 11, 0, false},
		{"down to min", math.MinInt64 + 10, -10, math.MinInt64, true},
		{"past min", math.MinInt64 + 10, -11, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddBalance(tt.balance, tt.delta)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("AddBalance(%d, %d) = %d, %v, expected %d, %v", tt.balance, tt.delta, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidAmount(t *testing.T) {
	for _, tt := range []struct {
		amount int64
		want   bool
	}{
		{1, true},
		{MaxAmount, true},
		{MaxAmount + 1, false},
		{0, false},
		{-1, false},
	} {
		if got := ValidAmount(tt.amount); got != tt.want {
			t.Errorf("ValidAmount(%d) = %v, expected %v", tt.amount, got, tt.want)
		}
	}
}
