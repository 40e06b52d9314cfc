package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeDairyAmount(t *testing.T) {
	tests := []struct {
		name              string
		weight, fat, rate string
		wantOK            bool
		wantAmount        int64
		wantNote          string
	}{
		{"whole numbers", "10", "4", "50", true, 20, "10 kg | 4 Fat | Rate 50"},
		{"decimals", "12.5", "6.2", "45", true, 35, "12.5 kg | 6.2 Fat | Rate 45"},
		{"half rounds up", "1", "1", "50", true, 1, "1 kg | 1 Fat | Rate 50"},
		{"just below half rounds down", "1", "1", "49", true, 0, "1 kg | 1 Fat | Rate 49"},
		{"surrounding spaces", " 10 ", "4", "50", true, 20, "10 kg | 4 Fat | Rate 50"},
		{"empty weight", "", "4", "50", false, 0, ""},
		{"zero fat", "10", "0", "50", false, 0, ""},
		{"negative rate", "10", "4", "-50", false, 0, ""},
		{"not a number", "ten", "4", "50", false, 0, ""},
		{"total too large", "100000000000", "100000000000", "100000000000", false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputeDairyAmount(tt.weight, tt.fat, tt.rate)
			if ok != tt.wantOK {
				t.Fatalf("ComputeDairyAmount() ok = %v, expected %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("ComputeDairyAmount() amount = %d, expected %d", got.Amount, tt.wantAmount)
			}
			if got.Note != tt.wantNote {
				t.Errorf("ComputeDairyAmount() note = %q, expected %q", got.Note, tt.wantNote)
			}
		})
	}
}

func TestComputeRejectsNonPositive(t *testing.T) {
	one := decimal.NewFromInt(1)
	if _, ok := Compute(decimal.Zero, one, one); ok {
		t.Error("Compute() with zero weight should not produce a result")
	}
	if got, ok := Compute(decimal.RequireFromString("2.5"), one, hundred); !ok || got.Amount != 3 {
		t.Errorf("Compute(2.5, 1, 100) = %+v, %v, expected amount 3", got, ok)
	}
}
