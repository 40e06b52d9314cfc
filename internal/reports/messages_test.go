package reports

import (
	"strings"
	"testing"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

func TestBalanceLabel(t *testing.T) {
	tests := []struct {
		balance int64
		want    string
	}{
		{150, "You will get"},
		{0, "You will get"},
		{-1, "You will give"},
	}
	for _, tt := range tests {
		if got := BalanceLabel(tt.balance); got != tt.want {
			t.Errorf("BalanceLabel(%d) = %q, expected %q", tt.balance, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		contains string
	}{
		{"rupees with grouping", 1234, "INR", "1,234"},
		{"dollars", 50, "USD", "$50.00"},
		{"unknown currency", 7, "ZZZ", "7 ZZZ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.amount, tt.currency); !strings.Contains(got, tt.contains) {
				t.Errorf("FormatAmount(%d, %q) = %q, expected it to contain %q", tt.amount, tt.currency, got, tt.contains)
			}
		})
	}
}

func TestReminderMessages(t *testing.T) {
	p := models.Party{Name: "Ramesh", Balance: -350}

	msg := ReminderMessage(p, "USD")
	if want := "Hello Ramesh, your total pending balance is $350.00. Please pay at the earliest."; msg != want {
		t.Errorf("ReminderMessage() = %q, expected %q", msg, want)
	}

	due := DueReminderMessage(p, "USD")
	if want := "Hello Ramesh, your payment of $350.00 is pending. Please pay soon."; due != want {
		t.Errorf("DueReminderMessage() = %q, expected %q", due, want)
	}
}
