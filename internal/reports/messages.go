package reports

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

// BalanceLabel is the caption shown next to a party's balance.
func BalanceLabel(balance int64) string {
	if balance >= 0 {
		return "You will get"
	}
	return "You will give"
}

// FormatAmount renders a whole-unit amount in the given currency, for
// example "₹1,250.00". Unknown currency codes fall back to the bare number.
func FormatAmount(amount int64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return fmt.Sprintf("%d %s", amount, currency)
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := decimal.NewFromInt(amount).Mul(factor)
	return money.New(minor.IntPart(), cur.Code).Display()
}

// ReminderMessage is the text sent from a party's page asking them to
// settle their balance.
func ReminderMessage(p models.Party, currency string) string {
	return fmt.Sprintf("Hello %s, your total pending balance is %s. Please pay at the earliest.",
		p.Name, FormatAmount(abs(p.Balance), currency))
}

// DueReminderMessage is the shorter text sent from the due list.
func DueReminderMessage(p models.Party, currency string) string {
	return fmt.Sprintf("Hello %s, your payment of %s is pending. Please pay soon.",
		p.Name, FormatAmount(abs(p.Balance), currency))
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
