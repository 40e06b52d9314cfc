package reports

import "github.com/sheikh-saqib/udharbook/internal/models"

// Summary combines the home screen totals, the due list and the cashbook
// header for one business.
type Summary struct {
	Receivable   int64          `json:"receivable"`
	Payable      int64          `json:"payable"`
	Overdue      []models.Party `json:"overdue"`
	OverdueTotal int64          `json:"overdue_total"`
	Cash         CashSummary    `json:"cash"`
}

func Summarize(parties []models.Party, cash []models.CashEntry) Summary {
	overdue := OverdueParties(parties)
	return Summary{
		Receivable:   TotalReceivable(parties),
		Payable:      TotalPayable(parties),
		Overdue:      overdue,
		OverdueTotal: TotalPayable(overdue),
		Cash:         CashTotals(cash),
	}
}
