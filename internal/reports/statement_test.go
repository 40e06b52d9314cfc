package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

func TestWriteStatement(t *testing.T) {
	party := models.Party{Name: "Ramesh", Phone: "9876543210", Balance: 151}
	entries := []models.LedgerEntry{
		{
			Type: models.EntryGave, Amount: 50, RunningBalance: 150,
			Note:      "10 kg | 4 Fat | Rate 50",
			CreatedAt: time.Date(2025, time.March, 11, 18, 5, 0, 0, time.UTC),
		},
		{
			Type: models.EntryGot, Amount: 200, RunningBalance: 200,
			Note:      "advance for the whole month of March",
			CreatedAt: time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			Type: models.EntryGot, Amount: 1, RunningBalance: 0,
			CreatedAt: time.Date(2025, time.March, 9, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	if err := WriteStatement(&buf, party, entries, "USD", time.UTC); err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Statement: Ramesh",
		"Phone: 9876543210",
		"**You will get:** $151.00",
		"| 11 Mar 25 06:05 PM | 10 kg \\| 4 Fat \\| Rate 50 | GAVE | $50.00 | $151.00 |",
		"| advance for the whole mon... | GOT | $200.00 | $201.00 |",
		"| 09 Mar 25 09:30 AM | - | GOT | $1.00 | $1.00 |",
		"**Net balance:** $151.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("statement is missing %q\n%s", want, out)
		}
	}
}

func TestWriteStatementWithoutEntries(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatement(&buf, models.Party{Name: "Sita", Balance: -20}, nil, "USD", nil); err != nil {
		t.Fatalf("WriteStatement() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "**You will give:** $20.00") || !strings.Contains(out, "_No entries._") {
		t.Errorf("unexpected statement:\n%s", out)
	}
}
