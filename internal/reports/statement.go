package reports

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sheikh-saqib/udharbook/internal/models"
)

const statementNoteLimit = 25

// WriteStatement writes a Markdown account statement for a party. entries
// must be all of the party's entries. They are listed in the order given,
// which is newest first when they come straight from the store, and the
// Balance column is folded from them rather than read from the snapshots.
func WriteStatement(w io.Writer, p models.Party, entries []models.LedgerEntry, currency string, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Statement: %s\n\n", escapeCell(p.Name))
	if p.Phone != "" {
		fmt.Fprintf(bw, "Phone: %s\n\n", escapeCell(p.Phone))
	}
	fmt.Fprintf(bw, "**%s:** %s\n\n", BalanceLabel(p.Balance), FormatAmount(abs(p.Balance), currency))

	if len(entries) == 0 {
		fmt.Fprintln(bw, "_No entries._")
		return bw.Flush()
	}

	fmt.Fprintln(bw, "| Date | Note | Type | Amount | Balance |")
	fmt.Fprintln(bw, "|---|---|---|---|---:|")
	for _, e := range WithRunningBalances(entries) {
		at := e.CreatedAt.In(loc)
		fmt.Fprintf(bw, "| %s %s | %s | %s | %s | %s |\n",
			at.Format(DayLayout), at.Format(TimeLayout),
			escapeCell(shortNote(e.Note)),
			e.Type,
			FormatAmount(e.Amount, currency),
			FormatAmount(e.RunningBalance, currency),
		)
	}
	fmt.Fprintf(bw, "\n**Net balance:** %s\n", FormatAmount(p.Balance, currency))
	return bw.Flush()
}

func shortNote(note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return "-"
	}
	if utf8.RuneCountInString(note) > statementNoteLimit {
		return string([]rune(note)[:statementNoteLimit]) + "..."
	}
	return note
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
