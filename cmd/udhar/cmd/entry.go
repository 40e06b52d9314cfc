package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/ledger"
	"github.com/sheikh-saqib/udharbook/internal/models"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

func newEntryCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries"},
		Short:   "Record money given to or received from a party",
	}

	var note, at, weight, fat, rate string
	add := &cobra.Command{
		Use:   "add PARTY_ID GOT|GAVE [AMOUNT]",
		Short: "Add an entry and update the party balance",
		Long: `Add an entry and update the party balance.

GOT means the business received money from the party and raises what the
party owes. GAVE means the business gave money or goods to the party and
lowers it.

For Dairy businesses --weight, --fat and --rate price the entry with the
milk calculator and fill in the amount and note. An AMOUNT argument or
--note given as well overrides the calculated value.

Example:
  udhar entry add 3 GAVE --weight 10 --fat 4 --rate 50`,
		Args: cobra.RangeArgs(2, 3),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			typ, err := models.ParseEntryType(strings.ToUpper(args[1]))
			if err != nil {
				return err
			}
			when, err := parseTime(at, a.Book.Location())
			if err != nil {
				return err
			}

			var amount int64
			entryNote := note
			flags := cmd.Flags()
			if flags.Changed("weight") || flags.Changed("fat") || flags.Changed("rate") {
				quote, err := a.Book.DairyQuote(ctx, partyID, weight, fat, rate)
				if err != nil {
					return err
				}
				amount = quote.Amount
				if !flags.Changed("note") {
					entryNote = quote.Note
				}
			}
			if len(args) == 3 {
				if amount, err = book.ParseAmount(args[2]); err != nil {
					return err
				}
			}
			if amount == 0 {
				return fmt.Errorf("%w: give an AMOUNT or --weight, --fat and --rate", models.ErrInvalidAmount)
			}

			e, err := a.Ledger.AddEntry(ctx, partyID, typ, amount, entryNote, when)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry %d: %s %s, balance %s\n",
				e.ID, e.Type, reports.FormatAmount(e.Amount, a.Book.Currency()), signed(e.RunningBalance, a.Book.Currency()))
			return nil
		}),
	}
	add.Flags().StringVar(&note, "note", "", "free-text note")
	add.Flags().StringVar(&at, "at", "", "entry time, 2006-01-02 or 2006-01-02 15:04 (default now)")
	add.Flags().StringVar(&weight, "weight", "", "milk weight in kg (Dairy businesses)")
	add.Flags().StringVar(&fat, "fat", "", "milk fat (Dairy businesses)")
	add.Flags().StringVar(&rate, "rate", "", "rate per unit of fat (Dairy businesses)")

	var editNote, editAt string
	edit := &cobra.Command{
		Use:   "edit PARTY_ID ENTRY_ID GOT|GAVE AMOUNT",
		Short: "Change an entry's type, amount, note or time",
		Args:  cobra.ExactArgs(4),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			entryID, err := parseID(args[1], "entry ID")
			if err != nil {
				return err
			}
			partyID, typ, amount, err := parseEntryArgs([]string{args[0], args[2], args[3]})
			if err != nil {
				return err
			}
			when, err := parseTime(editAt, a.Book.Location())
			if err != nil {
				return err
			}

			current, err := a.Store.GetEntry(ctx, entryID)
			if err != nil {
				return err
			}
			change := ledger.EntryChange{Type: typ, Amount: amount, Note: current.Note, At: when}
			if cmd.Flags().Changed("note") {
				change.Note = editNote
			}

			e, err := a.Ledger.EditEntry(ctx, partyID, entryID, change)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry %d: %s %s, balance %s\n",
				e.ID, e.Type, reports.FormatAmount(e.Amount, a.Book.Currency()), signed(e.RunningBalance, a.Book.Currency()))
			return nil
		}),
	}
	edit.Flags().StringVar(&editNote, "note", "", "new note (default keeps the current one)")
	edit.Flags().StringVar(&editAt, "at", "", "new entry time (default keeps the current one)")

	del := &cobra.Command{
		Use:   "delete PARTY_ID ENTRY_ID",
		Short: "Delete an entry and reverse its effect on the balance",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			entryID, err := parseID(args[1], "entry ID")
			if err != nil {
				return err
			}
			p, err := a.Ledger.DeleteEntry(ctx, partyID, entryID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d, %s balance %s\n", entryID, p.Name, signed(p.Balance, a.Book.Currency()))
			return nil
		}),
	}

	list := &cobra.Command{
		Use:   "list PARTY_ID",
		Short: "List a party's entries grouped by day, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			p, err := a.Book.GetParty(ctx, partyID)
			if err != nil {
				return err
			}
			entries, err := a.Book.ListEntries(ctx, partyID)
			if err != nil {
				return err
			}

			cur := a.Book.Currency()
			var b strings.Builder
			fmt.Fprintf(&b, "# %s\n\n%s: %s\n", p.Name, reports.BalanceLabel(p.Balance), reports.FormatAmount(abs(p.Balance), cur))
			entries = reports.WithRunningBalances(entries)
			for _, day := range reports.GroupEntriesByDay(entries, a.Book.Location()) {
				fmt.Fprintf(&b, "\n## %s\n\n", day.Day)
				rows := make([][]string, 0, len(day.Entries))
				for _, e := range day.Entries {
					rows = append(rows, []string{
						strconv.FormatInt(e.ID, 10),
						e.CreatedAt.In(a.Book.Location()).Format(reports.TimeLayout),
						string(e.Type),
						reports.FormatAmount(e.Amount, cur),
						signed(e.RunningBalance, cur),
						e.Note,
					})
				}
				b.WriteString(table([]string{"ID", "Time", "Type", "Amount", "Balance", "Note"}, rows))
			}
			return opts.render(cmd, b.String())
		}),
	}

	cmd.AddCommand(add, edit, del, list)
	return cmd
}

func parseEntryArgs(args []string) (int64, models.EntryType, int64, error) {
	partyID, err := parseID(args[0], "party ID")
	if err != nil {
		return 0, "", 0, err
	}
	typ, err := models.ParseEntryType(strings.ToUpper(args[1]))
	if err != nil {
		return 0, "", 0, err
	}
	amount, err := book.ParseAmount(args[2])
	if err != nil {
		return 0, "", 0, err
	}
	return partyID, typ, amount, nil
}

func signed(amount int64, currency string) string {
	if amount < 0 {
		return "-" + reports.FormatAmount(-amount, currency)
	}
	return reports.FormatAmount(amount, currency)
}
