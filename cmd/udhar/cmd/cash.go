package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

func newCashCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Keep the business cashbook",
	}

	var category, note, at string
	add := &cobra.Command{
		Use:   "add IN|OUT AMOUNT",
		Short: "Record cash coming in or going out",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			amount, err := book.ParseAmount(args[1])
			if err != nil {
				return err
			}
			when, err := parseTime(at, a.Book.Location())
			if err != nil {
				return err
			}

			e, err := a.Book.AddCashEntry(ctx, businessID, book.CashInput{
				Amount:   amount,
				Type:     strings.ToUpper(args[0]),
				Category: category,
				Note:     note,
				At:       when,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cash entry %d: %s %s (%s)\n",
				e.ID, e.Type, reports.FormatAmount(e.Amount, a.Book.Currency()), e.Category)
			return nil
		}),
	}
	add.Flags().StringVar(&category, "category", "", "category (default General)")
	add.Flags().StringVar(&note, "note", "", "free-text note")
	add.Flags().StringVar(&at, "at", "", "entry time, 2006-01-02 or 2006-01-02 15:04 (default now)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the cashbook with totals",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			entries, err := a.Book.ListCashEntries(ctx, businessID)
			if err != nil {
				return err
			}

			cur := a.Book.Currency()
			totals := reports.CashTotals(entries)
			var b strings.Builder
			fmt.Fprintf(&b, "**In:** %s  **Out:** %s  **Net:** %s\n\n",
				reports.FormatAmount(totals.In, cur), reports.FormatAmount(totals.Out, cur), signed(totals.Net, cur))

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					e.CreatedAt.In(a.Book.Location()).Format(reports.DayLayout),
					string(e.Type),
					reports.FormatAmount(e.Amount, cur),
					e.Category,
					e.Note,
				})
			}
			b.WriteString(table([]string{"ID", "Date", "Type", "Amount", "Category", "Note"}, rows))
			return opts.render(cmd, b.String())
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a cash entry",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "cash entry ID")
			if err != nil {
				return err
			}
			if err := a.Book.DeleteCashEntry(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted cash entry %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
