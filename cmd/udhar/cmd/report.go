package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summaries, the due list and party statements",
	}

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show what you will get, what you will give and the cash position",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			b, err := a.Book.GetBusiness(ctx, businessID)
			if err != nil {
				return err
			}
			s, err := a.Book.Summary(ctx, businessID)
			if err != nil {
				return err
			}

			cur := a.Book.Currency()
			rows := [][]string{
				{"You will get", reports.FormatAmount(s.Receivable, cur)},
				{"You will give", reports.FormatAmount(s.Payable, cur)},
				{"Cash in", reports.FormatAmount(s.Cash.In, cur)},
				{"Cash out", reports.FormatAmount(s.Cash.Out, cur)},
				{"Cash in hand", signed(s.Cash.Net, cur)},
			}
			md := fmt.Sprintf("# %s\n\n%s", b.Name, table([]string{"", "Amount"}, rows))
			return opts.render(cmd, md)
		}),
	}

	due := &cobra.Command{
		Use:   "due",
		Short: "List parties the business owes money to, with reminder texts",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			s, err := a.Book.Summary(ctx, businessID)
			if err != nil {
				return err
			}

			cur := a.Book.Currency()
			if len(s.Overdue) == 0 {
				return opts.render(cmd, "No pending payments.\n")
			}
			rows := make([][]string, 0, len(s.Overdue))
			for _, p := range s.Overdue {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), p.Name, p.Phone,
					reports.FormatAmount(abs(p.Balance), cur),
					reports.DueReminderMessage(p, cur),
				})
			}
			var b strings.Builder
			fmt.Fprintf(&b, "**Total due:** %s\n\n", reports.FormatAmount(s.OverdueTotal, cur))
			b.WriteString(table([]string{"ID", "Name", "Phone", "Due", "Reminder"}, rows))
			return opts.render(cmd, b.String())
		}),
	}

	statement := &cobra.Command{
		Use:   "statement PARTY_ID",
		Short: "Print a party's account statement",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			var b strings.Builder
			if err := a.Book.Statement(ctx, &b, partyID); err != nil {
				return err
			}
			return opts.render(cmd, b.String())
		}),
	}

	reminder := &cobra.Command{
		Use:   "reminder PARTY_ID",
		Short: "Print the payment reminder text for a party",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			msg, err := a.Book.Reminder(ctx, partyID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		}),
	}

	verify := &cobra.Command{
		Use:   "verify PARTY_ID",
		Short: "Check that a party's balance matches its entries",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			partyID, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			audit, err := a.Ledger.Verify(ctx, partyID)
			if err != nil {
				return err
			}
			if !audit.Consistent() {
				return fmt.Errorf("party %d balance %d does not match its %d entries, which sum to %d",
					partyID, audit.Cached, audit.Entries, audit.Computed)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Party %d: balance %d matches %d entries\n", partyID, audit.Cached, audit.Entries)
			return nil
		}),
	}

	cmd.AddCommand(summary, due, statement, reminder, verify)
	return cmd
}
