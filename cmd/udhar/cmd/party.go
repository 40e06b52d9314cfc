package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/reports"
)

func newPartyCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "party",
		Aliases: []string{"parties"},
		Short:   "Manage customers and suppliers",
	}

	var in book.PartyInput
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a customer or supplier to the business",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			in.Name = args[0]
			p, err := a.Book.AddParty(ctx, businessID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %d: %s\n", p.Role, p.ID, p.Name)
			return nil
		}),
	}
	add.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	add.Flags().StringVar(&in.Role, "role", "Customer", "Customer or Supplier")
	add.Flags().StringVar(&in.Address, "address", "", "address")

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List parties, newest first",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			businessID, err := opts.businessID(ctx, a)
			if err != nil {
				return err
			}
			parties, err := a.Book.SearchParties(ctx, businessID, search)
			if err != nil {
				return err
			}

			cur := a.Book.Currency()
			rows := make([][]string, 0, len(parties))
			for _, p := range parties {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), p.Name, p.Phone, string(p.Role),
					reports.FormatAmount(abs(p.Balance), cur), reports.BalanceLabel(p.Balance),
				})
			}
			return opts.render(cmd, table([]string{"ID", "Name", "Phone", "Role", "Balance", ""}, rows))
		}),
	}
	list.Flags().StringVarP(&search, "search", "s", "", "filter by name or phone")

	var name, phone, role, address string
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a party's profile",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			p, err := a.Book.GetParty(ctx, id)
			if err != nil {
				return err
			}

			in := book.PartyInput{Name: p.Name, Phone: p.Phone, Role: string(p.Role), Address: p.Address}
			flags := cmd.Flags()
			if flags.Changed("name") {
				in.Name = name
			}
			if flags.Changed("phone") {
				in.Phone = phone
			}
			if flags.Changed("role") {
				in.Role = role
			}
			if flags.Changed("address") {
				in.Address = address
			}

			p, err = a.Book.UpdateParty(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated party %d: %s\n", p.ID, p.Name)
			return nil
		}),
	}
	edit.Flags().StringVar(&name, "name", "", "new name")
	edit.Flags().StringVar(&phone, "phone", "", "new phone number")
	edit.Flags().StringVar(&role, "role", "", "Customer or Supplier")
	edit.Flags().StringVar(&address, "address", "", "new address")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a party and all its entries",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "party ID")
			if err != nil {
				return err
			}
			if err := a.Book.DeleteParty(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted party %d\n", id)
			return nil
		}),
	}

	cmd.AddCommand(add, list, edit, del)
	return cmd
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
