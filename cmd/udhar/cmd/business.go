package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

func newBusinessCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business",
		Short: "Manage businesses",
	}

	var category string
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a business",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			b, err := a.Book.CreateBusiness(ctx, args[0], category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created business %d: %s (%s)\n", b.ID, b.Name, b.Category)
			return nil
		}),
	}
	add.Flags().StringVar(&category, "category", string(models.CategoryGeneral), "General or Dairy")

	list := &cobra.Command{
		Use:   "list",
		Short: "List businesses",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			if _, err := a.Book.EnsureDefaultBusiness(ctx); err != nil {
				return err
			}
			active, err := a.Book.ActiveBusiness(ctx)
			if err != nil {
				return err
			}
			businesses, err := a.Book.ListBusinesses(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(businesses))
			for _, b := range businesses {
				mark := ""
				if b.ID == active.ID {
					mark = "*"
				}
				rows = append(rows, []string{strconv.FormatInt(b.ID, 10), b.Name, string(b.Category), mark})
			}
			return opts.render(cmd, table([]string{"ID", "Name", "Category", "Active"}, rows))
		}),
	}

	rename := &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a business",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "business ID")
			if err != nil {
				return err
			}
			b, err := a.Book.RenameBusiness(ctx, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed business %d to %s\n", b.ID, b.Name)
			return nil
		}),
	}

	setCategory := &cobra.Command{
		Use:   "category ID CATEGORY",
		Short: "Change a business category (General or Dairy)",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "business ID")
			if err != nil {
				return err
			}
			b, err := a.Book.SetBusinessCategory(ctx, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Business %d is now %s\n", b.ID, b.Category)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a business with all its parties, entries and cashbook",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "business ID")
			if err != nil {
				return err
			}
			if err := a.Book.DeleteBusiness(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted business %d\n", id)
			return nil
		}),
	}

	use := &cobra.Command{
		Use:   "use ID",
		Short: "Make a business the active one",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "business ID")
			if err != nil {
				return err
			}
			b, err := a.Book.SelectBusiness(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Active business: %s\n", b.Name)
			return nil
		}),
	}

	cmd.AddCommand(add, list, rename, setCategory, del, use)
	return cmd
}
