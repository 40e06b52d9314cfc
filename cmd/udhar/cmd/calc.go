package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/calculator"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

func newCalcCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Price calculators",
	}

	dairy := &cobra.Command{
		Use:   "dairy WEIGHT FAT RATE",
		Short: "Price milk from weight (kg), fat and rate",
		Long: `Price milk from weight (kg), fat and rate.

The amount is weight x fat x rate / 100, rounded to the nearest whole unit
with halves rounded up. The printed note can be passed to "entry add --note".

Example:
  udhar calc dairy 10 4 50`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, ok := calculator.ComputeDairyAmount(args[0], args[1], args[2])
			if !ok {
				return fmt.Errorf("%w: weight, fat and rate must all be positive numbers", models.ErrInvalidInput)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Amount: %d\nNote:   %s\n", result.Amount, result.Note)
			return nil
		},
	}

	cmd.AddCommand(dairy)
	return cmd
}
