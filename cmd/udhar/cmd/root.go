// Package cmd provides the commands of the udhar CLI.
package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sheikh-saqib/udharbook/internal/app"
	"github.com/sheikh-saqib/udharbook/internal/config"
	"github.com/sheikh-saqib/udharbook/internal/logger"
	"github.com/sheikh-saqib/udharbook/internal/models"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	envFile  string
	debug    bool
	raw      bool
	business int64

	log zerolog.Logger
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "udhar",
		Short: "Keep track of what customers owe and what you owe suppliers",
		Long: `udhar is a small-business ledger. It records money given to and
received from customers and suppliers, keeps each party's balance, runs
a separate cashbook and prints summaries and statements.

Storage and other settings come from .env, an optional YAML file named
by UDHAR_CONFIG_FILE and UDHAR_* environment variables.

Example:
  udhar party add "Ramesh" --phone 9876543210
  udhar entry add 1 GAVE 250 --note "10 kg | 4 Fat | Rate 50"
  udhar report summary`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if opts.debug {
				level = zerolog.DebugLevel
			}
			opts.log = logger.New(opts.debug).Level(level)
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "config", "", "env file to load (default is .env)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&opts.raw, "raw", false, "print plain Markdown instead of rendering it")
	root.PersistentFlags().Int64Var(&opts.business, "business", 0, "business ID (default is the active business)")

	root.AddCommand(newBusinessCmd(opts))
	root.AddCommand(newPartyCmd(opts))
	root.AddCommand(newEntryCmd(opts))
	root.AddCommand(newCashCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newCalcCmd(opts))
	return root
}

// Execute runs the CLI. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

type runFunc func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error

// withApp loads configuration, opens the store for the duration of fn and
// closes it afterwards.
func (o *rootOptions) withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(o.envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		ctx := logger.WithContext(cmd.Context(), o.log)
		a, err := app.New(ctx, cfg, o.log)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(); err != nil {
				o.log.Error().Err(err).Msg("failed to close")
			}
		}()

		return fn(ctx, a, cmd, args)
	}
}

// businessID returns the --business flag or the active business.
func (o *rootOptions) businessID(ctx context.Context, a *app.App) (int64, error) {
	if o.business != 0 {
		if _, err := a.Book.GetBusiness(ctx, o.business); err != nil {
			return 0, err
		}
		return o.business, nil
	}
	b, err := a.Book.ActiveBusiness(ctx)
	if err != nil {
		return 0, err
	}
	return b.ID, nil
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", models.ErrInvalidInput, what, s)
	}
	return id, nil
}

var timeLayouts = []string{"2006-01-02 15:04", "2006-01-02"}

// parseTime reads a --at flag in the configured time zone. Empty means now.
func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time %q must look like 2006-01-02 or 2006-01-02 15:04", models.ErrInvalidInput, s)
}
