// Package cli implements coinctl, the ledger's admin command line.
package cli

import (
	"context"
	"log/slog"

	"github.com/chris/coin-ledger/pkg/bootstrap"
	"github.com/chris/coin-ledger/pkg/config"
	"github.com/spf13/cobra"
)

// openApp builds the dependencies for a command run. Tests replace it.
var openApp = func(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	return bootstrap.New(ctx, cfg, logger, nil)
}

var app *bootstrap.App

var rootCmd = &cobra.Command{
	Use:   "coinctl",
	Short: "Administer the coin ledger",
	Long: `coinctl talks to the configured ledger store directly. It reads the same
environment as the API server (STORAGE_BACKEND, DYNAMODB_*_TABLE_NAME,
DATABASE_URL, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		app, err = openApp(cmd.Context())
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
