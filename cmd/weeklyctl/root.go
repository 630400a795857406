package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "weeklyctl",
		Short: "Admin tool for the Kanso weekly engine",
		Long: `weeklyctl works on the same storage as the API server, configured
through the same environment variables (STORAGE_BACKEND, DATA_FILE, DB_*, ...).`,
		SilenceUsage: true,
	}

	root.AddCommand(newSeedCmd())
	root.AddCommand(newStateCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newCoursesCmd())
	root.AddCommand(newPoolCmd())
	root.AddCommand(newTokenCmd())
	root.AddCommand(newHashPasswordCmd())

	return root
}

// withApp opens the configured stores for the duration of fn.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app)
}
