package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/services"
)

func newPoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Manage the general task pool used by Lista",
	}

	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a pending task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				task, err := app.Pool.Add(ctx, services.AddPoolTaskInput{Name: args[0], Category: category})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s [%s] %s\n", task.Name, task.Category, task.ID)
				return nil
			})
		},
	}
	add.Flags().StringVarP(&category, "category", "c", "", "Category (default General)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List pending tasks by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				tasks, err := app.Pool.ListPending(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(tasks) == 0 {
					fmt.Fprintln(out, "No pending tasks.")
					return nil
				}

				var currentCategory string
				for _, t := range tasks {
					if t.Category != currentCategory {
						fmt.Fprintln(out, t.Category)
						currentCategory = t.Category
					}
					fmt.Fprintf(out, "  %s  %s\n", t.Name, t.ID)
				}
				return nil
			})
		},
	}

	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.Pool.Complete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", args[0])
				return nil
			})
		},
	}

	cmd.AddCommand(add, list, complete)
	return cmd
}
