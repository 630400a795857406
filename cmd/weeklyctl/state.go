package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/bootstrap"
	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
)

func newSeedCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the default routine",
		Long:  "Stores the default routine unless a state already exists. --force replaces it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				data, err := app.Weekly.Seed(ctx, force)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Routine ready: %d tasks, day %s\n", len(data.Sequence), data.DailyState.Date)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing routine")
	return cmd
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show today's progress, applying any pending rollover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				data, err := app.Weekly.GetCurrentDayState(ctx)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), data)
				return nil
			})
		},
	}
}

func printState(w io.Writer, data *domain.WeeklyData) {
	d := data.DailyState

	fmt.Fprintf(w, "Day %s\n", d.Date)
	fmt.Fprintf(w, "Timer: %s %s\n", d.TimerState, formatSeconds(d.TimerElapsedSeconds))

	done := make(map[string]bool, len(d.CompletedTasks))
	for _, id := range d.CompletedTasks {
		done[id] = true
	}

	for i, task := range data.Sequence {
		marker := " "
		switch {
		case done[task.ID]:
			marker = "x"
		case i == d.CurrentTaskIndex && !d.DayCompleted:
			marker = ">"
		}

		line := fmt.Sprintf("[%s] %s", marker, task.Name)
		if len(task.Subtasks) > 0 {
			line += "  (" + task.HistoryName() + ")"
		}
		fmt.Fprintln(w, line)
	}

	if d.DayCompleted {
		fmt.Fprintln(w, "Day completed.")
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the rotation position of every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				summary, err := app.Weekly.GetRotationSummary(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s, ISO week %d, %d/%d done\n", summary.Date, summary.ISOWeek, summary.Completed, summary.TotalTasks)
				for _, ts := range summary.Tasks {
					parts := []string{ts.TaskName, string(ts.Behavior)}
					if ts.Rotation != "" {
						parts = append(parts, string(ts.Rotation))
					}
					if ts.CurrentSubtask != "" {
						parts = append(parts, "at "+ts.CurrentSubtask)
					}
					if ts.CurrentCourse != "" {
						parts = append(parts, "course "+ts.CurrentCourse)
					}
					fmt.Fprintf(out, "  %s  %d/%d days\n", strings.Join(parts, " · "), ts.CompletedDays, ts.PlannedDays)
				}
				return nil
			})
		},
	}
}

func newCoursesCmd() *cobra.Command {
	var add string

	cmd := &cobra.Command{
		Use:   "courses [parent-id]",
		Short: "List unfinished courses, or add one with --add",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()

				if add != "" {
					parentID := domain.SubtaskMacPracticas
					if len(args) == 1 {
						parentID = args[0]
					}
					course, err := app.Weekly.AddCourseToSubtask(ctx, parentID, add)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Added %s (%s)\n", course.Name, course.ID)
					return nil
				}

				courses, err := app.Weekly.GetUnfinishedCourses(ctx)
				if err != nil {
					return err
				}
				if len(courses) == 0 {
					fmt.Fprintln(out, "No unfinished courses.")
					return nil
				}
				for _, c := range courses {
					if len(args) == 1 && c.ParentID != args[0] {
						continue
					}
					marker := " "
					if c.Current {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s / %s  %s\n", marker, c.ParentName, c.Name, c.CourseID)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&add, "add", "", "Name of a course to append")
	return cmd
}

func formatSeconds(total int) string {
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
