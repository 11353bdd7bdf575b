package drinklog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show or set drinking goals",
}

var goalJSON bool

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			g, err := t.Goal(ctx)
			if err != nil {
				return err
			}
			return printGoal(cmd, g)
		})
	},
}

var (
	goalWeekly       float64
	goalDaily        float64
	goalRestDays     int
	goalReminder     bool
	goalReminderTime string
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update goal fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var in service.SetGoalInput
		if flags.Changed("weekly-limit") {
			in.WeeklyLimitGrams = &goalWeekly
		}
		if flags.Changed("daily-limit") {
			in.DailyLimitGrams = &goalDaily
		}
		if flags.Changed("rest-days") {
			in.WeeklyRestDays = &goalRestDays
		}
		if flags.Changed("reminder") {
			in.ReminderEnabled = &goalReminder
		}
		if flags.Changed("reminder-time") {
			in.ReminderTime = &goalReminderTime
		}
		if in == (service.SetGoalInput{}) {
			return fmt.Errorf("nothing to update: pass at least one of --weekly-limit, --daily-limit, --rest-days, --reminder, --reminder-time")
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			g, err := t.SetGoal(ctx, in)
			if err != nil {
				return err
			}
			return printGoal(cmd, g)
		})
	},
}

func printGoal(cmd *cobra.Command, g model.Goal) error {
	if goalJSON {
		return writeJSON(cmd, map[string]any{
			"weekly_limit_g":   g.WeeklyLimitGrams,
			"daily_limit_g":    g.DailyLimitGrams,
			"weekly_rest_days": g.WeeklyRestDays,
			"reminder_enabled": g.ReminderEnabled,
			"reminder_time":    g.ReminderTime,
		})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Weekly limit: %.0fg\n", g.WeeklyLimitGrams)
	fmt.Fprintf(out, "Daily limit: %.0fg\n", g.DailyLimitGrams)
	fmt.Fprintf(out, "Rest days per week: %d\n", g.WeeklyRestDays)
	if g.ReminderEnabled {
		fmt.Fprintf(out, "Reminder: %s\n", g.ReminderTime)
	} else {
		fmt.Fprintln(out, "Reminder: off")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalShowCmd, goalSetCmd)

	goalCmd.PersistentFlags().BoolVar(&goalJSON, "json", false, "Output JSON")

	goalSetCmd.Flags().Float64Var(&goalWeekly, "weekly-limit", 0, "Weekly pure alcohol limit in grams")
	goalSetCmd.Flags().Float64Var(&goalDaily, "daily-limit", 0, "Daily pure alcohol limit in grams")
	goalSetCmd.Flags().IntVar(&goalRestDays, "rest-days", 0, "Target rest days per week (0-7)")
	goalSetCmd.Flags().BoolVar(&goalReminder, "reminder", true, "Enable the daily reminder")
	goalSetCmd.Flags().StringVar(&goalReminderTime, "reminder-time", "", "Reminder time HH:MM")
}
