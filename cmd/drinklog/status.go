package drinklog

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/service"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's and this week's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			h, err := t.Home(ctx)
			if err != nil {
				return err
			}
			if statusJSON {
				return writeJSON(cmd, h)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Today (%s): %.1fg / %.0fg, %d drinks, %.1f beers [%s]\n",
				h.Today.Date, h.Today.TotalGrams, h.Today.LimitGrams, h.TodayCount, h.BeerEquivalent, h.Today.Severity)
			fmt.Fprintf(out, "Week from %s: %.1fg / %.0fg (%.0f%%) [%s]\n",
				h.WeekFromDate, h.Week.TotalGrams, h.Week.LimitGrams, h.Week.UsedPercent, h.Week.Severity)
			fmt.Fprintf(out, "Rest days: %d / %d\n", h.Week.RestDays, h.Week.RestDaysTarget)
			if h.Reminder != "" {
				fmt.Fprintf(out, "Reminder: %s\n", h.Reminder)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output JSON")
}
