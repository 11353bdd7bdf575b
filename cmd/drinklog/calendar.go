package drinklog

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/report"
	"github.com/saadjs/drinklog/internal/service"
)

var (
	calendarMonth string
	calendarJSON  bool
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month calendar with daily drinking levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := resolveMonthRef(calendarMonth)
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			v, err := t.MonthView(ctx, ref.Year(), ref.Month())
			if err != nil {
				return err
			}
			if calendarJSON {
				return writeJSON(cmd, v)
			}
			report.Month(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month in format YYYY-MM (default current month)")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "Output JSON")
}
