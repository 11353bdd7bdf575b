package drinklog

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/metrics"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/report"
	"github.com/saadjs/drinklog/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View daily, weekly, monthly, yearly and range statistics",
}

var (
	statsJSON       bool
	statsNoCharts   bool
	statsOutPath    string
	statsOutFormat  string
	statsMetricsOut string
)

var (
	statsDate  string
	statsWeek  string
	statsMonth string
	statsYear  string
	statsFrom  string
	statsTo    string
	statsDays  int
)

var isoWeekPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

var statsDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Statistics for a single day",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseDateOrToday("date", statsDate)
		if err != nil {
			return err
		}
		return runPeriodStats(cmd, period.Day, ref)
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Weekly statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := resolveWeekRef(statsWeek, statsDate)
		if err != nil {
			return err
		}
		return runPeriodStats(cmd, period.Week, ref)
	},
}

var statsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Monthly statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := resolveMonthRef(statsMonth)
		if err != nil {
			return err
		}
		return runPeriodStats(cmd, period.Month, ref)
	},
}

var statsYearCmd = &cobra.Command{
	Use:   "year",
	Short: "Yearly statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := resolveYearRef(statsYear)
		if err != nil {
			return err
		}
		return runPeriodStats(cmd, period.Year, ref)
	},
}

var statsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Statistics for an inclusive date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsFrom == "" || statsTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		from, err := parseDate("from", statsFrom)
		if err != nil {
			return err
		}
		to, err := parseDate("to", statsTo)
		if err != nil {
			return err
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			r, err := t.RangeReport(ctx, from, to)
			if err != nil {
				return err
			}
			return emitReport(cmd, r)
		})
	},
}

var statsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily pure alcohol totals for the trailing days",
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsDays <= 0 {
			return fmt.Errorf("--days must be > 0")
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			series, err := t.DailyTrend(ctx, statsDays)
			if err != nil {
				return err
			}
			if statsJSON {
				return writeJSON(cmd, series)
			}
			report.DailyBars(cmd.OutOrStdout(), series)
			return nil
		})
	},
}

func runPeriodStats(cmd *cobra.Command, p period.Period, ref time.Time) error {
	return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
		r, err := t.PeriodReport(ctx, p, ref)
		if err != nil {
			return err
		}
		return emitReport(cmd, r)
	})
}

// emitReport writes the optional report file and metrics textfile, then
// prints the report to stdout.
func emitReport(cmd *cobra.Command, r *service.Report) error {
	if statsOutPath != "" {
		format, err := report.ParseFormat(statsOutFormat)
		if err != nil {
			return err
		}
		data, err := report.Render(r, format, statsNoCharts)
		if err != nil {
			return err
		}
		if err := writeFile(statsOutPath, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved report to %s\n", statsOutPath)
	}
	if statsMetricsOut != "" {
		m := metrics.NewManager()
		m.Record(snapshotOf(r))
		if err := m.WriteTextfile(statsMetricsOut); err != nil {
			return err
		}
		rt.log.Debug("metrics written", "path", statsMetricsOut)
	}
	if statsJSON {
		return writeJSON(cmd, r)
	}
	report.Text(cmd.OutOrStdout(), r, statsNoCharts)
	return nil
}

func snapshotOf(r *service.Report) metrics.Snapshot {
	return metrics.Snapshot{
		Period:         r.Period,
		PureAlcoholG:   r.Statistics.TotalPureAlcoholGrams,
		VolumeMl:       r.Statistics.TotalVolumeMl,
		Records:        r.Statistics.RecordCount,
		DrinkingDays:   r.Statistics.DrinkingDayCount,
		RestDays:       r.RestDays,
		GoalLimitG:     r.Goal.LimitGrams,
		GoalUsedPct:    r.Goal.UsedPercent,
		GoalSeverity:   string(r.Goal.Severity),
		RestDaysTarget: r.Goal.RestDaysTarget,
	}
}

// resolveWeekRef maps an ISO week to the calendar week containing its
// Thursday, so weeks starting on Sunday or Saturday still line up.
func resolveWeekRef(week, date string) (time.Time, error) {
	if week == "" {
		return parseDateOrToday("date", date)
	}
	if !isoWeekPattern.MatchString(week) {
		return time.Time{}, fmt.Errorf("invalid --week value %q (expected YYYY-Www)", week)
	}
	var year, weekNum int
	if _, err := fmt.Sscanf(week, "%4d-W%2d", &year, &weekNum); err != nil {
		return time.Time{}, fmt.Errorf("invalid --week value %q (expected YYYY-Www)", week)
	}
	maxWeek := weeksInISOYear(year)
	if weekNum < 1 || weekNum > maxWeek {
		return time.Time{}, fmt.Errorf("invalid --week value %q (week must be between 01 and %02d for %d)", week, maxWeek, year)
	}
	return isoWeekStart(year, weekNum, location()).AddDate(0, 0, 3), nil
}

func resolveMonthRef(month string) (time.Time, error) {
	if month == "" {
		return time.Now().In(location()), nil
	}
	parsed, err := time.ParseInLocation("2006-01", month, location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --month value %q (expected YYYY-MM)", month)
	}
	return parsed, nil
}

func resolveYearRef(year string) (time.Time, error) {
	if year == "" {
		return time.Now().In(location()), nil
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 || y > 9999 {
		return time.Time{}, fmt.Errorf("invalid --year value %q (expected YYYY)", year)
	}
	return time.Date(y, time.January, 1, 0, 0, 0, 0, location()), nil
}

func isoWeekStart(year, week int, loc *time.Location) time.Time {
	jan4 := time.Date(year, 1, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

func weeksInISOYear(year int) int {
	_, wk := time.Date(year, 12, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return wk
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsDayCmd, statsWeekCmd, statsMonthCmd, statsYearCmd, statsRangeCmd, statsDailyCmd)

	for _, c := range []*cobra.Command{statsDayCmd, statsWeekCmd, statsMonthCmd, statsYearCmd, statsRangeCmd} {
		c.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
		c.Flags().BoolVar(&statsNoCharts, "no-charts", false, "Disable ASCII charts in text output")
		c.Flags().StringVar(&statsOutPath, "out", "", "Write a report to a file path")
		c.Flags().StringVar(&statsOutFormat, "out-format", "text", "Report file format: text|markdown|html|json")
		c.Flags().StringVar(&statsMetricsOut, "metrics-out", "", "Write Prometheus textfile metrics to a path")
	}
	statsDayCmd.Flags().StringVar(&statsDate, "date", "", "Date YYYY-MM-DD (default today)")
	statsWeekCmd.Flags().StringVar(&statsDate, "date", "", "Any date YYYY-MM-DD inside the week")
	statsWeekCmd.Flags().StringVar(&statsWeek, "week", "", "ISO week in format YYYY-Www")
	statsWeekCmd.MarkFlagsMutuallyExclusive("date", "week")
	statsMonthCmd.Flags().StringVar(&statsMonth, "month", "", "Month in format YYYY-MM")
	statsYearCmd.Flags().StringVar(&statsYear, "year", "", "Year in format YYYY")
	statsRangeCmd.Flags().StringVar(&statsFrom, "from", "", "Start date YYYY-MM-DD")
	statsRangeCmd.Flags().StringVar(&statsTo, "to", "", "End date YYYY-MM-DD (inclusive)")

	statsDailyCmd.Flags().IntVar(&statsDays, "days", 14, "Number of trailing days")
	statsDailyCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
