package drinklog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/drinklog/internal/alcohol"
	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/store"
)

var drinkCmd = &cobra.Command{
	Use:   "drink",
	Short: "Log and manage drinks",
}

var (
	drinkBeverage string
	drinkGlyph    string
	drinkVolume   float64
	drinkUnit     string
	drinkStrength float64
	drinkDate     string
	drinkTime     string
	drinkNote     string
	drinkJSON     bool
)

var drinkAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a drink",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(drinkDate, drinkTime)
		if err != nil {
			return err
		}
		in := service.LogDrinkInput{
			Beverage: drinkBeverage,
			Glyph:    drinkGlyph,
			Unit:     drinkUnit,
			At:       at,
			Note:     drinkNote,
		}
		if cmd.Flags().Changed("volume") {
			in.Volume = &drinkVolume
		}
		if cmd.Flags().Changed("strength") {
			in.Strength = &drinkStrength
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			res, err := t.LogDrink(ctx, in)
			if err != nil {
				return err
			}
			if drinkJSON {
				return writeJSON(cmd, struct {
					Event eventView `json:"event"`
					service.LogDrinkResult
				}{toEventView(res.Event), res})
			}
			out := cmd.OutOrStdout()
			ev := res.Event
			fmt.Fprintf(out, "Logged %s %.0fml %.1f%% = %.1fg pure alcohol (id %s)\n",
				ev.DisplayName(), ev.VolumeMl(), ev.StrengthPercent(), ev.PureAlcoholGrams(), ev.ID)
			if res.SuspiciousStrength {
				fmt.Fprintln(out, "Warning: strength above 100% looks like a typo")
			}
			if res.Day.Severity != "" {
				fmt.Fprintf(out, "Today: %.1fg / %.0fg (%s)\n", res.Day.TotalGrams, res.Day.LimitGrams, res.Day.Severity)
			}
			return nil
		})
	},
}

var (
	listFrom     string
	listTo       string
	listBeverage string
	listLimit    int
	listJSON     bool
)

var drinkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged drinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := store.ListFilter{Beverage: strings.TrimSpace(listBeverage), Limit: listLimit}
		if listFrom != "" || listTo != "" {
			if listFrom == "" || listTo == "" {
				return fmt.Errorf("--from and --to must be used together")
			}
			b, err := rangeBounds(listFrom, listTo)
			if err != nil {
				return err
			}
			f.Bounds = &b
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			events, err := t.ListDrinks(ctx, f)
			if err != nil {
				return err
			}
			if listJSON {
				views := make([]eventView, 0, len(events))
				for _, ev := range events {
					views = append(views, toEventView(ev))
				}
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tBEVERAGE\tML\t%\tGRAMS\tNOTE")
			for _, ev := range events {
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%s\n",
					ev.ID, ev.OccurredAt.In(location()).Format(dateTimeLayout), ev.DisplayName(),
					ev.VolumeMl(), ev.StrengthPercent(), ev.PureAlcoholGrams(), ev.Note)
			}
			return nil
		})
	},
}

var drinkShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single drink",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			ev, err := t.Drink(ctx, args[0])
			if err != nil {
				return err
			}
			if drinkJSON {
				return writeJSON(cmd, toEventView(ev))
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\n", ev.ID)
			fmt.Fprintf(out, "Date: %s\n", ev.OccurredAt.In(location()).Format(dateTimeLayout))
			fmt.Fprintf(out, "Beverage: %s\n", ev.DisplayName())
			fmt.Fprintf(out, "Volume: %.0f ml\n", ev.VolumeMl())
			fmt.Fprintf(out, "Strength: %.1f%%\n", ev.StrengthPercent())
			fmt.Fprintf(out, "Pure alcohol: %.2f g (%.1f beers)\n", ev.PureAlcoholGrams(), alcohol.BeerEquivalent(ev.PureAlcoholGrams()))
			fmt.Fprintf(out, "Note: %s\n", ev.Note)
			return nil
		})
	},
}

var drinkEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a logged drink",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.EditDrinkInput{ID: args[0], Unit: drinkUnit}
		flags := cmd.Flags()
		if flags.Changed("beverage") {
			in.Beverage = &drinkBeverage
		}
		if flags.Changed("glyph") {
			in.Glyph = &drinkGlyph
		}
		if flags.Changed("volume") {
			in.Volume = &drinkVolume
		}
		if flags.Changed("strength") {
			in.Strength = &drinkStrength
		}
		if flags.Changed("note") {
			in.Note = &drinkNote
		}
		if flags.Changed("date") || flags.Changed("time") {
			at, err := parseDateTimeOrNow(drinkDate, drinkTime)
			if err != nil {
				return err
			}
			in.At = &at
		}
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			ev, err := t.EditDrink(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated drink %s (%.1fg)\n", ev.ID, ev.PureAlcoholGrams())
			return nil
		})
	},
}

var drinkDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged drink",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTracker(cmd, func(ctx context.Context, t *service.Tracker) error {
			if err := t.DeleteDrink(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted drink %s\n", args[0])
			return nil
		})
	},
}

type eventView struct {
	ID               string  `json:"id"`
	OccurredAt       string  `json:"occurred_at"`
	Beverage         string  `json:"beverage"`
	Glyph            string  `json:"glyph,omitempty"`
	VolumeMl         float64 `json:"volume_ml"`
	StrengthPercent  float64 `json:"strength_percent"`
	PureAlcoholGrams float64 `json:"pure_alcohol_g"`
	Note             string  `json:"note,omitempty"`
}

func toEventView(ev model.ConsumptionEvent) eventView {
	return eventView{
		ID:               ev.ID,
		OccurredAt:       ev.OccurredAt.In(location()).Format(time.RFC3339),
		Beverage:         ev.BeverageLabel,
		Glyph:            ev.BeverageGlyph,
		VolumeMl:         ev.VolumeMl(),
		StrengthPercent:  ev.StrengthPercent(),
		PureAlcoholGrams: ev.PureAlcoholGrams(),
		Note:             ev.Note,
	}
}

// rangeBounds turns inclusive YYYY-MM-DD dates into half-open bounds.
func rangeBounds(from, to string) (period.Bounds, error) {
	start, err := parseDate("from", from)
	if err != nil {
		return period.Bounds{}, err
	}
	end, err := parseDate("to", to)
	if err != nil {
		return period.Bounds{}, err
	}
	cal, err := rt.cfg.Calendar()
	if err != nil {
		return period.Bounds{}, err
	}
	return cal.Range(start, end)
}

func addDrinkFields(cmd *cobra.Command) {
	cmd.Flags().StringVar(&drinkBeverage, "beverage", "", "Beverage name (a template name or a custom label)")
	cmd.Flags().StringVar(&drinkGlyph, "glyph", "", "Optional glyph shown next to the beverage")
	cmd.Flags().Float64Var(&drinkVolume, "volume", 0, "Volume in --unit (defaults to the template volume)")
	cmd.Flags().StringVar(&drinkUnit, "unit", "ml", "Volume unit: ml, cl, dl, l, fl-oz, cup, pint, shot, go")
	cmd.Flags().Float64Var(&drinkStrength, "strength", 0, "Alcohol by volume in percent (defaults to the template strength)")
	cmd.Flags().StringVar(&drinkDate, "date", "", "Date in YYYY-MM-DD")
	cmd.Flags().StringVar(&drinkTime, "time", "", "Time in HH:MM")
	cmd.Flags().StringVar(&drinkNote, "note", "", "Optional note")
}

func init() {
	rootCmd.AddCommand(drinkCmd)
	drinkCmd.AddCommand(drinkAddCmd, drinkListCmd, drinkShowCmd, drinkEditCmd, drinkDeleteCmd)

	addDrinkFields(drinkAddCmd)
	drinkAddCmd.Flags().BoolVar(&drinkJSON, "json", false, "Output JSON")
	_ = drinkAddCmd.MarkFlagRequired("beverage")

	addDrinkFields(drinkEditCmd)

	drinkShowCmd.Flags().BoolVar(&drinkJSON, "json", false, "Output JSON")

	drinkListCmd.Flags().StringVar(&listFrom, "from", "", "Filter from date YYYY-MM-DD (inclusive)")
	drinkListCmd.Flags().StringVar(&listTo, "to", "", "Filter to date YYYY-MM-DD (inclusive)")
	drinkListCmd.Flags().StringVar(&listBeverage, "beverage", "", "Filter by beverage name")
	drinkListCmd.Flags().IntVar(&listLimit, "limit", 50, "Result limit (0 for all)")
	drinkListCmd.Flags().BoolVar(&listJSON, "json", false, "Output JSON")
}
