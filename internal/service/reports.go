package service

import (
	"context"
	"math"
	"time"

	"github.com/saadjs/drinklog/internal/alcohol"
	"github.com/saadjs/drinklog/internal/goal"
	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/stats"
)

const rangeLabel = "range"

type Report struct {
	Period         string                  `json:"period"`
	FromDate       string                  `json:"from_date"`
	ToDate         string                  `json:"to_date"`
	Bounds         period.Bounds           `json:"-"`
	Days           int                     `json:"days"`
	ElapsedDays    int                     `json:"elapsed_days"`
	Statistics     stats.PeriodStatistics  `json:"statistics"`
	BeerEquivalent float64                 `json:"beer_equivalent"`
	RestDays       int                     `json:"rest_days"`
	Goal           goal.WeekEvaluation     `json:"goal"`
	ByBeverage     []stats.BeverageShare   `json:"by_beverage"`
	ByWeekday      []stats.WeekdayStat     `json:"by_weekday"`
	Series         []stats.DailyPoint      `json:"series"`
	Insights       stats.Insights          `json:"insights"`
	VsPrevious     stats.DeltaStat         `json:"vs_previous"`

	// Events holds the period's drinks in the calendar's zone, oldest first.
	Events []model.ConsumptionEvent `json:"-"`
}

// PeriodReport analyzes the day, week, month or year containing ref.
func (t *Tracker) PeriodReport(ctx context.Context, p period.Period, ref time.Time) (*Report, error) {
	bounds, err := t.cal.BoundsFor(p, ref)
	if err != nil {
		return nil, err
	}
	prev, err := t.cal.Previous(p, bounds)
	if err != nil {
		return nil, err
	}
	return t.buildReport(ctx, string(p), bounds, prev)
}

// RangeReport analyzes the calendar dates from..to inclusive and compares
// against the same number of days immediately before.
func (t *Tracker) RangeReport(ctx context.Context, from, to time.Time) (*Report, error) {
	bounds, err := t.cal.Range(from, to)
	if err != nil {
		return nil, err
	}
	days := t.cal.DayCount(bounds)
	prev := period.Bounds{Start: bounds.Start.AddDate(0, 0, -days), End: bounds.Start}
	return t.buildReport(ctx, rangeLabel, bounds, prev)
}

func (t *Tracker) buildReport(ctx context.Context, label string, bounds, prev period.Bounds) (*Report, error) {
	events, err := t.repo.EventsBetween(ctx, bounds)
	if err != nil {
		return nil, err
	}
	events = t.localize(events)
	prevEvents, err := t.repo.EventsBetween(ctx, prev)
	if err != nil {
		return nil, err
	}
	g, err := t.repo.Goal(ctx)
	if err != nil {
		return nil, err
	}

	days := t.cal.DayCount(bounds)
	elapsed := t.cal.ThroughDay(bounds, t.Now())
	summary := t.agg.Summarize(events)
	restDays := t.cal.RestDayCount(elapsed, events)
	series := t.agg.SeriesFor(events, elapsed)

	last := bounds.End.AddDate(0, 0, -1)
	r := &Report{
		Period:         label,
		FromDate:       t.cal.DayKey(bounds.Start),
		ToDate:         t.cal.DayKey(last),
		Bounds:         bounds,
		Days:           days,
		ElapsedDays:    t.cal.DayCount(elapsed),
		Statistics:     summary,
		BeerEquivalent: alcohol.BeerEquivalent(summary.TotalPureAlcoholGrams),
		RestDays:       restDays,
		Goal:           goal.EvaluateWeek(summary.TotalPureAlcoholGrams, restDays, scaledGoal(g, label, days)),
		ByBeverage:     t.agg.ByBeverage(events),
		ByWeekday:      t.agg.ByWeekday(events),
		Series:         series,
		Insights:       stats.Analyze(series),
		VsPrevious:     stats.Compare(summary.TotalPureAlcoholGrams, t.agg.Summarize(prevEvents).TotalPureAlcoholGrams),
		Events:         events,
	}
	return r, nil
}

// scaledGoal expresses the goal for a window of the given length: the daily
// limit for a single day, the weekly goal for a week, and the weekly goal
// prorated (rest days rounded down) for anything else.
func scaledGoal(g model.Goal, label string, days int) model.Goal {
	out := g
	switch {
	case label == string(period.Day):
		out.WeeklyLimitGrams = g.DailyLimitGrams
		out.WeeklyRestDays = 0
	case days == 7:
	default:
		out.WeeklyLimitGrams = goal.ScaleWeeklyLimit(g, days)
		out.WeeklyRestDays = int(math.Floor(float64(g.WeeklyRestDays*days) / 7))
	}
	return out
}

// DailyTrend returns the trailing series of days ending today.
func (t *Tracker) DailyTrend(ctx context.Context, days int) ([]stats.DailyPoint, error) {
	if days <= 0 {
		return []stats.DailyPoint{}, nil
	}
	today := t.cal.StartOfDay(t.Now())
	window := period.Bounds{Start: today.AddDate(0, 0, -(days - 1)), End: today.AddDate(0, 0, 1)}
	events, err := t.repo.EventsBetween(ctx, window)
	if err != nil {
		return nil, err
	}
	return t.agg.DailySeries(events, today, days), nil
}

// Home is the at-a-glance status for today and the current week.
type Home struct {
	Today          goal.DayEvaluation  `json:"today"`
	TodayLevel     stats.Level         `json:"today_level"`
	TodayCount     int                 `json:"today_count"`
	BeerEquivalent float64             `json:"today_beer_equivalent"`
	Week           goal.WeekEvaluation `json:"week"`
	WeekFromDate   string              `json:"week_from_date"`
	Reminder       string              `json:"reminder,omitempty"`
}

func (t *Tracker) Home(ctx context.Context) (*Home, error) {
	now := t.Now()
	week, err := t.cal.BoundsFor(period.Week, now)
	if err != nil {
		return nil, err
	}
	events, err := t.repo.EventsBetween(ctx, week)
	if err != nil {
		return nil, err
	}
	g, err := t.repo.Goal(ctx)
	if err != nil {
		return nil, err
	}
	day := t.DayBounds(now)
	todays := period.Filter(events, day)
	todayTotal := t.agg.Summarize(todays).TotalPureAlcoholGrams
	weekTotal := t.agg.Summarize(events).TotalPureAlcoholGrams
	rest := t.cal.RestDayCount(t.cal.ThroughDay(week, now), events)

	h := &Home{
		Today:          goal.EvaluateDay(t.cal.DayKey(day.Start), todayTotal, g),
		TodayLevel:     stats.DayLevel(todayTotal),
		TodayCount:     len(todays),
		BeerEquivalent: alcohol.BeerEquivalent(todayTotal),
		Week:           goal.EvaluateWeek(weekTotal, rest, g),
		WeekFromDate:   t.cal.DayKey(week.Start),
	}
	if g.ReminderEnabled {
		h.Reminder = g.ReminderTime
	}
	return h, nil
}
