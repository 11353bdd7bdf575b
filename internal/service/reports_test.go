package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/saadjs/drinklog/internal/goal"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/stats"
)

// seedWeek logs a beer on Sunday 5th, a go of sake on Monday 6th and a glass
// of red wine in the previous week on Wednesday 1st.
func seedWeek(t *testing.T, tr *service.Tracker) {
	t.Helper()
	logDrink(t, tr, drinkInput("Beer", nil, nil, time.Date(2025, 1, 5, 20, 0, 0, 0, jst)))
	logDrink(t, tr, drinkInput("Sake (1 go)", nil, nil, time.Date(2025, 1, 6, 22, 30, 0, 0, jst)))
	logDrink(t, tr, drinkInput("Red wine", nil, nil, time.Date(2025, 1, 1, 19, 0, 0, 0, jst)))
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPeriodReport(t *testing.T) {
	convey.Convey("Given a week with two drinking days so far", t, func() {
		ctx := context.Background()
		tr := newTestTracker(t)
		seedWeek(t, tr)

		convey.Convey("When the weekly report is built on Wednesday", func() {
			r, err := tr.PeriodReport(ctx, period.Week, wednesdayNight)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then bounds follow the Sunday week", func() {
				convey.So(r.FromDate, convey.ShouldEqual, "2025-01-05")
				convey.So(r.ToDate, convey.ShouldEqual, "2025-01-11")
				convey.So(r.Days, convey.ShouldEqual, 7)
				convey.So(r.ElapsedDays, convey.ShouldEqual, 4)
			})

			convey.Convey("Then totals and rest days count only elapsed days", func() {
				convey.So(r.Statistics.RecordCount, convey.ShouldEqual, 2)
				convey.So(near(r.Statistics.TotalPureAlcoholGrams, 35.6), convey.ShouldBeTrue)
				convey.So(r.RestDays, convey.ShouldEqual, 2)
				convey.So(r.Goal.Severity, convey.ShouldEqual, goal.SeverityApproaching)
				convey.So(r.Goal.LimitGrams, convey.ShouldEqual, 140)
				convey.So(r.Goal.RestDaysMet, convey.ShouldBeTrue)
				convey.So(len(r.Series), convey.ShouldEqual, 4)
				convey.So(r.Insights.Streaks.Rest.Current, convey.ShouldEqual, 2)
			})

			convey.Convey("Then breakdowns are ordered by grams", func() {
				convey.So(len(r.ByBeverage), convey.ShouldEqual, 2)
				convey.So(r.ByBeverage[0].Label, convey.ShouldEqual, "Sake (1 go)")
				convey.So(len(r.ByWeekday), convey.ShouldEqual, 7)
				convey.So(r.ByWeekday[0].Name, convey.ShouldEqual, "Sun")
			})

			convey.Convey("Then the previous week is compared", func() {
				convey.So(near(r.VsPrevious.Previous, 12), convey.ShouldBeTrue)
				convey.So(r.VsPrevious.PctDelta, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the daily report is built", func() {
			r, err := tr.PeriodReport(ctx, period.Day, time.Date(2025, 1, 6, 12, 0, 0, 0, jst))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the daily limit applies", func() {
				convey.So(r.Goal.LimitGrams, convey.ShouldEqual, 40)
				convey.So(r.Goal.RestDaysTarget, convey.ShouldEqual, 0)
				convey.So(r.RestDays, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When a report covers an empty future month", func() {
			r, err := tr.PeriodReport(ctx, period.Month, time.Date(2025, 3, 1, 0, 0, 0, 0, jst))
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then nothing is counted", func() {
				convey.So(r.Statistics.RecordCount, convey.ShouldEqual, 0)
				convey.So(r.Statistics.MostFrequentBeverageLabel, convey.ShouldBeNil)
				convey.So(r.ElapsedDays, convey.ShouldEqual, 0)
				convey.So(r.RestDays, convey.ShouldEqual, 0)
				convey.So(len(r.ByBeverage), convey.ShouldEqual, 0)
				convey.So(r.Goal.Severity, convey.ShouldEqual, goal.SeverityOK)
			})
		})
	})
}

func TestRangeReport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr := newTestTracker(t)
	seedWeek(t, tr)

	r, err := tr.RangeReport(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, jst), time.Date(2025, 1, 6, 0, 0, 0, 0, jst))
	if err != nil {
		t.Fatalf("range report: %v", err)
	}
	if r.Period != "range" || r.Days != 6 || r.Statistics.RecordCount != 3 {
		t.Fatalf("unexpected range report %+v", r)
	}
	if !near(r.Goal.LimitGrams, 120) || r.Goal.RestDaysTarget != 1 {
		t.Fatalf("expected prorated goal 120 g and 1 rest day, got %+v", r.Goal)
	}
	if r.RestDays != 3 {
		t.Fatalf("expected 3 rest days (2nd to 4th), got %d", r.RestDays)
	}

	if _, err := tr.RangeReport(ctx, time.Date(2025, 1, 6, 0, 0, 0, 0, jst), time.Date(2025, 1, 1, 0, 0, 0, 0, jst)); err == nil {
		t.Fatalf("expected reversed range to fail")
	}
}

func TestDailyTrendAndHome(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr := newTestTracker(t)
	seedWeek(t, tr)

	series, err := tr.DailyTrend(ctx, 7)
	if err != nil {
		t.Fatalf("daily trend: %v", err)
	}
	if len(series) != 7 || series[0].Date != "2025-01-02" || series[6].Date != "2025-01-08" {
		t.Fatalf("unexpected trailing window %+v", series)
	}
	if series[3].Count != 1 || series[4].Count != 1 {
		t.Fatalf("expected drinks on the 5th and 6th, got %+v", series)
	}

	h, err := tr.Home(ctx)
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if h.TodayCount != 0 || h.TodayLevel != stats.LevelNone || h.Week.RestDays != 2 || h.WeekFromDate != "2025-01-05" {
		t.Fatalf("unexpected home %+v", h)
	}
	if h.Reminder != "21:00" {
		t.Fatalf("expected default reminder, got %q", h.Reminder)
	}
}

func TestMonthView(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t)
	seedWeek(t, tr)

	view, err := tr.MonthView(context.Background(), 2025, time.January)
	if err != nil {
		t.Fatalf("month view: %v", err)
	}
	if len(view.Cells) != 34 || !view.Cells[0].Blank || !view.Cells[2].Blank || view.Cells[3].Day != 1 {
		t.Fatalf("expected 3 leading blanks then 31 days, got %d cells", len(view.Cells))
	}
	if view.Weekdays[0] != "Sun" {
		t.Fatalf("expected Sunday first, got %v", view.Weekdays)
	}
	eighth := view.Cells[3+7]
	if !eighth.Today || eighth.Date != "2025-01-08" {
		t.Fatalf("expected the 8th to be today, got %+v", eighth)
	}
	if !view.Cells[3+8].Future {
		t.Fatalf("expected the 9th to be in the future")
	}
	if view.Cells[3+5].Level != stats.LevelModerate {
		t.Fatalf("expected 21.6 g on the 6th to be moderate, got %s", view.Cells[3+5].Level)
	}
	if view.DrinkingDays != 3 || view.RestDays != 5 {
		t.Fatalf("expected 3 drinking and 5 rest days, got %d and %d", view.DrinkingDays, view.RestDays)
	}
}
