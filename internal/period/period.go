// Package period partitions time into calendar windows.
//
// Every window is half-open, [Start, End), and computed in an explicit
// Calendar so the time zone and first weekday never come from process state.
package period

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/saadjs/drinklog/internal/model"
)

type Period string

const (
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
	Year  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Day, Week, Month, Year:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period %q (expected day|week|month|year)", s)
	}
}

// Calendar fixes the location and first weekday used for every boundary.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
}

func NewCalendar(loc *time.Location, weekStart time.Weekday) Calendar {
	return Calendar{Location: loc, WeekStart: weekStart}
}

// Loc is the calendar's location, UTC when unset.
func (c Calendar) Loc() *time.Location {
	return c.loc()
}

func (c Calendar) loc() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

type Bounds struct {
	Start time.Time
	End   time.Time
}

func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

func (b Bounds) IsEmpty() bool {
	return !b.Start.Before(b.End)
}

func (c Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc())
}

// Date returns midnight of the given calendar date.
func (c Calendar) Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, c.loc())
}

// DayKey formats t as YYYY-MM-DD in the calendar's location.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.loc()).Format("2006-01-02")
}

// WeekdayOffset is the number of days between the week start and wd.
func (c Calendar) WeekdayOffset(wd time.Weekday) int {
	return (int(wd) - int(c.WeekStart) + 7) % 7
}

// BoundsFor returns the period containing ref.
func (c Calendar) BoundsFor(p Period, ref time.Time) (Bounds, error) {
	day := c.StartOfDay(ref)
	y, m, _ := day.Date()
	switch p {
	case Day:
		return Bounds{Start: day, End: day.AddDate(0, 0, 1)}, nil
	case Week:
		start := day.AddDate(0, 0, -c.WeekdayOffset(day.Weekday()))
		return Bounds{Start: start, End: start.AddDate(0, 0, 7)}, nil
	case Month:
		start := c.Date(y, m, 1)
		return Bounds{Start: start, End: start.AddDate(0, 1, 0)}, nil
	case Year:
		start := c.Date(y, time.January, 1)
		return Bounds{Start: start, End: start.AddDate(1, 0, 0)}, nil
	default:
		return Bounds{}, fmt.Errorf("invalid period %q", p)
	}
}

// Previous returns the period immediately before b.
func (c Calendar) Previous(p Period, b Bounds) (Bounds, error) {
	return c.BoundsFor(p, b.Start.Add(-time.Nanosecond))
}

// Range covers the calendar dates from..to inclusive.
func (c Calendar) Range(from, to time.Time) (Bounds, error) {
	start := c.StartOfDay(from)
	last := c.StartOfDay(to)
	if start.After(last) {
		return Bounds{}, fmt.Errorf("from date must be <= to date")
	}
	return Bounds{Start: start, End: last.AddDate(0, 0, 1)}, nil
}

// ThroughDay trims b so it ends after the day containing ref.
func (c Calendar) ThroughDay(b Bounds, ref time.Time) Bounds {
	end := c.StartOfDay(ref).AddDate(0, 0, 1)
	if end.Before(b.End) {
		b.End = end
	}
	if b.End.Before(b.Start) {
		b.End = b.Start
	}
	return b
}

// Days yields the midnight of each calendar day overlapping b.
func (c Calendar) Days(b Bounds) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if b.IsEmpty() {
			return
		}
		for d := c.StartOfDay(b.Start); d.Before(b.End); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DayCount is the number of calendar days overlapping b.
func (c Calendar) DayCount(b Bounds) int {
	n := 0
	for range c.Days(b) {
		n++
	}
	return n
}

// Filter keeps events inside b in their original order.
func Filter(events []model.ConsumptionEvent, b Bounds) []model.ConsumptionEvent {
	out := make([]model.ConsumptionEvent, 0, len(events))
	for _, ev := range events {
		if b.Contains(ev.OccurredAt) {
			out = append(out, ev)
		}
	}
	return out
}

// RestDayCount counts the days overlapping b that have no events.
func (c Calendar) RestDayCount(b Bounds, events []model.ConsumptionEvent) int {
	drinking := make(map[string]struct{}, len(events))
	for _, ev := range events {
		if b.Contains(ev.OccurredAt) {
			drinking[c.DayKey(ev.OccurredAt)] = struct{}{}
		}
	}
	rest := 0
	for d := range c.Days(b) {
		if _, ok := drinking[c.DayKey(d)]; !ok {
			rest++
		}
	}
	return rest
}
