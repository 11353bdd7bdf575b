package service

import (
	"context"
	"time"

	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/stats"
)

type DayCell struct {
	Date       string      `json:"date,omitempty"`
	Day        int         `json:"day"`
	Blank      bool        `json:"blank,omitempty"`
	Count      int         `json:"count"`
	TotalGrams float64     `json:"total_g"`
	Level      stats.Level `json:"level"`
	Today      bool        `json:"today,omitempty"`
	Future     bool        `json:"future,omitempty"`
}

type MonthView struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	Weekdays     []string   `json:"weekdays"`
	Cells        []DayCell  `json:"cells"`
	TotalGrams   float64    `json:"total_g"`
	DrinkingDays int        `json:"drinking_days"`
	RestDays     int        `json:"rest_days"`
}

// MonthView lays out a month grid annotated with each day's consumption.
// Rest days only count days up to today.
func (t *Tracker) MonthView(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	bounds := period.Bounds{Start: t.cal.Date(year, month, 1)}
	bounds.End = bounds.Start.AddDate(0, 1, 0)
	events, err := t.repo.EventsBetween(ctx, bounds)
	if err != nil {
		return nil, err
	}
	now := t.Now()
	today := t.cal.DayKey(now)
	series := t.agg.SeriesFor(events, bounds)
	byDate := make(map[string]stats.DailyPoint, len(series))
	for _, p := range series {
		byDate[p.Date] = p
	}

	view := &MonthView{
		Year:     year,
		Month:    month,
		Weekdays: make([]string, 0, 7),
		Cells:    make([]DayCell, 0, 42),
	}
	for _, wd := range t.cal.Weekdays() {
		view.Weekdays = append(view.Weekdays, wd.String()[:3])
	}
	for cell := range t.cal.Grid(year, month) {
		if cell.IsBlank() {
			view.Cells = append(view.Cells, DayCell{Blank: true, Level: stats.LevelNone})
			continue
		}
		key := t.cal.DayKey(cell.Date)
		p := byDate[key]
		view.Cells = append(view.Cells, DayCell{
			Date:       key,
			Day:        cell.Day(),
			Count:      p.Count,
			TotalGrams: p.TotalGrams,
			Level:      stats.DayLevel(p.TotalGrams),
			Today:      key == today,
			Future:     key > today,
		})
		if p.Count > 0 {
			view.DrinkingDays++
		}
	}
	view.TotalGrams = t.agg.Summarize(events).TotalPureAlcoholGrams
	view.RestDays = t.cal.RestDayCount(t.cal.ThroughDay(bounds, now), events)
	return view, nil
}
