// Package stats derives totals and breakdowns from a snapshot of events.
//
// Every function is pure. Grams are summed unrounded in sorted order so the
// result does not depend on the order events were supplied in.
package stats

import (
	"sort"
	"time"

	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
)

type Aggregator struct {
	cal period.Calendar
}

func New(cal period.Calendar) Aggregator {
	return Aggregator{cal: cal}
}

func (a Aggregator) Calendar() period.Calendar {
	return a.cal
}

type PeriodStatistics struct {
	RecordCount               int     `json:"record_count"`
	TotalPureAlcoholGrams     float64 `json:"total_pure_alcohol_g"`
	TotalVolumeMl             float64 `json:"total_volume_ml"`
	DrinkingDayCount          int     `json:"drinking_day_count"`
	AveragePerSession         float64 `json:"avg_per_session_g"`
	AveragePerDrinkingDay     float64 `json:"avg_per_drinking_day_g"`
	MostFrequentBeverageLabel *string `json:"most_frequent_beverage,omitempty"`
}

type BeverageShare struct {
	Label      string  `json:"label"`
	Glyph      string  `json:"glyph"`
	Count      int     `json:"count"`
	TotalGrams float64 `json:"total_g"`
	Percentage float64 `json:"percentage"`
}

type WeekdayStat struct {
	Weekday      time.Weekday `json:"-"`
	Name         string       `json:"weekday"`
	Count        int          `json:"count"`
	TotalGrams   float64      `json:"total_g"`
	AverageGrams float64      `json:"avg_g"`
}

type DailyPoint struct {
	Date       string    `json:"date"`
	Day        time.Time `json:"-"`
	Count      int       `json:"count"`
	TotalGrams float64   `json:"total_g"`
}

// Summarize computes the scalar statistics of events. An empty slice yields
// the zero value.
func (a Aggregator) Summarize(events []model.ConsumptionEvent) PeriodStatistics {
	out := PeriodStatistics{RecordCount: len(events)}
	if len(events) == 0 {
		return out
	}

	grams := make([]float64, 0, len(events))
	volumes := make([]float64, 0, len(events))
	days := make(map[string]struct{})
	counts := make(map[string]int)
	for _, ev := range events {
		grams = append(grams, ev.PureAlcoholGrams())
		volumes = append(volumes, ev.VolumeMl())
		days[a.cal.DayKey(ev.OccurredAt)] = struct{}{}
		counts[ev.BeverageLabel]++
	}

	out.TotalPureAlcoholGrams = sumSorted(grams)
	out.TotalVolumeMl = sumSorted(volumes)
	out.DrinkingDayCount = len(days)
	out.AveragePerSession = out.TotalPureAlcoholGrams / float64(out.RecordCount)
	out.AveragePerDrinkingDay = out.TotalPureAlcoholGrams / float64(out.DrinkingDayCount)
	label := mostFrequent(counts)
	out.MostFrequentBeverageLabel = &label
	return out
}

// mostFrequent picks the highest count, ties going to the smallest label.
func mostFrequent(counts map[string]int) string {
	best, bestCount := "", -1
	for label, n := range counts {
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	return best
}

// ByBeverage groups by label, heaviest first with ties ordered by label.
// When two glyphs share a label the smallest one is shown.
func (a Aggregator) ByBeverage(events []model.ConsumptionEvent) []BeverageShare {
	type acc struct {
		glyph string
		grams []float64
	}
	groups := make(map[string]*acc)
	for _, ev := range events {
		g, ok := groups[ev.BeverageLabel]
		if !ok {
			g = &acc{glyph: ev.BeverageGlyph}
			groups[ev.BeverageLabel] = g
		} else if ev.BeverageGlyph < g.glyph {
			g.glyph = ev.BeverageGlyph
		}
		g.grams = append(g.grams, ev.PureAlcoholGrams())
	}

	out := make([]BeverageShare, 0, len(groups))
	for label, g := range groups {
		out = append(out, BeverageShare{
			Label:      label,
			Glyph:      g.glyph,
			Count:      len(g.grams),
			TotalGrams: sumSorted(g.grams),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalGrams == out[j].TotalGrams {
			return out[i].Label < out[j].Label
		}
		return out[i].TotalGrams > out[j].TotalGrams
	})

	grand := 0.0
	for i := range out {
		grand += out[i].TotalGrams
	}
	for i := range out {
		out[i].Percentage = pctShare(out[i].TotalGrams, grand)
	}
	return out
}

// ByWeekday returns seven entries starting at the calendar's week start.
// The average is per event, 0 for weekdays without events.
func (a Aggregator) ByWeekday(events []model.ConsumptionEvent) []WeekdayStat {
	var grams [7][]float64
	for _, ev := range events {
		wd := ev.OccurredAt.In(a.cal.Loc()).Weekday()
		grams[wd] = append(grams[wd], ev.PureAlcoholGrams())
	}
	out := make([]WeekdayStat, 0, 7)
	for _, wd := range a.cal.Weekdays() {
		st := WeekdayStat{
			Weekday:    wd,
			Name:       wd.String()[:3],
			Count:      len(grams[wd]),
			TotalGrams: sumSorted(grams[wd]),
		}
		if st.Count > 0 {
			st.AverageGrams = st.TotalGrams / float64(st.Count)
		}
		out = append(out, st)
	}
	return out
}

// DailySeries returns one point per day for the days-long window ending on
// the day containing ref, oldest first.
func (a Aggregator) DailySeries(events []model.ConsumptionEvent, ref time.Time, days int) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}
	last := a.cal.StartOfDay(ref)
	window := period.Bounds{Start: last.AddDate(0, 0, -(days - 1)), End: last.AddDate(0, 0, 1)}
	return a.SeriesFor(events, window)
}

// SeriesFor returns one point per calendar day in b, oldest first.
func (a Aggregator) SeriesFor(events []model.ConsumptionEvent, b period.Bounds) []DailyPoint {
	byDay := make(map[string][]float64)
	for _, ev := range events {
		if b.Contains(ev.OccurredAt) {
			key := a.cal.DayKey(ev.OccurredAt)
			byDay[key] = append(byDay[key], ev.PureAlcoholGrams())
		}
	}
	out := make([]DailyPoint, 0, a.cal.DayCount(b))
	for d := range a.cal.Days(b) {
		key := a.cal.DayKey(d)
		out = append(out, DailyPoint{
			Date:       key,
			Day:        d,
			Count:      len(byDay[key]),
			TotalGrams: sumSorted(byDay[key]),
		})
	}
	return out
}

// DayTotals maps YYYY-MM-DD keys to the grams logged that day.
func (a Aggregator) DayTotals(events []model.ConsumptionEvent) map[string]float64 {
	byDay := make(map[string][]float64)
	for _, ev := range events {
		key := a.cal.DayKey(ev.OccurredAt)
		byDay[key] = append(byDay[key], ev.PureAlcoholGrams())
	}
	out := make(map[string]float64, len(byDay))
	for k, v := range byDay {
		out[k] = sumSorted(v)
	}
	return out
}

func sumSorted(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum
}

func pctShare(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return (value / total) * 100
}
