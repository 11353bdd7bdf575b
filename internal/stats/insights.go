package stats

import (
	"math"
	"sort"
)

type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type Streaks struct {
	Drinking Streak `json:"drinking"`
	Rest     Streak `json:"rest"`
}

type TrendStat struct {
	SlopePerDay float64 `json:"slope_per_day"`
	Direction   string  `json:"direction"`
}

type ConsistencyStat struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	CoeffVar float64 `json:"coeff_var"`
}

type DeltaStat struct {
	Current  float64  `json:"current"`
	Previous float64  `json:"previous"`
	AbsDelta float64  `json:"abs_delta"`
	PctDelta *float64 `json:"pct_delta,omitempty"`
}

type RollingPoint struct {
	Date         string  `json:"date"`
	AverageGrams float64 `json:"avg_g"`
}

type RollingWindow struct {
	WindowDays int            `json:"window_days"`
	Latest     *RollingPoint  `json:"latest,omitempty"`
	Points     []RollingPoint `json:"points"`
}

type Insights struct {
	Streaks     Streaks         `json:"streaks"`
	Trend       TrendStat       `json:"trend"`
	Consistency ConsistencyStat `json:"consistency"`
	HeaviestDay *DailyPoint     `json:"heaviest_day,omitempty"`
	Rolling7    RollingWindow   `json:"rolling_7"`
}

// Analyze derives the insight block from a contiguous daily series.
func Analyze(series []DailyPoint) Insights {
	values := gramsOf(series)
	return Insights{
		Streaks:     ComputeStreaks(series),
		Trend:       Trend(values),
		Consistency: Consistency(values),
		HeaviestDay: HeaviestDay(series),
		Rolling7:    RollingAverage(series, 7),
	}
}

func gramsOf(series []DailyPoint) []float64 {
	out := make([]float64, 0, len(series))
	for i := range series {
		out = append(out, series[i].TotalGrams)
	}
	return out
}

// ComputeStreaks reports runs of drinking days and rest days. Current runs
// end at the last point of the series.
func ComputeStreaks(series []DailyPoint) Streaks {
	drinkCurrent, drinkLongest := booleanStreak(series, func(p DailyPoint) bool {
		return p.Count > 0
	})
	restCurrent, restLongest := booleanStreak(series, func(p DailyPoint) bool {
		return p.Count == 0
	})
	return Streaks{
		Drinking: Streak{Current: drinkCurrent, Longest: drinkLongest},
		Rest:     Streak{Current: restCurrent, Longest: restLongest},
	}
}

func booleanStreak(series []DailyPoint, predicate func(DailyPoint) bool) (current, longest int) {
	run := 0
	for i := range series {
		if predicate(series[i]) {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	for i := len(series) - 1; i >= 0; i-- {
		if predicate(series[i]) {
			current++
			continue
		}
		break
	}
	return current, longest
}

// Trend fits a least-squares line. Slopes within half a gram per day are flat.
func Trend(values []float64) TrendStat {
	slope := linearRegressionSlope(values)
	direction := "flat"
	if slope >= 0.5 {
		direction = "up"
	} else if slope <= -0.5 {
		direction = "down"
	}
	return TrendStat{SlopePerDay: slope, Direction: direction}
}

func linearRegressionSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i := range values {
		x := float64(i)
		y := values[i]
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	denom := (float64(n) * sumX2) - (sumX * sumX)
	if denom == 0 {
		return 0
	}
	return ((float64(n) * sumXY) - (sumX * sumY)) / denom
}

func Consistency(values []float64) ConsistencyStat {
	if len(values) == 0 {
		return ConsistencyStat{}
	}
	mean := sumSorted(values) / float64(len(values))
	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	stddev := math.Sqrt(sum / float64(len(values)))
	out := ConsistencyStat{Mean: mean, StdDev: stddev}
	if mean != 0 {
		out.CoeffVar = stddev / math.Abs(mean)
	}
	return out
}

// HeaviestDay returns the day with the most grams, earliest first on ties.
// Nil when nothing was logged.
func HeaviestDay(series []DailyPoint) *DailyPoint {
	if len(series) == 0 {
		return nil
	}
	copied := make([]DailyPoint, len(series))
	copy(copied, series)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].TotalGrams > copied[j].TotalGrams
	})
	if copied[0].TotalGrams <= 0 {
		return nil
	}
	high := copied[0]
	return &high
}

func RollingAverage(series []DailyPoint, windowDays int) RollingWindow {
	out := RollingWindow{
		WindowDays: windowDays,
		Points:     make([]RollingPoint, 0),
	}
	if windowDays <= 0 || len(series) < windowDays {
		return out
	}
	for i := windowDays - 1; i < len(series); i++ {
		slice := series[i-(windowDays-1) : i+1]
		out.Points = append(out.Points, RollingPoint{
			Date:         series[i].Date,
			AverageGrams: sumSorted(gramsOf(slice)) / float64(windowDays),
		})
	}
	last := out.Points[len(out.Points)-1]
	out.Latest = &last
	return out
}

// Compare reports the change from previous to current. PctDelta is nil
// when previous is zero.
func Compare(current, previous float64) DeltaStat {
	out := DeltaStat{
		Current:  current,
		Previous: previous,
		AbsDelta: current - previous,
	}
	if previous == 0 {
		return out
	}
	v := ((current - previous) / previous) * 100
	out.PctDelta = &v
	return out
}

type Level string

const (
	LevelNone     Level = "none"
	LevelLight    Level = "light"
	LevelModerate Level = "moderate"
	LevelHeavy    Level = "heavy"
)

// DayLevel buckets a day's grams for calendar and chart shading.
func DayLevel(grams float64) Level {
	switch {
	case grams <= 0:
		return LevelNone
	case grams <= 20:
		return LevelLight
	case grams <= 40:
		return LevelModerate
	default:
		return LevelHeavy
	}
}
