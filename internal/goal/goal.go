// Package goal classifies consumption against the user's limits.
package goal

import (
	"math"

	"github.com/saadjs/drinklog/internal/model"
)

type Severity string

const (
	SeverityOK          Severity = "ok"
	SeverityApproaching Severity = "approaching"
	SeverityExceeded    Severity = "exceeded"
)

// Classify maps a total onto ok (nothing logged), approaching (up to and
// including the limit) or exceeded.
func Classify(totalGrams, limitGrams float64) Severity {
	switch {
	case totalGrams <= 0:
		return SeverityOK
	case totalGrams <= limitGrams:
		return SeverityApproaching
	default:
		return SeverityExceeded
	}
}

func RestDaysMet(actual, target int) bool {
	return actual >= target
}

type DayEvaluation struct {
	Date           string   `json:"date"`
	TotalGrams     float64  `json:"total_g"`
	LimitGrams     float64  `json:"limit_g"`
	RemainingGrams float64  `json:"remaining_g"`
	UsedPercent    float64  `json:"used_pct"`
	Severity       Severity `json:"severity"`
}

type WeekEvaluation struct {
	TotalGrams     float64  `json:"total_g"`
	LimitGrams     float64  `json:"limit_g"`
	RemainingGrams float64  `json:"remaining_g"`
	UsedPercent    float64  `json:"used_pct"`
	Severity       Severity `json:"severity"`
	RestDays       int      `json:"rest_days"`
	RestDaysTarget int      `json:"rest_days_target"`
	RestDaysMet    bool     `json:"rest_days_met"`
}

func EvaluateDay(date string, totalGrams float64, g model.Goal) DayEvaluation {
	return DayEvaluation{
		Date:           date,
		TotalGrams:     totalGrams,
		LimitGrams:     g.DailyLimitGrams,
		RemainingGrams: remaining(totalGrams, g.DailyLimitGrams),
		UsedPercent:    usedPercent(totalGrams, g.DailyLimitGrams),
		Severity:       Classify(totalGrams, g.DailyLimitGrams),
	}
}

// EvaluateWeek judges a week's total and its rest days so far.
func EvaluateWeek(totalGrams float64, restDays int, g model.Goal) WeekEvaluation {
	return WeekEvaluation{
		TotalGrams:     totalGrams,
		LimitGrams:     g.WeeklyLimitGrams,
		RemainingGrams: remaining(totalGrams, g.WeeklyLimitGrams),
		UsedPercent:    usedPercent(totalGrams, g.WeeklyLimitGrams),
		Severity:       Classify(totalGrams, g.WeeklyLimitGrams),
		RestDays:       restDays,
		RestDaysTarget: g.WeeklyRestDays,
		RestDaysMet:    RestDaysMet(restDays, g.WeeklyRestDays),
	}
}

// ScaleWeeklyLimit prorates the weekly limit over an arbitrary day count.
func ScaleWeeklyLimit(g model.Goal, days int) float64 {
	return g.WeeklyLimitGrams * float64(days) / 7
}

func remaining(total, limit float64) float64 {
	return math.Max(0, limit-total)
}

func usedPercent(total, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return total * 100 / limit
}
