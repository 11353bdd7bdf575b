package goal_test

import (
	"testing"

	"github.com/saadjs/drinklog/internal/goal"
	"github.com/saadjs/drinklog/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()
	cases := []struct {
		total float64
		limit float64
		want  goal.Severity
	}{
		{0, 40, goal.SeverityOK},
		{-1, 40, goal.SeverityOK},
		{14, 40, goal.SeverityApproaching},
		{40, 40, goal.SeverityApproaching},
		{41, 40, goal.SeverityExceeded},
		{40.0001, 40, goal.SeverityExceeded},
		{5, 0, goal.SeverityExceeded},
	}
	for _, tc := range cases {
		if got := goal.Classify(tc.total, tc.limit); got != tc.want {
			t.Fatalf("classify(%v, %v): expected %s, got %s", tc.total, tc.limit, tc.want, got)
		}
	}
}

func TestRestDaysMet(t *testing.T) {
	t.Parallel()
	if !goal.RestDaysMet(2, 2) || !goal.RestDaysMet(3, 2) {
		t.Fatalf("expected target to be met at or above")
	}
	if goal.RestDaysMet(1, 2) {
		t.Fatalf("expected 1 of 2 rest days to miss the target")
	}
}

func TestEvaluateWeek(t *testing.T) {
	t.Parallel()
	ev := goal.EvaluateWeek(154, 1, model.DefaultGoal())
	if ev.Severity != goal.SeverityExceeded {
		t.Fatalf("expected exceeded, got %s", ev.Severity)
	}
	if ev.RemainingGrams != 0 {
		t.Fatalf("expected remaining budget to floor at 0, got %v", ev.RemainingGrams)
	}
	if ev.UsedPercent != 110 {
		t.Fatalf("expected 110%% used, got %v", ev.UsedPercent)
	}
	if ev.RestDaysMet || ev.RestDaysTarget != 2 {
		t.Fatalf("expected rest-day target of 2 to be missed, got %+v", ev)
	}
}

func TestEvaluateDay(t *testing.T) {
	t.Parallel()
	ev := goal.EvaluateDay("2025-01-06", 28, model.DefaultGoal())
	if ev.Severity != goal.SeverityApproaching || ev.RemainingGrams != 12 || ev.UsedPercent != 70 {
		t.Fatalf("unexpected evaluation %+v", ev)
	}
	zero := model.DefaultGoal()
	zero.DailyLimitGrams = 0
	if got := goal.EvaluateDay("2025-01-06", 0, zero); got.UsedPercent != 0 || got.Severity != goal.SeverityOK {
		t.Fatalf("unexpected zero-limit evaluation %+v", got)
	}
}

func TestScaleWeeklyLimit(t *testing.T) {
	t.Parallel()
	if got := goal.ScaleWeeklyLimit(model.DefaultGoal(), 14); got != 280 {
		t.Fatalf("expected 280 g for two weeks, got %v", got)
	}
}
