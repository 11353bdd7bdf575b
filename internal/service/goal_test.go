package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/store"
)

func TestSetGoalPartialUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr := newTestTracker(t)

	g, err := tr.SetGoal(ctx, service.SetGoalInput{WeeklyLimitGrams: ptr(100.0), ReminderTime: ptr("22:30")})
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if g.WeeklyLimitGrams != 100 || g.DailyLimitGrams != 40 || g.ReminderTime != "22:30" {
		t.Fatalf("expected only weekly limit and reminder changed, got %+v", g)
	}
	stored, err := tr.Goal(ctx)
	if err != nil || stored.WeeklyLimitGrams != 100 {
		t.Fatalf("expected stored goal, got %+v (%v)", stored, err)
	}

	if _, err := tr.SetGoal(ctx, service.SetGoalInput{WeeklyRestDays: ptr(8)}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid rest days, got %v", err)
	}
	if _, err := tr.SetGoal(ctx, service.SetGoalInput{ReminderTime: ptr("9pm")}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid reminder time, got %v", err)
	}
}

func TestTemplates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tr := newTestTracker(t)

	added, err := tr.AddTemplate(ctx, service.AddTemplateInput{Name: " Hoppy ", Strength: 6, Volume: 330, Category: "Beer"})
	if err != nil {
		t.Fatalf("add template: %v", err)
	}
	if added.Name != "Hoppy" || added.Category != "beer" || !added.IsCustom {
		t.Fatalf("unexpected template %+v", added)
	}
	if _, err := tr.AddTemplate(ctx, service.AddTemplateInput{Name: "Bad", Strength: 5, Volume: 100, Category: "juice"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid category, got %v", err)
	}
	if _, err := tr.AddTemplate(ctx, service.AddTemplateInput{Name: "Beer", Strength: 5, Volume: 100}); !errors.Is(err, store.ErrTemplateExists) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	res := logDrink(t, tr, drinkInput("hoppy", nil, nil, wednesdayNight))
	if res.Event.BeverageLabel != "Hoppy" || res.Event.StrengthPercent() != 6 {
		t.Fatalf("expected custom template defaults, got %+v", res.Event)
	}

	all, err := tr.Templates(ctx)
	if err != nil || len(all) != 22 {
		t.Fatalf("expected 22 templates, got %d (%v)", len(all), err)
	}
	if err := tr.DeleteTemplate(ctx, "Hoppy"); err != nil {
		t.Fatalf("delete template: %v", err)
	}
}

func TestDoctor(t *testing.T) {
	t.Parallel()
	tr := newTestTracker(t)
	seedWeek(t, tr)
	report, err := tr.Doctor(context.Background(), false)
	if err != nil || !report.Healthy() || report.CheckedRows != 3 {
		t.Fatalf("expected healthy report over 3 rows, got %+v (%v)", report, err)
	}
}
