package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/model"
)

// SetGoalInput updates only the non-nil fields of the stored goal.
type SetGoalInput struct {
	WeeklyLimitGrams *float64 `json:"weekly_limit_g" validate:"omitempty,gte=0"`
	DailyLimitGrams  *float64 `json:"daily_limit_g" validate:"omitempty,gte=0"`
	WeeklyRestDays   *int     `json:"weekly_rest_days" validate:"omitempty,gte=0,lte=7"`
	ReminderEnabled  *bool    `json:"reminder_enabled"`
	ReminderTime     *string  `json:"reminder_time"`
}

func (t *Tracker) Goal(ctx context.Context) (model.Goal, error) {
	return t.repo.Goal(ctx)
}

func (t *Tracker) SetGoal(ctx context.Context, in SetGoalInput) (model.Goal, error) {
	if err := t.validateInput(in); err != nil {
		return model.Goal{}, err
	}
	g, err := t.repo.Goal(ctx)
	if err != nil {
		return model.Goal{}, err
	}
	if in.WeeklyLimitGrams != nil {
		g.WeeklyLimitGrams = *in.WeeklyLimitGrams
	}
	if in.DailyLimitGrams != nil {
		g.DailyLimitGrams = *in.DailyLimitGrams
	}
	if in.WeeklyRestDays != nil {
		g.WeeklyRestDays = *in.WeeklyRestDays
	}
	if in.ReminderEnabled != nil {
		g.ReminderEnabled = *in.ReminderEnabled
	}
	if in.ReminderTime != nil {
		g.ReminderTime = *in.ReminderTime
	}
	if err := g.Validate(); err != nil {
		return model.Goal{}, fmt.Errorf("%w: %v", apperr.ErrInvalidInput, err)
	}
	g.UpdatedAt = t.Now()
	if err := t.repo.SaveGoal(ctx, g); err != nil {
		return model.Goal{}, err
	}
	t.log.Info("goal updated",
		slog.Float64("weekly_limit_g", g.WeeklyLimitGrams),
		slog.Float64("daily_limit_g", g.DailyLimitGrams),
		slog.Int("weekly_rest_days", g.WeeklyRestDays),
	)
	return g, nil
}
