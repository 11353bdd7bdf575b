package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saadjs/drinklog/internal/model"
)

type goalRow struct {
	WeeklyLimitG    float64 `db:"weekly_limit_g"`
	DailyLimitG     float64 `db:"daily_limit_g"`
	WeeklyRestDays  int     `db:"weekly_rest_days"`
	ReminderEnabled int     `db:"reminder_enabled"`
	ReminderTime    string  `db:"reminder_time"`
	UpdatedAt       string  `db:"updated_at"`
}

// Goal returns the stored goal, creating the default row on first access.
func (s *Store) Goal(ctx context.Context) (model.Goal, error) {
	var row goalRow
	err := s.db.GetContext(ctx, &row, `SELECT weekly_limit_g, daily_limit_g, weekly_rest_days, reminder_enabled, reminder_time, updated_at FROM goals WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		g := model.DefaultGoal()
		g.UpdatedAt = time.Now().UTC()
		if err := s.SaveGoal(ctx, g); err != nil {
			return model.Goal{}, err
		}
		return s.Goal(ctx)
	}
	if err != nil {
		return model.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	updated, err := parseTime(row.UpdatedAt)
	if err != nil {
		return model.Goal{}, err
	}
	return model.Goal{
		WeeklyLimitGrams: row.WeeklyLimitG,
		DailyLimitGrams:  row.DailyLimitG,
		WeeklyRestDays:   row.WeeklyRestDays,
		ReminderEnabled:  row.ReminderEnabled != 0,
		ReminderTime:     row.ReminderTime,
		UpdatedAt:        updated,
	}, nil
}

func (s *Store) SaveGoal(ctx context.Context, g model.Goal) error {
	if g.UpdatedAt.IsZero() {
		g.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
INSERT INTO goals (id, weekly_limit_g, daily_limit_g, weekly_rest_days, reminder_enabled, reminder_time, updated_at)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
  weekly_limit_g = excluded.weekly_limit_g,
  daily_limit_g = excluded.daily_limit_g,
  weekly_rest_days = excluded.weekly_rest_days,
  reminder_enabled = excluded.reminder_enabled,
  reminder_time = excluded.reminder_time,
  updated_at = excluded.updated_at
`), g.WeeklyLimitGrams, g.DailyLimitGrams, g.WeeklyRestDays, boolToInt(g.ReminderEnabled), g.ReminderTime, formatTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}
