package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/drinklog/internal/alcohol"
	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/goal"
	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/store"
)

// LogDrinkInput describes a drink to record. Volume and strength fall back to
// the named beverage template when nil.
type LogDrinkInput struct {
	Beverage string    `json:"beverage" validate:"required,max=100"`
	Glyph    string    `json:"glyph" validate:"max=16"`
	Volume   *float64  `json:"volume" validate:"omitempty,gte=0"`
	Unit     string    `json:"unit"`
	Strength *float64  `json:"strength" validate:"omitempty,gte=0"`
	At       time.Time `json:"at"`
	Note     string    `json:"note" validate:"max=500"`
}

type LogDrinkResult struct {
	Event              model.ConsumptionEvent `json:"-"`
	Day                goal.DayEvaluation     `json:"day"`
	SuspiciousStrength bool                   `json:"suspicious_strength,omitempty"`
	Alerted            bool                   `json:"alerted,omitempty"`
}

func (t *Tracker) LogDrink(ctx context.Context, in LogDrinkInput) (LogDrinkResult, error) {
	in.Beverage = strings.TrimSpace(in.Beverage)
	if err := t.validateInput(in); err != nil {
		return LogDrinkResult{}, err
	}

	label, glyph := in.Beverage, strings.TrimSpace(in.Glyph)
	var volume, strength float64
	tmpl, err := t.repo.TemplateByName(ctx, in.Beverage)
	switch {
	case err == nil:
		label = tmpl.Name
		if glyph == "" {
			glyph = tmpl.Glyph
		}
		volume, strength = tmpl.DefaultVolumeMl, tmpl.DefaultStrength
	case errors.Is(err, store.ErrTemplateNotFound):
		if in.Volume == nil || in.Strength == nil {
			return LogDrinkResult{}, apperr.Invalid("beverage", in.Beverage, "has no template; volume and strength are required for")
		}
	default:
		return LogDrinkResult{}, err
	}

	if in.Volume != nil {
		volume, err = alcohol.ConvertVolume(*in.Volume, in.Unit)
		if err != nil {
			return LogDrinkResult{}, err
		}
	}
	if in.Strength != nil {
		strength = *in.Strength
	}

	now := t.Now()
	ev, err := model.NewConsumptionEvent(model.NewEventInput{
		ID:              uuid.NewString(),
		BeverageLabel:   label,
		BeverageGlyph:   glyph,
		VolumeMl:        volume,
		StrengthPercent: strength,
		OccurredAt:      in.At,
		Note:            in.Note,
	}, now)
	if err != nil {
		return LogDrinkResult{}, err
	}
	if err := t.repo.InsertEvent(ctx, ev); err != nil {
		return LogDrinkResult{}, err
	}
	t.log.Info("drink logged",
		slog.String("id", ev.ID),
		slog.String("beverage", ev.BeverageLabel),
		slog.Float64("pure_alcohol_g", ev.PureAlcoholGrams()),
	)

	res := LogDrinkResult{Event: ev, SuspiciousStrength: alcohol.StrengthSuspicious(strength)}
	// The drink is already stored; report it even when the day cannot be evaluated.
	res.Day, err = t.evaluateDay(ctx, ev.OccurredAt)
	if err != nil {
		t.log.Warn("evaluate day after logging drink", slog.String("id", ev.ID), slog.Any("error", err))
		return res, nil
	}
	if res.Day.Severity == goal.SeverityExceeded {
		res.Alerted = t.alert("Daily limit exceeded",
			fmt.Sprintf("%s: %.1f g of %.0f g pure alcohol", res.Day.Date, res.Day.TotalGrams, res.Day.LimitGrams))
	}
	return res, nil
}

// EditDrinkInput changes only the non-nil fields of an existing drink.
type EditDrinkInput struct {
	ID       string     `json:"id" validate:"required"`
	Beverage *string    `json:"beverage" validate:"omitempty,max=100"`
	Glyph    *string    `json:"glyph" validate:"omitempty,max=16"`
	Volume   *float64   `json:"volume" validate:"omitempty,gte=0"`
	Unit     string     `json:"unit"`
	Strength *float64   `json:"strength" validate:"omitempty,gte=0"`
	At       *time.Time `json:"at"`
	Note     *string    `json:"note" validate:"omitempty,max=500"`
}

func (t *Tracker) EditDrink(ctx context.Context, in EditDrinkInput) (model.ConsumptionEvent, error) {
	if err := t.validateInput(in); err != nil {
		return model.ConsumptionEvent{}, err
	}
	ev, err := t.repo.EventByID(ctx, in.ID)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}

	if in.Beverage != nil {
		label := strings.TrimSpace(*in.Beverage)
		if label == "" {
			return model.ConsumptionEvent{}, apperr.Invalid("beverage", *in.Beverage, "must not be empty, got")
		}
		ev.BeverageLabel = label
	}
	if in.Glyph != nil {
		ev.BeverageGlyph = strings.TrimSpace(*in.Glyph)
	}
	if in.At != nil {
		ev.OccurredAt = *in.At
	}
	if in.Note != nil {
		ev.Note = model.NormalizeNote(*in.Note)
	}

	volume, strength := ev.VolumeMl(), ev.StrengthPercent()
	if in.Volume != nil {
		volume, err = alcohol.ConvertVolume(*in.Volume, in.Unit)
		if err != nil {
			return model.ConsumptionEvent{}, err
		}
	}
	if in.Strength != nil {
		strength = *in.Strength
	}
	if err := ev.Recalculate(volume, strength, t.Now()); err != nil {
		return model.ConsumptionEvent{}, err
	}
	if err := t.repo.UpdateEvent(ctx, ev); err != nil {
		return model.ConsumptionEvent{}, err
	}
	t.log.Info("drink updated", slog.String("id", ev.ID), slog.Float64("pure_alcohol_g", ev.PureAlcoholGrams()))
	return ev, nil
}

func (t *Tracker) DeleteDrink(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Invalid("id", id, "is required, got")
	}
	if err := t.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}
	t.log.Info("drink deleted", slog.String("id", id))
	return nil
}

func (t *Tracker) Drink(ctx context.Context, id string) (model.ConsumptionEvent, error) {
	ev, err := t.repo.EventByID(ctx, id)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	ev.OccurredAt = ev.OccurredAt.In(t.cal.Loc())
	return ev, nil
}

// ListDrinks returns matching drinks newest first, in the calendar's zone.
func (t *Tracker) ListDrinks(ctx context.Context, f store.ListFilter) ([]model.ConsumptionEvent, error) {
	events, err := t.repo.ListEvents(ctx, f)
	if err != nil {
		return nil, err
	}
	return t.localize(events), nil
}

// DayBounds returns the calendar day containing ref.
func (t *Tracker) DayBounds(ref time.Time) period.Bounds {
	b, _ := t.cal.BoundsFor(period.Day, ref)
	return b
}

func (t *Tracker) evaluateDay(ctx context.Context, ref time.Time) (goal.DayEvaluation, error) {
	day := t.DayBounds(ref)
	events, err := t.repo.EventsBetween(ctx, day)
	if err != nil {
		return goal.DayEvaluation{}, err
	}
	g, err := t.repo.Goal(ctx)
	if err != nil {
		return goal.DayEvaluation{}, err
	}
	total := t.agg.Summarize(events).TotalPureAlcoholGrams
	return goal.EvaluateDay(t.cal.DayKey(day.Start), total, g), nil
}

func (t *Tracker) alert(title, message string) bool {
	if t.notifier == nil {
		return false
	}
	if err := t.notifier.Alert(title, message); err != nil {
		t.log.Warn("desktop alert failed", slog.Any("error", err))
		return false
	}
	return true
}

func (t *Tracker) localize(events []model.ConsumptionEvent) []model.ConsumptionEvent {
	loc := t.cal.Loc()
	for i := range events {
		events[i].OccurredAt = events[i].OccurredAt.In(loc)
	}
	return events
}
