// Package service orchestrates the record store and the analytics engine for
// the drinklog commands.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/stats"
	"github.com/saadjs/drinklog/internal/store"
)

// Repository is the record store the tracker reads snapshots from.
type Repository interface {
	InsertEvent(ctx context.Context, ev model.ConsumptionEvent) error
	UpdateEvent(ctx context.Context, ev model.ConsumptionEvent) error
	DeleteEvent(ctx context.Context, id string) error
	EventByID(ctx context.Context, id string) (model.ConsumptionEvent, error)
	Events(ctx context.Context) ([]model.ConsumptionEvent, error)
	EventsBetween(ctx context.Context, b period.Bounds) ([]model.ConsumptionEvent, error)
	ListEvents(ctx context.Context, f store.ListFilter) ([]model.ConsumptionEvent, error)
	ImportEvents(ctx context.Context, events []model.ConsumptionEvent, mode store.ImportMode) (store.ImportResult, error)

	Templates(ctx context.Context) ([]model.BeverageTemplate, error)
	TemplateByName(ctx context.Context, name string) (model.BeverageTemplate, error)
	AddTemplate(ctx context.Context, t model.BeverageTemplate) (model.BeverageTemplate, error)
	DeleteTemplate(ctx context.Context, name string) error

	Goal(ctx context.Context) (model.Goal, error)
	SaveGoal(ctx context.Context, g model.Goal) error

	CheckIntegrity(ctx context.Context, fix bool) (store.IntegrityReport, error)
}

// Notifier raises a user-visible alert, e.g. a desktop notification.
type Notifier interface {
	Alert(title, message string) error
}

type Tracker struct {
	repo     Repository
	cal      period.Calendar
	agg      stats.Aggregator
	now      func() time.Time
	log      *slog.Logger
	notifier Notifier
	validate *validator.Validate
}

type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithNotifier enables alerts when a logged drink pushes the day over its limit.
func WithNotifier(n Notifier) Option {
	return func(t *Tracker) {
		t.notifier = n
	}
}

func NewTracker(repo Repository, cal period.Calendar, opts ...Option) *Tracker {
	t := &Tracker{
		repo:     repo,
		cal:      cal,
		agg:      stats.New(cal),
		now:      time.Now,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) Calendar() period.Calendar {
	return t.cal
}

// Now returns the tracker clock's current time in the calendar's zone.
func (t *Tracker) Now() time.Time {
	return t.now().In(t.cal.Loc())
}
