package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/saadjs/drinklog/internal/db"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/store"
)

var jst = time.FixedZone("JST", 9*60*60)

// wednesdayNight is 2025-01-08 21:00 JST; with Sunday weeks the current week
// runs from 2025-01-05.
var wednesdayNight = time.Date(2025, 1, 8, 21, 0, 0, 0, jst)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (n *recordingNotifier) Alert(title, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, title+": "+message)
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drinklog.db")
	sqldb, err := db.Open(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(context.Background(), sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb)
}

func newTestTracker(t *testing.T, opts ...service.Option) *service.Tracker {
	t.Helper()
	cal := period.NewCalendar(jst, time.Sunday)
	opts = append([]service.Option{service.WithClock(func() time.Time { return wednesdayNight })}, opts...)
	return service.NewTracker(newTestStore(t), cal, opts...)
}

func ptr[T any](v T) *T {
	return &v
}

func logDrink(t *testing.T, tr *service.Tracker, in service.LogDrinkInput) service.LogDrinkResult {
	t.Helper()
	res, err := tr.LogDrink(context.Background(), in)
	if err != nil {
		t.Fatalf("log drink %q: %v", in.Beverage, err)
	}
	return res
}

func drinkInput(beverage string, volume, strength *float64, at time.Time) service.LogDrinkInput {
	return service.LogDrinkInput{Beverage: beverage, Volume: volume, Strength: strength, At: at}
}

func editInput(id string, volume *float64, note *string) service.EditDrinkInput {
	return service.EditDrinkInput{ID: id, Volume: volume, Note: note}
}
