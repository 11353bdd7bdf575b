// Package store persists events, templates and the goal with sqlx.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/saadjs/drinklog/internal/apperr"
)

// timeLayout is fixed width so UTC values sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	ErrEventNotFound    = fmt.Errorf("event %w", apperr.ErrNotFound)
	ErrTemplateNotFound = fmt.Errorf("beverage template %w", apperr.ErrNotFound)
	ErrTemplateExists   = errors.New("beverage template already exists")
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", v, err)
	}
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *Store) rebind(query string) string {
	return s.db.Rebind(strings.TrimSpace(query))
}
