package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
)

type eventRow struct {
	ID              string  `db:"id"`
	BeverageLabel   string  `db:"beverage_label"`
	BeverageGlyph   string  `db:"beverage_glyph"`
	VolumeMl        float64 `db:"volume_ml"`
	StrengthPercent float64 `db:"strength_percent"`
	PureAlcoholG    float64 `db:"pure_alcohol_g"`
	OccurredAt      string  `db:"occurred_at"`
	Note            string  `db:"note"`
	CreatedAt       string  `db:"created_at"`
	UpdatedAt       string  `db:"updated_at"`
}

const eventColumns = `id, beverage_label, beverage_glyph, volume_ml, strength_percent, pure_alcohol_g, occurred_at, note, created_at, updated_at`

func toEventRow(ev model.ConsumptionEvent) eventRow {
	return eventRow{
		ID:              ev.ID,
		BeverageLabel:   ev.BeverageLabel,
		BeverageGlyph:   ev.BeverageGlyph,
		VolumeMl:        ev.VolumeMl(),
		StrengthPercent: ev.StrengthPercent(),
		PureAlcoholG:    ev.PureAlcoholGrams(),
		OccurredAt:      formatTime(ev.OccurredAt),
		Note:            ev.Note,
		CreatedAt:       formatTime(ev.CreatedAt),
		UpdatedAt:       formatTime(ev.UpdatedAt),
	}
}

func (r eventRow) toModel() (model.ConsumptionEvent, error) {
	occurred, err := parseTime(r.OccurredAt)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	return model.RestoreEvent(r.ID, r.BeverageLabel, r.BeverageGlyph, r.VolumeMl, r.StrengthPercent, occurred, r.Note, created, updated)
}

func rowsToModels(rows []eventRow) ([]model.ConsumptionEvent, error) {
	out := make([]model.ConsumptionEvent, 0, len(rows))
	for _, r := range rows {
		ev, err := r.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *Store) InsertEvent(ctx context.Context, ev model.ConsumptionEvent) error {
	return insertEvent(ctx, s.db, ev)
}

func insertEvent(ctx context.Context, ext sqlx.ExtContext, ev model.ConsumptionEvent) error {
	query := `INSERT INTO consumption_events (` + eventColumns + `)
VALUES (:id, :beverage_label, :beverage_glyph, :volume_ml, :strength_percent, :pure_alcohol_g, :occurred_at, :note, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, ext, query, toEventRow(ev)); err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, ev model.ConsumptionEvent) error {
	return updateEvent(ctx, s.db, ev)
}

func updateEvent(ctx context.Context, ext sqlx.ExtContext, ev model.ConsumptionEvent) error {
	query := `UPDATE consumption_events
SET beverage_label = :beverage_label, beverage_glyph = :beverage_glyph, volume_ml = :volume_ml,
    strength_percent = :strength_percent, pure_alcohol_g = :pure_alcohol_g, occurred_at = :occurred_at,
    note = :note, created_at = :created_at, updated_at = :updated_at
WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, ext, query, toEventRow(ev))
	if err != nil {
		return fmt.Errorf("update event %s: %w", ev.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event %s: %w", ev.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", ev.ID, ErrEventNotFound)
	}
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM consumption_events WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrEventNotFound)
	}
	return nil
}

func (s *Store) EventByID(ctx context.Context, id string) (model.ConsumptionEvent, error) {
	var row eventRow
	err := s.db.GetContext(ctx, &row, s.rebind(`SELECT `+eventColumns+` FROM consumption_events WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ConsumptionEvent{}, fmt.Errorf("%s: %w", id, ErrEventNotFound)
	}
	if err != nil {
		return model.ConsumptionEvent{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return row.toModel()
}

// Events returns every event, oldest first.
func (s *Store) Events(ctx context.Context) ([]model.ConsumptionEvent, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM consumption_events ORDER BY occurred_at ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rowsToModels(rows)
}

// EventsBetween returns events with occurred_at in [b.Start, b.End), oldest first.
func (s *Store) EventsBetween(ctx context.Context, b period.Bounds) ([]model.ConsumptionEvent, error) {
	var rows []eventRow
	query := s.rebind(`SELECT ` + eventColumns + ` FROM consumption_events
WHERE occurred_at >= ? AND occurred_at < ?
ORDER BY occurred_at ASC, id ASC`)
	if err := s.db.SelectContext(ctx, &rows, query, formatTime(b.Start), formatTime(b.End)); err != nil {
		return nil, fmt.Errorf("list events between %s and %s: %w", b.Start.Format("2006-01-02"), b.End.Format("2006-01-02"), err)
	}
	return rowsToModels(rows)
}

type ListFilter struct {
	Bounds   *period.Bounds
	Beverage string
	Limit    int
}

// ListEvents returns the newest events first.
func (s *Store) ListEvents(ctx context.Context, f ListFilter) ([]model.ConsumptionEvent, error) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if f.Bounds != nil {
		clauses = append(clauses, "occurred_at >= ?", "occurred_at < ?")
		args = append(args, formatTime(f.Bounds.Start), formatTime(f.Bounds.End))
	}
	if b := strings.TrimSpace(f.Beverage); b != "" {
		clauses = append(clauses, "LOWER(beverage_label) = LOWER(?)")
		args = append(args, b)
	}
	query := `SELECT ` + eventColumns + ` FROM consumption_events`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY occurred_at DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, s.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return rowsToModels(rows)
}

type ImportMode string

const (
	ImportFail    ImportMode = "fail"
	ImportSkip    ImportMode = "skip"
	ImportReplace ImportMode = "replace"
)

type ImportResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
}

// ImportEvents writes events in one transaction. Existing ids are handled
// per mode; with ImportFail the first conflict rolls everything back.
func (s *Store) ImportEvents(ctx context.Context, events []model.ConsumptionEvent, mode ImportMode) (ImportResult, error) {
	var res ImportResult
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, ev := range events {
		var exists int
		if err := tx.GetContext(ctx, &exists, tx.Rebind(`SELECT COUNT(1) FROM consumption_events WHERE id = ?`), ev.ID); err != nil {
			return res, fmt.Errorf("check event %s: %w", ev.ID, err)
		}
		if exists == 0 {
			if err := insertEvent(ctx, tx, ev); err != nil {
				return res, err
			}
			res.Inserted++
			continue
		}
		switch mode {
		case ImportSkip:
			res.Skipped++
		case ImportReplace:
			if err := updateEvent(ctx, tx, ev); err != nil {
				return res, err
			}
			res.Updated++
		default:
			return ImportResult{}, fmt.Errorf("event %s already exists (use --mode skip or replace)", ev.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("commit import: %w", err)
	}
	return res, nil
}
