package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saadjs/drinklog/internal/model"
)

type templateRow struct {
	Name            string  `db:"name"`
	Glyph           string  `db:"glyph"`
	DefaultStrength float64 `db:"default_strength"`
	DefaultVolumeMl float64 `db:"default_volume_ml"`
	Category        string  `db:"category"`
	IsCustom        int     `db:"is_custom"`
	SortOrder       int     `db:"sort_order"`
}

const templateColumns = `name, glyph, default_strength, default_volume_ml, category, is_custom, sort_order`

func (r templateRow) toModel() model.BeverageTemplate {
	return model.BeverageTemplate{
		Name:            r.Name,
		Glyph:           r.Glyph,
		DefaultStrength: r.DefaultStrength,
		DefaultVolumeMl: r.DefaultVolumeMl,
		Category:        r.Category,
		IsCustom:        r.IsCustom != 0,
		SortOrder:       r.SortOrder,
	}
}

// Templates lists the catalog in display order.
func (s *Store) Templates(ctx context.Context) ([]model.BeverageTemplate, error) {
	var rows []templateRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+templateColumns+` FROM beverage_templates ORDER BY sort_order ASC, name ASC`); err != nil {
		return nil, fmt.Errorf("list beverage templates: %w", err)
	}
	out := make([]model.BeverageTemplate, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toModel())
	}
	return out, nil
}

// TemplateByName matches names case-insensitively.
func (s *Store) TemplateByName(ctx context.Context, name string) (model.BeverageTemplate, error) {
	var row templateRow
	err := s.db.GetContext(ctx, &row, s.rebind(`SELECT `+templateColumns+` FROM beverage_templates WHERE LOWER(name) = LOWER(?)`), strings.TrimSpace(name))
	if errors.Is(err, sql.ErrNoRows) {
		return model.BeverageTemplate{}, fmt.Errorf("%q: %w", name, ErrTemplateNotFound)
	}
	if err != nil {
		return model.BeverageTemplate{}, fmt.Errorf("get beverage template %q: %w", name, err)
	}
	return row.toModel(), nil
}

// AddTemplate stores a custom template after the existing ones. Names that
// already exist, built-in or custom, are rejected.
func (s *Store) AddTemplate(ctx context.Context, t model.BeverageTemplate) (model.BeverageTemplate, error) {
	if _, err := s.TemplateByName(ctx, t.Name); err == nil {
		return model.BeverageTemplate{}, fmt.Errorf("%q: %w", t.Name, ErrTemplateExists)
	} else if !errors.Is(err, ErrTemplateNotFound) {
		return model.BeverageTemplate{}, err
	}
	if t.SortOrder == 0 {
		var maxOrder int
		if err := s.db.GetContext(ctx, &maxOrder, `SELECT COALESCE(MAX(sort_order), 0) FROM beverage_templates`); err != nil {
			return model.BeverageTemplate{}, fmt.Errorf("next template sort order: %w", err)
		}
		t.SortOrder = maxOrder + 1
	}
	t.IsCustom = true
	row := templateRow{
		Name:            t.Name,
		Glyph:           t.Glyph,
		DefaultStrength: t.DefaultStrength,
		DefaultVolumeMl: t.DefaultVolumeMl,
		Category:        t.Category,
		IsCustom:        boolToInt(t.IsCustom),
		SortOrder:       t.SortOrder,
	}
	query := `INSERT INTO beverage_templates (` + templateColumns + `)
VALUES (:name, :glyph, :default_strength, :default_volume_ml, :category, :is_custom, :sort_order)`
	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		return model.BeverageTemplate{}, fmt.Errorf("add beverage template %q: %w", t.Name, err)
	}
	return t, nil
}

// DeleteTemplate removes a custom template. Built-ins cannot be removed.
func (s *Store) DeleteTemplate(ctx context.Context, name string) error {
	t, err := s.TemplateByName(ctx, name)
	if err != nil {
		return err
	}
	if !t.IsCustom {
		return fmt.Errorf("beverage template %q is built in and cannot be deleted", t.Name)
	}
	if _, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM beverage_templates WHERE name = ?`), t.Name); err != nil {
		return fmt.Errorf("delete beverage template %q: %w", t.Name, err)
	}
	return nil
}
