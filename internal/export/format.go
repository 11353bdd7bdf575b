// Package export serializes event snapshots as CSV, JSON and XLSX.
//
// Output is a pure function of the input: identical events produce identical
// bytes.
package export

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (use csv, json or xlsx)", s)
	}
}

// TimeLayout is RFC 3339 with seconds and a numeric offset (or Z).
const TimeLayout = time.RFC3339

// Decimal places per column.
const (
	volumePlaces   = 0
	strengthPlaces = 1
	gramsPlaces    = 2
)

func formatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimeLayout)
}

func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperr.Invalid(field, value, "expected RFC 3339 timestamp, got")
	}
	return t, nil
}

// fixed renders v with exactly places decimals, rounding half away from zero
// on the shortest decimal representation of v.
func fixed(field string, v float64, places int32) (string, error) {
	if err := finite(field, v); err != nil {
		return "", err
	}
	return decimal.NewFromFloat(v).StringFixed(places), nil
}

func finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s is not a finite number (%v)", apperr.ErrSerialization, field, v)
	}
	return nil
}

type row struct {
	id         string
	occurredAt string
	beverage   string
	glyph      string
	volume     string
	strength   string
	grams      string
	note       string
	createdAt  string
	updatedAt  string
}

func toRow(ev model.ConsumptionEvent, loc *time.Location) (row, error) {
	volume, err := fixed("volume_ml", ev.VolumeMl(), volumePlaces)
	if err != nil {
		return row{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	strength, err := fixed("strength_percent", ev.StrengthPercent(), strengthPlaces)
	if err != nil {
		return row{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	grams, err := fixed("pure_alcohol_g", ev.PureAlcoholGrams(), gramsPlaces)
	if err != nil {
		return row{}, fmt.Errorf("event %s: %w", ev.ID, err)
	}
	return row{
		id:         ev.ID,
		occurredAt: formatTime(ev.OccurredAt, loc),
		beverage:   ev.BeverageLabel,
		glyph:      ev.BeverageGlyph,
		volume:     volume,
		strength:   strength,
		grams:      grams,
		note:       ev.Note,
		createdAt:  formatTime(ev.CreatedAt, loc),
		updatedAt:  formatTime(ev.UpdatedAt, loc),
	}, nil
}

func (r row) fields() []string {
	return []string{r.id, r.occurredAt, r.beverage, r.glyph, r.volume, r.strength, r.grams, r.note, r.createdAt, r.updatedAt}
}
