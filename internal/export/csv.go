package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/model"
)

var CSVHeader = []string{
	"ID", "DateTime", "Beverage", "Glyph", "VolumeMl", "StrengthPercent",
	"PureAlcoholGrams", "Note", "CreatedAt", "UpdatedAt",
}

// WriteCSV writes a header and one row per event in the given order.
// Timestamps are rendered in loc, or their own zone when loc is nil.
func WriteCSV(w io.Writer, events []model.ConsumptionEvent, loc *time.Location) error {
	bw := bufio.NewWriter(w)
	if err := writeCSVLine(bw, CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, ev := range events {
		r, err := toRow(ev, loc)
		if err != nil {
			return err
		}
		if err := writeCSVLine(bw, r.fields()); err != nil {
			return fmt.Errorf("write csv row %s: %w", ev.ID, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func writeCSVLine(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(EscapeCSV(f)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// EscapeCSV quotes a field only when it holds a comma, a double quote or a
// line break, doubling any embedded quotes.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\r\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ParseCSV reads rows written by WriteCSV. Pure alcohol is re-derived from
// the volume and strength columns. The stored grams column is only checked
// against them within rounding error.
func ParseCSV(r io.Reader) ([]model.ConsumptionEvent, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty: %w", apperr.ErrInvalidInput)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range CSVHeader {
		if strings.TrimPrefix(header[i], "\ufeff") != name {
			return nil, apperr.Invalid("header", header[i], fmt.Sprintf("column %d should be %s, got", i+1, name))
		}
	}

	events := make([]model.ConsumptionEvent, 0)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		ev, err := parseCSVRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", line, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseCSVRecord(rec []string) (model.ConsumptionEvent, error) {
	occurred, err := parseTime("DateTime", rec[1])
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	volume, err := parseFloat("VolumeMl", rec[4])
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	strength, err := parseFloat("StrengthPercent", rec[5])
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	created, err := parseTime("CreatedAt", rec[8])
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	updated, err := parseTime("UpdatedAt", rec[9])
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	ev, err := model.RestoreEvent(rec[0], rec[2], rec[3], volume, strength, occurred, rec[7], created, updated)
	if err != nil {
		return model.ConsumptionEvent{}, err
	}
	if stored := strings.TrimSpace(rec[6]); stored != "" {
		if err := checkStoredGrams(stored, ev); err != nil {
			return model.ConsumptionEvent{}, err
		}
	}
	return ev, nil
}

// checkStoredGrams accepts the PureAlcoholGrams column when it is within the
// error that fixed-place volume and strength columns can introduce. Volume is
// off by at most half a millilitre, strength by half a tenth of a percent, and
// the stored grams by half a hundredth.
func checkStoredGrams(stored string, ev model.ConsumptionEvent) error {
	grams, err := decimal.NewFromString(stored)
	if err != nil {
		return apperr.Invalid("PureAlcoholGrams", stored, "expected a number, got")
	}
	volume := decimal.NewFromFloat(ev.VolumeMl())
	strength := decimal.NewFromFloat(ev.StrengthPercent())
	tolerance := strength.Mul(volumeSlack).
		Add(volume.Mul(strengthSlack)).
		Add(crossSlack).
		Add(gramsSlack)
	derived := decimal.NewFromFloat(ev.PureAlcoholGrams())
	if grams.Sub(derived).Abs().GreaterThan(tolerance) {
		return apperr.Invalid("PureAlcoholGrams", stored, fmt.Sprintf("does not match volume and strength (%s), got", derived.StringFixed(gramsPlaces)))
	}
	return nil
}

// Rounding slack in grams: 0.5 ml and 0.05 % scaled by the 0.008 g/(ml*%)
// conversion, plus half of the last grams place.
var (
	volumeSlack   = decimal.RequireFromString("0.004")
	strengthSlack = decimal.RequireFromString("0.0004")
	crossSlack    = decimal.RequireFromString("0.0002")
	gramsSlack    = decimal.RequireFromString("0.005")
)

func parseFloat(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, apperr.Invalid(field, value, "expected a number, got")
	}
	return v, nil
}
