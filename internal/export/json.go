package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/saadjs/drinklog/internal/model"
)

// jsonEvent fields are declared in key order so encoding/json emits sorted
// keys.
type jsonEvent struct {
	Beverage         string  `json:"beverage"`
	CreatedAt        string  `json:"createdAt"`
	Glyph            string  `json:"glyph"`
	ID               string  `json:"id"`
	Note             string  `json:"note,omitempty"`
	OccurredAt       string  `json:"occurredAt"`
	PureAlcoholGrams float64 `json:"pureAlcoholGrams"`
	StrengthPercent  float64 `json:"strengthPercent"`
	UpdatedAt        string  `json:"updatedAt"`
	VolumeMl         float64 `json:"volumeMl"`
}

// WriteJSON writes events as an indented array. Non-finite numbers fail
// with apperr.ErrSerialization before anything is written.
func WriteJSON(w io.Writer, events []model.ConsumptionEvent, loc *time.Location) error {
	items := make([]jsonEvent, 0, len(events))
	for _, ev := range events {
		if err := checkFinite(ev); err != nil {
			return err
		}
		items = append(items, jsonEvent{
			Beverage:         ev.BeverageLabel,
			CreatedAt:        formatTime(ev.CreatedAt, loc),
			Glyph:            ev.BeverageGlyph,
			ID:               ev.ID,
			Note:             ev.Note,
			OccurredAt:       formatTime(ev.OccurredAt, loc),
			PureAlcoholGrams: ev.PureAlcoholGrams(),
			StrengthPercent:  ev.StrengthPercent(),
			UpdatedAt:        formatTime(ev.UpdatedAt, loc),
			VolumeMl:         ev.VolumeMl(),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func checkFinite(ev model.ConsumptionEvent) error {
	if err := finite("volumeMl", ev.VolumeMl()); err != nil {
		return fmt.Errorf("event %s: %w", ev.ID, err)
	}
	if err := finite("strengthPercent", ev.StrengthPercent()); err != nil {
		return fmt.Errorf("event %s: %w", ev.ID, err)
	}
	if err := finite("pureAlcoholGrams", ev.PureAlcoholGrams()); err != nil {
		return fmt.Errorf("event %s: %w", ev.ID, err)
	}
	return nil
}

// ParseJSON reads an array written by WriteJSON. pureAlcoholGrams is
// ignored and re-derived.
func ParseJSON(r io.Reader) ([]model.ConsumptionEvent, error) {
	var items []jsonEvent
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	events := make([]model.ConsumptionEvent, 0, len(items))
	for i, it := range items {
		occurred, err := parseTime("occurredAt", it.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("json item %d: %w", i, err)
		}
		created, err := parseTime("createdAt", it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("json item %d: %w", i, err)
		}
		updated, err := parseTime("updatedAt", it.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("json item %d: %w", i, err)
		}
		ev, err := model.RestoreEvent(it.ID, it.Beverage, it.Glyph, it.VolumeMl, it.StrengthPercent, occurred, it.Note, created, updated)
		if err != nil {
			return nil, fmt.Errorf("json item %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}
