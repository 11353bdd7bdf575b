package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/drinklog/internal/alcohol"
)

// ConsumptionEvent is one logged drink. Volume, strength and pure alcohol
// only change together through Recalculate.
type ConsumptionEvent struct {
	ID            string
	BeverageLabel string
	BeverageGlyph string
	OccurredAt    time.Time
	Note          string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	volumeMl        float64
	strengthPercent float64
	pureAlcoholG    float64
}

type NewEventInput struct {
	ID              string
	BeverageLabel   string
	BeverageGlyph   string
	VolumeMl        float64
	StrengthPercent float64
	OccurredAt      time.Time
	Note            string
}

func NewConsumptionEvent(in NewEventInput, now time.Time) (ConsumptionEvent, error) {
	label := strings.TrimSpace(in.BeverageLabel)
	if label == "" {
		return ConsumptionEvent{}, fmt.Errorf("beverage label is required")
	}
	grams, err := alcohol.PureAlcohol(in.VolumeMl, in.StrengthPercent)
	if err != nil {
		return ConsumptionEvent{}, err
	}
	occurred := in.OccurredAt
	if occurred.IsZero() {
		occurred = now
	}
	return ConsumptionEvent{
		ID:              in.ID,
		BeverageLabel:   label,
		BeverageGlyph:   strings.TrimSpace(in.BeverageGlyph),
		OccurredAt:      occurred,
		Note:            NormalizeNote(in.Note),
		CreatedAt:       now,
		UpdatedAt:       now,
		volumeMl:        in.VolumeMl,
		strengthPercent: in.StrengthPercent,
		pureAlcoholG:    grams,
	}, nil
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNote trims a note and stores every line break as "\n", so notes
// survive CSV files read back through encoding/csv unchanged.
func NormalizeNote(note string) string {
	return strings.TrimSpace(lineEndings.Replace(note))
}

// RestoreEvent rebuilds a stored event. Pure alcohol is always re-derived.
func RestoreEvent(id, label, glyph string, volumeMl, strengthPercent float64, occurredAt time.Time, note string, createdAt, updatedAt time.Time) (ConsumptionEvent, error) {
	grams, err := alcohol.PureAlcohol(volumeMl, strengthPercent)
	if err != nil {
		return ConsumptionEvent{}, fmt.Errorf("restore event %s: %w", id, err)
	}
	return ConsumptionEvent{
		ID:              id,
		BeverageLabel:   label,
		BeverageGlyph:   glyph,
		OccurredAt:      occurredAt,
		Note:            NormalizeNote(note),
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		volumeMl:        volumeMl,
		strengthPercent: strengthPercent,
		pureAlcoholG:    grams,
	}, nil
}

// Recalculate replaces volume and strength and refreshes UpdatedAt.
// The receiver is left untouched when the new values are rejected.
func (e *ConsumptionEvent) Recalculate(volumeMl, strengthPercent float64, now time.Time) error {
	grams, err := alcohol.PureAlcohol(volumeMl, strengthPercent)
	if err != nil {
		return err
	}
	e.volumeMl = volumeMl
	e.strengthPercent = strengthPercent
	e.pureAlcoholG = grams
	e.UpdatedAt = now
	return nil
}

func (e ConsumptionEvent) VolumeMl() float64         { return e.volumeMl }
func (e ConsumptionEvent) StrengthPercent() float64  { return e.strengthPercent }
func (e ConsumptionEvent) PureAlcoholGrams() float64 { return e.pureAlcoholG }

func (e ConsumptionEvent) DisplayName() string {
	if e.BeverageGlyph == "" {
		return e.BeverageLabel
	}
	return e.BeverageGlyph + " " + e.BeverageLabel
}

type BeverageTemplate struct {
	Name            string
	Glyph           string
	DefaultStrength float64
	DefaultVolumeMl float64
	Category        string
	IsCustom        bool
	SortOrder       int
}

type Goal struct {
	WeeklyLimitGrams float64
	DailyLimitGrams  float64
	WeeklyRestDays   int
	ReminderEnabled  bool
	ReminderTime     string
	UpdatedAt        time.Time
}

// DefaultGoal follows the 140 g/week guideline with two rest days.
func DefaultGoal() Goal {
	return Goal{
		WeeklyLimitGrams: 140,
		DailyLimitGrams:  40,
		WeeklyRestDays:   2,
		ReminderEnabled:  true,
		ReminderTime:     "21:00",
	}
}

func (g Goal) Validate() error {
	if g.WeeklyLimitGrams < 0 {
		return fmt.Errorf("weekly limit must be >= 0")
	}
	if g.DailyLimitGrams < 0 {
		return fmt.Errorf("daily limit must be >= 0")
	}
	if g.WeeklyRestDays < 0 || g.WeeklyRestDays > 7 {
		return fmt.Errorf("weekly rest days must be between 0 and 7")
	}
	if _, err := time.Parse("15:04", g.ReminderTime); err != nil {
		return fmt.Errorf("invalid reminder time %q (expected HH:MM)", g.ReminderTime)
	}
	return nil
}
