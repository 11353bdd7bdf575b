package alcohol_test

import (
	"errors"
	"math"
	"testing"

	"github.com/saadjs/drinklog/internal/alcohol"
	"github.com/saadjs/drinklog/internal/apperr"
)

func TestPureAlcoholKnownDrinks(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		volume   float64
		strength float64
		want     float64
	}{
		{"beer can", 350, 5, 14},
		{"sake one go", 180, 15, 21.6},
		{"glass of wine", 125, 12, 12},
		{"whisky single", 30, 40, 9.6},
		{"non-alcohol beer", 350, 0, 0},
		{"empty glass", 0, 40, 0},
	}
	for _, tc := range cases {
		got, err := alcohol.PureAlcohol(tc.volume, tc.strength)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected %.4f, got %.10f", tc.name, tc.want, got)
		}
	}
}

func TestPureAlcoholMatchesFormula(t *testing.T) {
	t.Parallel()
	for v := 0.0; v <= 1000; v += 37.5 {
		for s := 0.0; s <= 100; s += 2.5 {
			got, err := alcohol.PureAlcohol(v, s)
			if err != nil {
				t.Fatalf("pure alcohol(%v, %v): %v", v, s, err)
			}
			if want := v * (s / 100) * 0.8; math.Abs(got-want) > 1e-9 {
				t.Fatalf("pure alcohol(%v, %v): expected %v, got %v", v, s, want, got)
			}
		}
	}
}

func TestPureAlcoholRejectsNegative(t *testing.T) {
	t.Parallel()
	_, err := alcohol.PureAlcohol(-1, 5)
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative volume, got %v", err)
	}
	var fe *apperr.FieldError
	if !errors.As(err, &fe) || fe.Field != "volume_ml" {
		t.Fatalf("expected volume_ml field error, got %v", err)
	}

	_, err = alcohol.PureAlcohol(350, -5)
	if !errors.As(err, &fe) || fe.Field != "strength_percent" {
		t.Fatalf("expected strength_percent field error, got %v", err)
	}

	if _, err := alcohol.PureAlcohol(math.NaN(), 5); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected NaN volume to be rejected, got %v", err)
	}
}

func TestStrengthAboveHundredAcceptedButFlagged(t *testing.T) {
	t.Parallel()
	got, err := alcohol.PureAlcohol(10, 120)
	if err != nil {
		t.Fatalf("expected strength > 100 to be accepted, got %v", err)
	}
	if math.Abs(got-9.6) > 1e-9 {
		t.Fatalf("expected 9.6, got %v", got)
	}
	if !alcohol.StrengthSuspicious(120) {
		t.Fatalf("expected 120%% to be flagged")
	}
	if alcohol.StrengthSuspicious(96) {
		t.Fatalf("expected 96%% not to be flagged")
	}
}

func TestConvertVolume(t *testing.T) {
	t.Parallel()
	out, err := alcohol.ConvertVolume(1, "GO")
	if err != nil {
		t.Fatalf("convert go: %v", err)
	}
	if out != 180 {
		t.Fatalf("expected 180 ml, got %v", out)
	}
	out, err = alcohol.ConvertVolume(2, "fl-oz")
	if err != nil {
		t.Fatalf("convert fl-oz: %v", err)
	}
	if math.Abs(out-59.147) > 0.01 {
		t.Fatalf("expected ~59.15 ml, got %.4f", out)
	}
	out, err = alcohol.ConvertVolume(350, "")
	if err != nil || out != 350 {
		t.Fatalf("expected empty unit to default to ml, got %v (%v)", out, err)
	}
	if _, err := alcohol.ConvertVolume(1, "barrel"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected unsupported unit error, got %v", err)
	}
}

func TestBeerEquivalent(t *testing.T) {
	t.Parallel()
	if got := alcohol.BeerEquivalent(28); got != 2 {
		t.Fatalf("expected 2 beers, got %v", got)
	}
}
