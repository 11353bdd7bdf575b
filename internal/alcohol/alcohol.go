// Package alcohol converts drink volumes and strengths into grams of ethanol.
package alcohol

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/saadjs/drinklog/internal/apperr"
)

// EthanolDensity is the specific gravity of ethanol in g/ml.
const EthanolDensity = 0.8

// StandardBeerGrams is the ethanol in one 350 ml can of 5% beer.
const StandardBeerGrams = 14.0

// PureAlcohol returns volumeMl * strengthPercent/100 * 0.8 without rounding.
// Strength above 100 is accepted; see StrengthSuspicious.
func PureAlcohol(volumeMl, strengthPercent float64) (float64, error) {
	if math.IsNaN(volumeMl) || math.IsInf(volumeMl, 0) {
		return 0, apperr.Invalid("volume_ml", volumeMl, "must be finite, got")
	}
	if math.IsNaN(strengthPercent) || math.IsInf(strengthPercent, 0) {
		return 0, apperr.Invalid("strength_percent", strengthPercent, "must be finite, got")
	}
	if err := apperr.NotNegative("volume_ml", volumeMl); err != nil {
		return 0, err
	}
	if err := apperr.NotNegative("strength_percent", strengthPercent); err != nil {
		return 0, err
	}
	return volumeMl * (strengthPercent / 100) * EthanolDensity, nil
}

// StrengthSuspicious reports strengths the UI should confirm before saving.
func StrengthSuspicious(strengthPercent float64) bool {
	return strengthPercent > 100
}

// BeerEquivalent expresses grams as a count of standard beers.
func BeerEquivalent(grams float64) float64 {
	return grams / StandardBeerGrams
}

// volume units, base = ml
var unitTable = map[string]float64{
	"ml":    1,
	"cl":    10,
	"dl":    100,
	"l":     1000,
	"fl-oz": 29.5735295625,
	"cup":   236.5882365,
	"pint":  473.176473,
	"shot":  30,
	"go":    180,
}

// ConvertVolume converts value in unit to millilitres.
func ConvertVolume(value float64, unit string) (float64, error) {
	if err := apperr.NotNegative("volume", value); err != nil {
		return 0, err
	}
	factor, ok := resolveUnit(unit)
	if !ok {
		return 0, apperr.Invalid("unit", unit, fmt.Sprintf("unsupported (one of %s), got", strings.Join(Units(), ", ")))
	}
	return value * factor, nil
}

// Units lists the accepted unit names.
func Units() []string {
	out := make([]string, 0, len(unitTable))
	for u := range unitTable {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

func resolveUnit(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "ml"
	}
	factor, ok := unitTable[u]
	return factor, ok
}
