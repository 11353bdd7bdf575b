package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/saadjs/drinklog/internal/stats"
)

const barWidth = 24

var sparkChars = []rune("._-~=*#@")

func horizontalBar(value, maxValue float64, width int) string {
	if width <= 0 || maxValue <= 0 || value <= 0 {
		return ""
	}
	bars := int(math.Round(value / maxValue * float64(width)))
	if bars == 0 {
		bars = 1
	}
	return strings.Repeat("#", bars)
}

func printSeriesBars(out io.Writer, series []stats.DailyPoint) {
	maxV := 0.0
	for _, p := range series {
		maxV = math.Max(maxV, p.TotalGrams)
	}
	if maxV == 0 {
		fmt.Fprintln(out, "  (no drinks)")
		return
	}
	for _, p := range series {
		fmt.Fprintf(out, "  %s %-*s %.1f\n", p.Date, barWidth, horizontalBar(p.TotalGrams, maxV, barWidth), p.TotalGrams)
	}
}

// Sparkline maps each value onto eight glyph heights between the series min and max.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV == minV {
		return strings.Repeat(string(sparkChars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - minV) / (maxV - minV) * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

func formatDelta(d stats.DeltaStat, unit string) string {
	return fmt.Sprintf("%+.1f %s, %s", d.AbsDelta, unit, formatPctDelta(d.PctDelta))
}

func formatPctDelta(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

// DailyBars renders a trailing series as one bar per day.
func DailyBars(out io.Writer, series []stats.DailyPoint) {
	printSeriesBars(out, series)
	values := make([]float64, 0, len(series))
	for _, p := range series {
		values = append(values, p.TotalGrams)
	}
	fmt.Fprintf(out, "  trend %s\n", Sparkline(values))
}
