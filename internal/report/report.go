// Package report renders analytics reports as text, Markdown, HTML or JSON.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/saadjs/drinklog/internal/service"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid --out-format value %q (use text|markdown|html|json)", s)
	}
}

// Render produces the report in the requested format.
func Render(r *service.Report, format Format, noCharts bool) ([]byte, error) {
	switch format {
	case FormatText:
		var b bytes.Buffer
		Text(&b, r, noCharts)
		return b.Bytes(), nil
	case FormatMarkdown:
		return []byte(Markdown(r)), nil
	case FormatHTML:
		return HTML(r)
	case FormatJSON:
		return JSON(r)
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

func JSON(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report json: %w", err)
	}
	return append(b, '\n'), nil
}

// Text writes the report as plain lines, with ASCII charts unless noCharts.
func Text(out io.Writer, r *service.Report, noCharts bool) {
	s := r.Statistics
	fmt.Fprintf(out, "Period: %s (%s to %s, %d/%d days elapsed)\n", r.Period, r.FromDate, r.ToDate, r.ElapsedDays, r.Days)
	fmt.Fprintf(out, "Pure alcohol: %.1f g (%.1f beers) in %d drinks, %.0f ml\n", s.TotalPureAlcoholGrams, r.BeerEquivalent, s.RecordCount, s.TotalVolumeMl)
	fmt.Fprintf(out, "vs previous: %s\n", formatDelta(r.VsPrevious, "g"))
	fmt.Fprintf(out, "Drinking days: %d, rest days: %d (target %d, %s)\n", s.DrinkingDayCount, r.RestDays, r.Goal.RestDaysTarget, metLabel(r.Goal.RestDaysMet))
	fmt.Fprintf(out, "Averages: %.1f g/drink, %.1f g/drinking day\n", s.AveragePerSession, s.AveragePerDrinkingDay)
	if s.MostFrequentBeverageLabel != nil {
		fmt.Fprintf(out, "Most frequent: %s\n", *s.MostFrequentBeverageLabel)
	}
	fmt.Fprintf(out, "Goal: %.1f/%.0f g (%.0f%%, %s), %.1f g remaining\n", r.Goal.TotalGrams, r.Goal.LimitGrams, r.Goal.UsedPercent, r.Goal.Severity, r.Goal.RemainingGrams)

	fmt.Fprintln(out, "\nBy Beverage")
	if len(r.ByBeverage) == 0 {
		fmt.Fprintln(out, "No drinks")
	}
	for _, b := range r.ByBeverage {
		fmt.Fprintf(out, "%s %s\t%d\t%.1f g\t%.1f%%\n", b.Glyph, b.Label, b.Count, b.TotalGrams, b.Percentage)
	}

	fmt.Fprintln(out, "\nBy Weekday")
	for _, w := range r.ByWeekday {
		fmt.Fprintf(out, "%s\t%d\t%.1f g\tavg %.1f g\n", w.Name, w.Count, w.TotalGrams, w.AverageGrams)
	}

	in := r.Insights
	fmt.Fprintln(out, "\nInsights")
	fmt.Fprintf(out, "Drinking streak: current=%d longest=%d\n", in.Streaks.Drinking.Current, in.Streaks.Drinking.Longest)
	fmt.Fprintf(out, "Rest streak: current=%d longest=%d\n", in.Streaks.Rest.Current, in.Streaks.Rest.Longest)
	fmt.Fprintf(out, "Trend: %s (%.2f g/day)\n", in.Trend.Direction, in.Trend.SlopePerDay)
	fmt.Fprintf(out, "Consistency: mean=%.1f stddev=%.1f cv=%.2f\n", in.Consistency.Mean, in.Consistency.StdDev, in.Consistency.CoeffVar)
	if in.HeaviestDay != nil {
		fmt.Fprintf(out, "Heaviest day: %s (%.1f g)\n", in.HeaviestDay.Date, in.HeaviestDay.TotalGrams)
	}
	if in.Rolling7.Latest != nil {
		fmt.Fprintf(out, "7-day average: %.1f g/day\n", in.Rolling7.Latest.AverageGrams)
	}

	if noCharts || len(r.Series) == 0 {
		return
	}
	fmt.Fprintln(out, "\nDaily")
	DailyBars(out, r.Series)
}

func metLabel(met bool) string {
	if met {
		return "met"
	}
	return "not met"
}

// Markdown renders the report as GitHub-flavored Markdown.
func Markdown(r *service.Report) string {
	s := r.Statistics
	var b strings.Builder
	fmt.Fprintf(&b, "# Drinking Report\n\n")
	fmt.Fprintf(&b, "- Period: `%s` (`%s` to `%s`)\n", r.Period, r.FromDate, r.ToDate)
	fmt.Fprintf(&b, "- Pure alcohol: %.1f g (%.1f beers, %s)\n", s.TotalPureAlcoholGrams, r.BeerEquivalent, formatDelta(r.VsPrevious, "g"))
	fmt.Fprintf(&b, "- Drinks: %d on %d days\n", s.RecordCount, s.DrinkingDayCount)
	fmt.Fprintf(&b, "- Rest days: %d of %d elapsed (target %d, %s)\n", r.RestDays, r.ElapsedDays, r.Goal.RestDaysTarget, metLabel(r.Goal.RestDaysMet))
	fmt.Fprintf(&b, "- Goal: %.0f%% of %.0f g, **%s**\n\n", r.Goal.UsedPercent, r.Goal.LimitGrams, r.Goal.Severity)

	fmt.Fprintf(&b, "## By Beverage\n\n")
	if len(r.ByBeverage) == 0 {
		fmt.Fprintf(&b, "No drinks in this period.\n\n")
	} else {
		fmt.Fprintf(&b, "| Beverage | Drinks | Grams | Share |\n|---|---:|---:|---:|\n")
		for _, bev := range r.ByBeverage {
			fmt.Fprintf(&b, "| %s %s | %d | %.1f | %.1f%% |\n", bev.Glyph, escapePipes(bev.Label), bev.Count, bev.TotalGrams, bev.Percentage)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## By Weekday\n\n| Day | Drinks | Grams | Avg |\n|---|---:|---:|---:|\n")
	for _, w := range r.ByWeekday {
		fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f |\n", w.Name, w.Count, w.TotalGrams, w.AverageGrams)
	}

	in := r.Insights
	fmt.Fprintf(&b, "\n## Insights\n\n")
	fmt.Fprintf(&b, "- Drinking streak: current=%d, longest=%d\n", in.Streaks.Drinking.Current, in.Streaks.Drinking.Longest)
	fmt.Fprintf(&b, "- Rest streak: current=%d, longest=%d\n", in.Streaks.Rest.Current, in.Streaks.Rest.Longest)
	fmt.Fprintf(&b, "- Trend: %s (%.2f g/day)\n", in.Trend.Direction, in.Trend.SlopePerDay)
	if in.HeaviestDay != nil {
		fmt.Fprintf(&b, "- Heaviest day: `%s` (%.1f g)\n", in.HeaviestDay.Date, in.HeaviestDay.TotalGrams)
	}
	return b.String()
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(goldmarkhtml.WithXHTML()),
)

// HTML converts the Markdown rendering into a standalone HTML document.
func HTML(r *service.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(r)), &body); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>drinklog report</title></head><body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body></html>\n")
	return b.Bytes(), nil
}
