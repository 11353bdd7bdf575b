package store

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/saadjs/drinklog/internal/alcohol"
)

type IntegrityReport struct {
	CheckedRows      int      `json:"checked_rows"`
	StaleGramRows    int      `json:"stale_gram_rows"`
	InvalidRows      int      `json:"invalid_rows"`
	MisorderedStamps int      `json:"misordered_timestamps"`
	FixedRows        int      `json:"fixed_rows,omitempty"`
	Problems         []string `json:"problems,omitempty"`
}

func (r IntegrityReport) Healthy() bool {
	return r.StaleGramRows == 0 && r.InvalidRows == 0 && r.MisorderedStamps == 0
}

// CheckIntegrity scans raw rows for values the model would never write.
// With fix set, stale pure-alcohol columns are recomputed in place.
func (s *Store) CheckIntegrity(ctx context.Context, fix bool) (IntegrityReport, error) {
	var rows []eventRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM consumption_events ORDER BY occurred_at ASC, id ASC`); err != nil {
		return IntegrityReport{}, fmt.Errorf("integrity scan: %w", err)
	}
	report := IntegrityReport{CheckedRows: len(rows)}
	stale := make(map[string]float64)
	for _, r := range rows {
		grams, err := alcohol.PureAlcohol(r.VolumeMl, r.StrengthPercent)
		if err != nil {
			report.InvalidRows++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: %v", r.ID, err))
			continue
		}
		if r.BeverageLabel == "" {
			report.InvalidRows++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: empty beverage label", r.ID))
			continue
		}
		created, errC := parseTime(r.CreatedAt)
		updated, errU := parseTime(r.UpdatedAt)
		_, errO := parseTime(r.OccurredAt)
		if errC != nil || errU != nil || errO != nil {
			report.InvalidRows++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: unreadable timestamp", r.ID))
			continue
		}
		if updated.Before(created) {
			report.MisorderedStamps++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: updated_at before created_at", r.ID))
		}
		if math.Abs(grams-r.PureAlcoholG) > 1e-9 {
			report.StaleGramRows++
			report.Problems = append(report.Problems, fmt.Sprintf("%s: stored %.4f g, derived %.4f g", r.ID, r.PureAlcoholG, grams))
			stale[r.ID] = grams
		}
	}

	if fix && len(stale) > 0 {
		now := formatTime(time.Now())
		for id, grams := range stale {
			if _, err := s.db.ExecContext(ctx, s.rebind(`UPDATE consumption_events SET pure_alcohol_g = ?, updated_at = ? WHERE id = ?`), grams, now, id); err != nil {
				return report, fmt.Errorf("fix event %s: %w", id, err)
			}
			report.FixedRows++
		}
	}
	return report, nil
}
