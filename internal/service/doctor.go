package service

import (
	"context"
	"log/slog"

	"github.com/saadjs/drinklog/internal/store"
)

// Doctor checks stored drinks for values the model would never write. With
// fix set, stale pure-alcohol columns are recomputed.
func (t *Tracker) Doctor(ctx context.Context, fix bool) (store.IntegrityReport, error) {
	report, err := t.repo.CheckIntegrity(ctx, fix)
	if err != nil {
		return report, err
	}
	if !report.Healthy() {
		t.log.Warn("integrity problems found",
			slog.Int("stale_gram_rows", report.StaleGramRows),
			slog.Int("invalid_rows", report.InvalidRows),
			slog.Int("misordered_timestamps", report.MisorderedStamps),
			slog.Int("fixed_rows", report.FixedRows),
		)
	}
	return report, nil
}
