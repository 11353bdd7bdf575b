package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/saadjs/drinklog/internal/apperr"
	"github.com/saadjs/drinklog/internal/export"
	"github.com/saadjs/drinklog/internal/model"
	"github.com/saadjs/drinklog/internal/period"
	"github.com/saadjs/drinklog/internal/store"
)

// Export writes drinks oldest first. A nil bounds exports everything.
func (t *Tracker) Export(ctx context.Context, format export.Format, w io.Writer, bounds *period.Bounds) (int, error) {
	var (
		events []model.ConsumptionEvent
		err    error
	)
	if bounds == nil {
		events, err = t.repo.Events(ctx)
	} else {
		events, err = t.repo.EventsBetween(ctx, *bounds)
	}
	if err != nil {
		return 0, err
	}

	loc := t.cal.Loc()
	switch format {
	case export.FormatCSV:
		err = export.WriteCSV(w, events, loc)
	case export.FormatJSON:
		err = export.WriteJSON(w, events, loc)
	case export.FormatXLSX:
		err = export.WriteXLSX(w, events, loc)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return 0, err
	}
	t.log.Info("export written", slog.String("format", string(format)), slog.Int("events", len(events)))
	return len(events), nil
}

type ImportOptions struct {
	Format export.Format
	Mode   store.ImportMode
	DryRun bool
}

type ImportReport struct {
	Parsed   int  `json:"parsed"`
	New      int  `json:"new"`
	Existing int  `json:"existing"`
	DryRun   bool `json:"dry_run"`
	store.ImportResult
}

func (t *Tracker) Import(ctx context.Context, r io.Reader, opts ImportOptions) (ImportReport, error) {
	var (
		events []model.ConsumptionEvent
		err    error
	)
	switch opts.Format {
	case export.FormatCSV:
		events, err = export.ParseCSV(r)
	case export.FormatJSON:
		events, err = export.ParseJSON(r)
	default:
		return ImportReport{}, apperr.Invalid("format", opts.Format, "import supports csv or json, got")
	}
	if err != nil {
		return ImportReport{}, err
	}
	if opts.Mode == "" {
		opts.Mode = store.ImportFail
	}

	report := ImportReport{Parsed: len(events), DryRun: opts.DryRun}
	for _, ev := range events {
		_, err := t.repo.EventByID(ctx, ev.ID)
		switch {
		case err == nil:
			report.Existing++
		case errors.Is(err, store.ErrEventNotFound):
			report.New++
		default:
			return ImportReport{}, err
		}
	}
	if opts.DryRun {
		return report, nil
	}

	res, err := t.repo.ImportEvents(ctx, events, opts.Mode)
	if err != nil {
		return ImportReport{}, err
	}
	report.ImportResult = res
	t.log.Info("import applied",
		slog.String("mode", string(opts.Mode)),
		slog.Int("inserted", res.Inserted),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
	)
	return report, nil
}
