package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/saadjs/drinklog/internal/model"
)

const xlsxSheet = "Drinks"

// WriteXLSX writes a single-sheet workbook with the CSV columns. Numeric
// cells carry the same precision as the CSV text.
func WriteXLSX(w io.Writer, events []model.ConsumptionEvent, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("name xlsx sheet: %w", err)
	}
	header := make([]any, 0, len(CSVHeader))
	for _, h := range CSVHeader {
		header = append(header, h)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, ev := range events {
		r, err := toRow(ev, loc)
		if err != nil {
			return err
		}
		values := []any{
			r.id,
			r.occurredAt,
			r.beverage,
			r.glyph,
			mustDecimal(r.volume),
			mustDecimal(r.strength),
			mustDecimal(r.grams),
			r.note,
			r.createdAt,
			r.updatedAt,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %s: %w", ev.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// mustDecimal turns an already formatted fixed-point string back into a float
// cell value.
func mustDecimal(s string) float64 {
	return decimal.RequireFromString(s).InexactFloat64()
}
