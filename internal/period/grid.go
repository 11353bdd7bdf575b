package period

import (
	"iter"
	"time"
)

// Cell is one slot of a month grid. Blank cells pad the first row.
type Cell struct {
	Date time.Time
}

func (c Cell) IsBlank() bool {
	return c.Date.IsZero()
}

func (c Cell) Day() int {
	if c.IsBlank() {
		return 0
	}
	return c.Date.Day()
}

// Grid yields the cells of a month view: blank cells until the first day
// lines up with its weekday column, then every day of the month. Cells after
// the last day are never produced, so the sequence never ends blank.
func (c Calendar) Grid(year int, month time.Month) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		first := c.Date(year, month, 1)
		for range c.WeekdayOffset(first.Weekday()) {
			if !yield(Cell{}) {
				return
			}
		}
		next := first.AddDate(0, 1, 0)
		for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
			if !yield(Cell{Date: d}) {
				return
			}
		}
	}
}

func (c Calendar) CalendarGrid(year int, month time.Month) []Cell {
	cells := make([]Cell, 0, 42)
	for cell := range c.Grid(year, month) {
		cells = append(cells, cell)
	}
	return cells
}

// Weekdays lists the seven weekdays starting at the calendar's week start.
func (c Calendar) Weekdays() [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(c.WeekStart) + i) % 7)
	}
	return out
}
