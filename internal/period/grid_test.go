package period_test

import (
	"testing"
	"time"

	"github.com/saadjs/drinklog/internal/period"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalendarGrid(t *testing.T) {
	Convey("Given January 2025, which starts on a Wednesday", t, func() {
		Convey("A Sunday-start grid has three leading blanks", func() {
			cells := period.NewCalendar(time.UTC, time.Sunday).CalendarGrid(2025, time.January)
			So(len(cells), ShouldEqual, 3+31)
			for i := 0; i < 3; i++ {
				So(cells[i].IsBlank(), ShouldBeTrue)
			}
			So(cells[3].Day(), ShouldEqual, 1)
			So(cells[len(cells)-1].IsBlank(), ShouldBeFalse)
			So(cells[len(cells)-1].Day(), ShouldEqual, 31)
		})

		Convey("A Monday-start grid has two leading blanks", func() {
			cells := period.NewCalendar(time.UTC, time.Monday).CalendarGrid(2025, time.January)
			So(cells[0].IsBlank(), ShouldBeTrue)
			So(cells[1].IsBlank(), ShouldBeTrue)
			So(cells[2].Day(), ShouldEqual, 1)
			So(len(cells), ShouldEqual, 2+31)
		})

		Convey("A Wednesday-start grid has no blanks at all", func() {
			cells := period.NewCalendar(time.UTC, time.Wednesday).CalendarGrid(2025, time.January)
			So(len(cells), ShouldEqual, 31)
			So(cells[0].Day(), ShouldEqual, 1)
		})
	})

	Convey("Given a leap February", t, func() {
		cells := period.NewCalendar(time.UTC, time.Sunday).CalendarGrid(2024, time.February)
		// 2024-02-01 is a Thursday
		So(len(cells), ShouldEqual, 4+29)
		So(cells[len(cells)-1].Day(), ShouldEqual, 29)
	})
}

func TestGridIsLazy(t *testing.T) {
	t.Parallel()
	cal := period.NewCalendar(time.UTC, time.Sunday)
	n := 0
	for cell := range cal.Grid(2025, time.January) {
		n++
		if !cell.IsBlank() {
			break
		}
	}
	if n != 4 {
		t.Fatalf("expected to stop after the first date cell, consumed %d", n)
	}
}

func TestWeekdays(t *testing.T) {
	t.Parallel()
	days := period.NewCalendar(time.UTC, time.Saturday).Weekdays()
	if days[0] != time.Saturday || days[1] != time.Sunday || days[6] != time.Friday {
		t.Fatalf("unexpected weekday order %v", days)
	}
}
