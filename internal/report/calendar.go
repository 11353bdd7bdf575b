package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/saadjs/drinklog/internal/service"
	"github.com/saadjs/drinklog/internal/stats"
)

var levelMarks = map[stats.Level]string{
	stats.LevelNone:     " ",
	stats.LevelLight:    ".",
	stats.LevelModerate: "*",
	stats.LevelHeavy:    "#",
}

// Month prints a month grid. Each day carries a level mark; today is bracketed.
func Month(out io.Writer, v *service.MonthView) {
	fmt.Fprintf(out, "%s %d\n", v.Month, v.Year)
	fmt.Fprintln(out, " "+strings.Join(v.Weekdays, "  "))
	for i, c := range v.Cells {
		if i > 0 && i%7 == 0 {
			fmt.Fprintln(out)
		}
		switch {
		case c.Blank:
			fmt.Fprint(out, "     ")
		case c.Today:
			fmt.Fprintf(out, "[%2d%s]", c.Day, levelMarks[c.Level])
		default:
			fmt.Fprintf(out, " %2d%s ", c.Day, levelMarks[c.Level])
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "\nTotal %.1f g, %d drinking days, %d rest days so far\n", v.TotalGrams, v.DrinkingDays, v.RestDays)
	fmt.Fprintln(out, "Legend: . light (<=20 g)  * moderate (<=40 g)  # heavy")
}
