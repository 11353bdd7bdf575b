package period_test

import (
	"testing"
	"time"

	"github.com/saadjs/drinklog/internal/period"
)

func TestWeekStartForLocale(t *testing.T) {
	t.Parallel()
	cases := map[string]time.Weekday{
		"ja-JP": time.Sunday,
		"ja":    time.Sunday,
		"en-US": time.Sunday,
		"en-GB": time.Monday,
		"de":    time.Monday,
		"ar-EG": time.Saturday,
	}
	for tag, want := range cases {
		got, err := period.WeekStartForLocale(tag)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if got != want {
			t.Fatalf("%s: expected %s, got %s", tag, want, got)
		}
	}
	if _, err := period.WeekStartForLocale("not a tag!"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]time.Weekday{"sunday": time.Sunday, "Mon": time.Monday, " SAT ": time.Saturday} {
		got, err := period.ParseWeekday(in)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := period.ParseWeekday("someday"); err == nil {
		t.Fatalf("expected invalid weekday error")
	}
}
