package period

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Regions whose weeks do not start on Monday, per CLDR weekData.
var (
	sundayRegions   = regionSet("AG AS BD BR BS BT BW BZ CA CN CO DM DO ET GT GU HK HN ID IL IN JM JP KE KH KR LA MH MM MO MT MX MZ NI NP PA PE PH PK PR PT PY SA SG SV TH TT TW UM US VE VI WS YE ZA ZW")
	saturdayRegions = regionSet("AE AF BH DJ DZ EG IQ IR JO KW LY OM QA SD SY")
	fridayRegions   = regionSet("MV")
)

func regionSet(list string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range strings.Fields(list) {
		out[r] = struct{}{}
	}
	return out
}

// WeekStartForLocale derives the first weekday from a BCP-47 tag such as
// "ja-JP" or "en-GB". A tag without a region uses the most likely one.
func WeekStartForLocale(tag string) (time.Weekday, error) {
	t, err := language.Parse(strings.TrimSpace(tag))
	if err != nil {
		return time.Sunday, fmt.Errorf("parse locale %q: %w", tag, err)
	}
	region, _ := t.Region()
	code := region.String()
	if _, ok := sundayRegions[code]; ok {
		return time.Sunday, nil
	}
	if _, ok := saturdayRegions[code]; ok {
		return time.Saturday, nil
	}
	if _, ok := fridayRegions[code]; ok {
		return time.Friday, nil
	}
	return time.Monday, nil
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if v == name || v == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", s)
}
