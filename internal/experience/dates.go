package experience

import (
	"strings"
	"time"
)

// monthLayouts are tried in order; the first that parses wins.
// Single-digit month layouts also accept zero-padded months.
var monthLayouts = []string{
	"1/2006",       // 03/2022
	"Jan 2006",     // Mar 2022
	"January 2006", // March 2022
	"1-2006",       // 03-2022
	"Jan-2006",     // Mar-2022
	"January-2006", // March-2022
	"2006/1",       // 2022/03
	"2006-1",       // 2022-03
}

// ongoingMarkers resolve an end date to the as-of moment
var ongoingMarkers = map[string]bool{
	"present": true,
	"current": true,
}

// ParseMonth parses text into the first instant of the named month.
// The second return value is false when no accepted layout matches.
func ParseMonth(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	for _, layout := range monthLayouts {
		if t, ok := tryLayout(layout, text); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// tryLayout is a single parse attempt against one layout
func tryLayout(layout, text string) (time.Time, bool) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), true
}

// IsOngoing reports whether end text marks a job that has not ended
func IsOngoing(text string) bool {
	return ongoingMarkers[strings.ToLower(strings.TrimSpace(text))]
}

// AddMonths moves t by n calendar months, clamping the day to the target month's length
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// wallClockUTC keeps the wall-clock reading of t but drops its zone
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
