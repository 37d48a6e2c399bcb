package experience

import (
	"math"
	"slices"
	"time"
)

// Merge coalesces overlapping intervals into a sorted, pairwise disjoint set.
// Only strict overlap merges: an interval that starts exactly where the
// previous one ends stays separate.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := slices.Clone(intervals)
	slices.SortStableFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start.Before(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// MonthsBetween returns the whole calendar months from start to end.
// A trailing partial month is not counted.
func MonthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()-start.Month())
	if months > 0 && AddMonths(start, months).After(end) {
		months--
	}
	return months
}

// Months returns the whole calendar months the interval spans
func (iv Interval) Months() int {
	return MonthsBetween(iv.Start, iv.End)
}

// TotalMonths sums the calendar span of each interval
func TotalMonths(intervals []Interval) int {
	total := 0
	for _, iv := range intervals {
		total += iv.Months()
	}
	return total
}

// Reduce merges intervals and returns the total in years, rounded to two decimals
func Reduce(intervals []Interval) float64 {
	if len(intervals) == 0 {
		return 0
	}
	return monthsToYears(TotalMonths(Merge(intervals)))
}

func monthsToYears(months int) float64 {
	return math.Round(float64(months)/12*100) / 100
}
