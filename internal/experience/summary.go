package experience

import "time"

// Summary is the full result of one experience computation
type Summary struct {
	Years     float64    `json:"total_years"`
	Months    int        `json:"total_months"`
	Display   string     `json:"display"`
	Intervals []Interval `json:"intervals"`
	Skipped   []Failure  `json:"skipped,omitempty"`
}

// TotalExperience returns total years of non-overlapping experience as of now
func TotalExperience(records []RawInterval, now time.Time) float64 {
	return Reduce(Normalize(records, now))
}

// Summarize computes the total along with the merged intervals and skipped records
func Summarize(records []RawInterval, now time.Time) Summary {
	report := Diagnose(records, now)
	merged := Merge(report.Intervals)
	if merged == nil {
		merged = []Interval{}
	}

	months := TotalMonths(merged)
	years := monthsToYears(months)
	return Summary{
		Years:     years,
		Months:    months,
		Display:   Format(years),
		Intervals: merged,
		Skipped:   report.Failures,
	}
}
