package experience

import (
	"strings"
	"time"
)

// RawInterval is one job's start and end text as handed over by extraction.
// A JSON null decodes to the empty string and is treated as missing.
type RawInterval struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// Interval is a half-open calendar range [Start, End)
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Failure records one skipped input record
type Failure struct {
	Index  int           `json:"index"`
	Start  string        `json:"start_date"`
	End    string        `json:"end_date"`
	Reason FailureReason `json:"reason"`
}

// Report is the outcome of normalizing a batch of records
type Report struct {
	Intervals []Interval
	Failures  []Failure
}

// NormalizeRecord turns a single record into an interval.
// An ongoing end resolves to now; any other end is advanced one month so a
// job that starts and ends in the same named month still spans that month.
func NormalizeRecord(r RawInterval, now time.Time) (Interval, error) {
	if strings.TrimSpace(r.Start) == "" || strings.TrimSpace(r.End) == "" {
		return Interval{}, &ParseFailure{Reason: ReasonMissingField, Start: r.Start, End: r.End}
	}

	start, ok := ParseMonth(r.Start)
	if !ok {
		return Interval{}, &ParseFailure{Reason: ReasonUnparseableStart, Start: r.Start, End: r.End}
	}

	var end time.Time
	if IsOngoing(r.End) {
		end = wallClockUTC(now)
	} else {
		named, ok := ParseMonth(r.End)
		if !ok {
			return Interval{}, &ParseFailure{Reason: ReasonUnparseableEnd, Start: r.Start, End: r.End}
		}
		end = AddMonths(named, 1)
	}

	if !end.After(start) {
		return Interval{}, &ParseFailure{Reason: ReasonDegenerate, Start: r.Start, End: r.End}
	}
	return Interval{Start: start, End: end}, nil
}

// Diagnose normalizes every record and keeps the reason for each one it drops
func Diagnose(records []RawInterval, now time.Time) Report {
	report := Report{Intervals: make([]Interval, 0, len(records))}
	for i, r := range records {
		iv, err := NormalizeRecord(r, now)
		if err != nil {
			reason := ReasonMissingField
			if pf, ok := err.(*ParseFailure); ok {
				reason = pf.Reason
			}
			report.Failures = append(report.Failures, Failure{Index: i, Start: r.Start, End: r.End, Reason: reason})
			continue
		}
		report.Intervals = append(report.Intervals, iv)
	}
	return report
}

// Normalize returns the valid intervals among records, in input order.
// Records that cannot be parsed are dropped silently.
func Normalize(records []RawInterval, now time.Time) []Interval {
	return Diagnose(records, now).Intervals
}
