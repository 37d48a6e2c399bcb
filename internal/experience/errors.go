// Package experience computes total professional experience from loosely formatted job date ranges.
package experience

import "fmt"

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// FailureReason classifies why a record did not produce an interval
type FailureReason string

const (
	// ReasonMissingField means start or end text was empty
	ReasonMissingField FailureReason = "missing_field"
	// ReasonUnparseableStart means no accepted format matched the start text
	ReasonUnparseableStart FailureReason = "unparseable_start"
	// ReasonUnparseableEnd means the end text was neither ongoing nor a known format
	ReasonUnparseableEnd FailureReason = "unparseable_end"
	// ReasonDegenerate means the end did not fall strictly after the start
	ReasonDegenerate FailureReason = "degenerate_interval"
)

// ParseFailure is returned for a single record that cannot become an interval.
// Normalize filters these out; they never abort a computation.
type ParseFailure struct {
	Reason FailureReason
	Start  string
	End    string
}

func (e *ParseFailure) Error() string {
	return fmt.Sprintf("skipped interval %q - %q: %s", e.Start, e.End, e.Reason)
}
