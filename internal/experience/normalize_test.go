package experience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = month(2024, time.January)

func TestNormalizeRecord_SameMonthSpansOneMonth(t *testing.T) {
	iv, err := NormalizeRecord(RawInterval{Start: "03/2022", End: "03/2022"}, asOf)
	require.NoError(t, err)

	assert.Equal(t, month(2022, time.March), iv.Start)
	assert.Equal(t, month(2022, time.April), iv.End)
	assert.Equal(t, 1, iv.Months())
}

func TestNormalizeRecord_OngoingResolvesToNow(t *testing.T) {
	for _, end := range []string{"Present", "present", "  PRESENT  ", "Current", "current "} {
		t.Run(end, func(t *testing.T) {
			iv, err := NormalizeRecord(RawInterval{Start: "01/2020", End: end}, asOf)
			require.NoError(t, err)
			assert.Equal(t, asOf, iv.End)
		})
	}
}

func TestNormalizeRecord_NowKeepsWallClock(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))

	iv, err := NormalizeRecord(RawInterval{Start: "01/2020", End: "present"}, now)
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.January), iv.End)
	assert.Equal(t, 48, iv.Months())
}

func TestNormalizeRecord_Failures(t *testing.T) {
	tests := []struct {
		name   string
		record RawInterval
		reason FailureReason
	}{
		{"missing start", RawInterval{Start: "", End: "01/2020"}, ReasonMissingField},
		{"blank end", RawInterval{Start: "01/2020", End: "   "}, ReasonMissingField},
		{"bad start", RawInterval{Start: "sometime", End: "01/2020"}, ReasonUnparseableStart},
		{"bad end", RawInterval{Start: "01/2020", End: "N/A"}, ReasonUnparseableEnd},
		{"reversed", RawInterval{Start: "05/2020", End: "03/2020"}, ReasonDegenerate},
		{"end month before start month", RawInterval{Start: "05/2020", End: "04/2020"}, ReasonDegenerate},
		{"starts after now", RawInterval{Start: "05/2030", End: "Present"}, ReasonDegenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRecord(tt.record, asOf)
			require.Error(t, err)

			var failure *ParseFailure
			require.True(t, errors.As(err, &failure))
			assert.Equal(t, tt.reason, failure.Reason)
			assert.Contains(t, failure.Error(), string(tt.reason))
		})
	}
}

func TestNormalize_SkipsBadRecordsAndKeepsOrder(t *testing.T) {
	records := []RawInterval{
		{Start: "06/2021", End: "Present"},
		{Start: "garbage", End: "01/2020"},
		{Start: "01/2020", End: "12/2021"},
		{Start: "01/2019", End: "N/A"},
	}

	got := Normalize(records, asOf)
	require.Len(t, got, 2)
	assert.Equal(t, month(2021, time.June), got[0].Start)
	assert.Equal(t, month(2020, time.January), got[1].Start)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Empty(t, Normalize(nil, asOf))
	assert.Empty(t, Normalize([]RawInterval{}, asOf))
}

func TestDiagnose_ReportsFailuresWithIndex(t *testing.T) {
	records := []RawInterval{
		{Start: "01/2020", End: "12/2020"},
		{Start: "01/2019", End: "N/A"},
		{Start: "", End: ""},
	}

	report := Diagnose(records, asOf)
	require.Len(t, report.Intervals, 1)
	require.Len(t, report.Failures, 2)

	assert.Equal(t, Failure{Index: 1, Start: "01/2019", End: "N/A", Reason: ReasonUnparseableEnd}, report.Failures[0])
	assert.Equal(t, 2, report.Failures[1].Index)
	assert.Equal(t, ReasonMissingField, report.Failures[1].Reason)
}
