package experience

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		years float64
		want  string
	}{
		{"zero", 0, "N/A"},
		{"negative", -1.5, "N/A"},
		{"nan", math.NaN(), "N/A"},
		{"positive infinity", math.Inf(1), "N/A"},
		{"negative infinity", math.Inf(-1), "N/A"},
		{"one year", 1, "1 year"},
		{"two years", 2, "2 years"},
		{"four years", 4.0, "4 years"},
		{"one month", 0.08, "1 month"},
		{"two months", 0.17, "2 months"},
		{"year and months", 1.25, "1 year, 3 months"},
		{"years and months", 2.5, "2 years, 6 months"},
		{"singular month", 3.08, "3 years, 1 month"},
		{"eleven months", 10.92, "10 years, 11 months"},
		{"below one month", 0.01, "Less than a month"},
		{"half rounds to even down", 0.375, "4 months"},
		{"half rounds to even up", 0.125, "2 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.years))
		})
	}
}

func TestFormat_CarriesTwelveMonthsIntoYears(t *testing.T) {
	assert.Equal(t, "2 years", Format(1.9999))
	assert.Equal(t, "1 year", Format(0.99999))
	assert.Equal(t, "6 years", Format(5.98))
	assert.NotContains(t, Format(1.999), "12 months")
}
