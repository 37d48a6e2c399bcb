package experience

import (
	"fmt"
	"math"
	"strings"
)

// Format renders fractional years as "N years, M months".
// Non-finite and non-positive values render as "N/A".
func Format(totalYears float64) string {
	if math.IsNaN(totalYears) || math.IsInf(totalYears, 0) || totalYears <= 0 {
		return "N/A"
	}

	years := int(math.Floor(totalYears))
	months := int(math.RoundToEven((totalYears - float64(years)) * 12))
	if months == 12 {
		years++
		months = 0
	}

	parts := make([]string, 0, 2)
	if years > 0 {
		parts = append(parts, pluralize(years, "year"))
	}
	if months > 0 {
		parts = append(parts, pluralize(months, "month"))
	}
	if len(parts) == 0 {
		return "Less than a month"
	}
	return strings.Join(parts, ", ")
}

func pluralize(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
