package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintRegistration(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reg := &types.Registration{
		PersonalInfo:    types.PersonalInfo{FullName: "Jane Doe", EmailAddress: "jane@example.com"},
		TotalExperience: "4 years",
		Skills:          types.Skills{Technical: []string{"Go", "PostgreSQL"}},
		WorkExperience: []types.WorkExperience{
			{CompanyName: "Acme", JobTitle: "Engineer", StartDate: "01/2020", EndDate: "12/2021"},
			{JobTitle: "Consultant"},
		},
	}

	p.PrintRegistration(reg)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "4 years")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "01/2020 - 12/2021")
	assert.Contains(t, output, "? - ?")
	assert.Contains(t, output, "PostgreSQL")
	assert.NotContains(t, output, "Recommended Roles")
}

func TestPrintRegistration_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRegistration(nil)

	assert.Empty(t, buf.String())
}

func TestPrintRegistration_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	skills := make([]string, 8)
	for i := range skills {
		skills[i] = fmt.Sprintf("skill-%d", i)
	}
	p.PrintRegistration(&types.Registration{Skills: types.Skills{Technical: skills}})

	output := buf.String()
	assert.Contains(t, output, "skill-4")
	assert.NotContains(t, output, "skill-5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintExperience(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summary := experience.Summary{
		Years:   4,
		Months:  48,
		Display: "4 years",
		Intervals: []experience.Interval{{
			Start: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}},
		Skipped: []experience.Failure{{Index: 2, Start: "", End: "2015", Reason: experience.ReasonMissingField}},
	}

	p.PrintExperience(summary)
	output := buf.String()

	assert.Contains(t, output, "TOTAL EXPERIENCE")
	assert.Contains(t, output, "4 years (4.00 years, 48 months)")
	assert.Contains(t, output, "Jan 2020 - Dec 2023  (48 months)")
	assert.Contains(t, output, "Skipped 1 records")
	assert.Contains(t, output, "missing_field")
}

func TestPrintExperience_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExperience(experience.Summarize(nil, time.Now()))
	output := buf.String()

	assert.Contains(t, output, "N/A")
	assert.NotContains(t, output, "Merged intervals")
	assert.NotContains(t, output, "Skipped")
}

func TestPrintBatchReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := &pipeline.BatchReport{
		Succeeded: 2,
		Failed:    1,
		Results: []pipeline.FileResult{
			{Path: "/in/alice.pdf", Experience: &experience.Summary{Display: "2 years, 3 months"}},
			{Path: "/in/bob.docx", Duplicate: true},
			{Path: "/in/scan.pdf", Error: "could not extract any meaningful text"},
		},
	}

	p.PrintBatchReport(report)
	output := buf.String()

	assert.Contains(t, output, "BATCH RESULTS")
	assert.Contains(t, output, "Succeeded: 2  Failed: 1")
	assert.Contains(t, output, "✓ alice.pdf  2 years, 3 months")
	assert.Contains(t, output, "= bob.docx (already saved)")
	assert.Contains(t, output, "✗ scan.pdf")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
