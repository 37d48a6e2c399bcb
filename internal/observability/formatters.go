// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// monthLayout renders interval bounds
	monthLayout = "Jan 2006"
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to limit items under a heading
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintRegistration outputs a human-readable summary of a parsed registration.
func (p *Printer) PrintRegistration(reg *types.Registration) {
	if reg == nil {
		return
	}

	var sb strings.Builder
	info := reg.PersonalInfo
	sb.WriteString(fmt.Sprintf("Name:       %s\n", info.FullName))
	if info.EmailAddress != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", info.EmailAddress))
	}
	if info.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", info.Location))
	}
	sb.WriteString(fmt.Sprintf("Experience: %s\n", reg.TotalExperience))
	if reg.SuggestedCategory != "" {
		sb.WriteString(fmt.Sprintf("Category:   %s\n", reg.SuggestedCategory))
	}
	sb.WriteString("\n")

	if len(reg.WorkExperience) > 0 {
		sb.WriteString("Work Experience:\n")
		count := min(len(reg.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			job := reg.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s", job.JobTitle))
			if job.CompanyName != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", job.CompanyName))
			}
			sb.WriteString("\n")
			sb.WriteString(fmt.Sprintf("    %s - %s\n", orDash(job.StartDate), orDash(job.EndDate)))
		}
		if len(reg.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(reg.WorkExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Technical Skills", reg.Skills.Technical, maxItemsToShow)
	writeList(&sb, "Recommended Roles", reg.RecommendedRoles, 3)

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n\n"))
}

func orDash(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// PrintExperience outputs the merged intervals and skipped records behind a total.
func (p *Printer) PrintExperience(summary experience.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:  %s (%.2f years, %d months)\n", summary.Display, summary.Years, summary.Months))

	if len(summary.Intervals) > 0 {
		sb.WriteString("\nMerged intervals:\n")
		for _, iv := range summary.Intervals {
			// End is exclusive, so the last covered month is the one before it
			last := iv.End.AddDate(0, 0, -1)
			sb.WriteString(fmt.Sprintf("  • %s - %s  (%d months)\n",
				iv.Start.Format(monthLayout), last.Format(monthLayout), iv.Months()))
		}
	}

	if len(summary.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkipped %d records:\n", len(summary.Skipped)))
		for _, f := range summary.Skipped {
			sb.WriteString(fmt.Sprintf("⚠ #%d %q - %q\n", f.Index, f.Start, f.End))
			sb.WriteString(fmt.Sprintf("  %s\n", f.Reason))
		}
	}

	p.printBox("TOTAL EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchReport outputs one line per file of a batch run.
func (p *Printer) PrintBatchReport(report *pipeline.BatchReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Succeeded: %d  Failed: %d\n\n", report.Succeeded, report.Failed))

	for _, r := range report.Results {
		name := filepath.Base(r.Path)
		switch {
		case r.Error != "":
			sb.WriteString(fmt.Sprintf("✗ %s\n", name))
			sb.WriteString(fmt.Sprintf("  %s\n", r.Error))
		case r.Duplicate:
			sb.WriteString(fmt.Sprintf("= %s (already saved)\n", name))
		default:
			line := fmt.Sprintf("✓ %s", name)
			if r.Experience != nil {
				line += "  " + r.Experience.Display
			}
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("BATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
