package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/spf13/cobra"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "Compute total work experience from job date ranges",
	Long: "Reads job date ranges from a JSON file (an array of {start_date, end_date} or an object " +
		"with a work_experience array) or from --interval flags, merges overlaps, and prints the total.",
	RunE: runExperience,
}

var (
	experienceInputFile string
	experienceIntervals []string
	experienceAsOf      string
	experienceJSON      bool
)

func init() {
	experienceCmd.Flags().StringVarP(&experienceInputFile, "in", "i", "", "Path to a work history JSON file")
	experienceCmd.Flags().StringArrayVar(&experienceIntervals, "interval", nil, `Date range as "start:end", e.g. "01/2020:Present" (repeatable)`)
	experienceCmd.Flags().StringVar(&experienceAsOf, "as-of", "", "Date that Present resolves to (YYYY-MM); defaults to today")
	experienceCmd.Flags().BoolVar(&experienceJSON, "json", false, "Print the full summary as JSON")

	experienceCmd.MarkFlagsOneRequired("in", "interval")
	experienceCmd.MarkFlagsMutuallyExclusive("in", "interval")

	rootCmd.AddCommand(experienceCmd)
}

func runExperience(cmd *cobra.Command, _ []string) error {
	records, err := loadRecords(experienceInputFile, experienceIntervals)
	if err != nil {
		return err
	}

	asOf, err := resolveAsOf(experienceAsOf, time.Now())
	if err != nil {
		return err
	}

	summary := experience.Summarize(records, asOf)
	out := cmd.OutOrStdout()

	if experienceJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if cfg != nil && cfg.Verbose {
		observability.NewPrinter(out).PrintExperience(summary)
		return nil
	}

	_, _ = fmt.Fprintf(out, "Total experience: %s (%.2f years)\n", summary.Display, summary.Years)
	for _, f := range summary.Skipped {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped record %d (%q - %q): %s\n", f.Index, f.Start, f.End, f.Reason)
	}
	return nil
}

// loadRecords reads records from a work history file or from start:end flag values
func loadRecords(path string, intervals []string) ([]experience.RawInterval, error) {
	if path != "" {
		records, err := experience.LoadWorkHistory(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load work history: %w", err)
		}
		return records, nil
	}

	records := make([]experience.RawInterval, 0, len(intervals))
	for _, s := range intervals {
		r, err := parseIntervalFlag(s)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// parseIntervalFlag splits "start:end" into a raw interval
func parseIntervalFlag(s string) (experience.RawInterval, error) {
	start, end, ok := strings.Cut(s, ":")
	if !ok {
		return experience.RawInterval{}, fmt.Errorf("invalid --interval %q: expected start:end", s)
	}
	return experience.RawInterval{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}, nil
}
