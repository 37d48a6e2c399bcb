package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a resume file into a registration",
	Long: "Extracts text from a resume file (PDF, DOCX, HTML, TXT, ...), asks the LLM for its fields, " +
		"validates them, computes total experience, and writes the registration JSON.",
	RunE: runParse,
}

var (
	parseInputFile  string
	parseOutputFile string
	parseSave       bool
	parseAsOf       string
)

func init() {
	parseCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to the resume file (required)")
	parseCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to write the result JSON (default: stdout)")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "Also save the result to PostgreSQL")
	parseCmd.Flags().StringVar(&parseAsOf, "as-of", "", "Date that Present resolves to (YYYY-MM); defaults to today")

	if err := parseCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := logging.Component("parse")

	asOf, err := resolveAsOf(parseAsOf, time.Now())
	if err != nil {
		return err
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	result, err := parsing.ParseResumeFile(ctx, client, parseInputFile, asOf)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	log.Infow("resume parsed", "file", parseInputFile, "total_experience", result.Experience.Display)

	if cfg.Verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		printer.PrintRegistration(result.Registration)
		printer.PrintExperience(result.Experience)
	}

	if parseSave {
		if err := saveParsed(cmd, result); err != nil {
			return err
		}
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if parseOutputFile == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(parseOutputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(parseOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully parsed resume\n")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Total experience: %s\n", result.Registration.TotalExperience)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", parseOutputFile)
	return nil
}

// saveParsed persists result unless an identical resume is already stored
func saveParsed(cmd *cobra.Command, result *parsing.Result) error {
	ctx := cmd.Context()

	database, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	existing, err := database.FindResumeByHash(ctx, result.Metadata.Hash)
	if err != nil {
		return err
	}
	if existing != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Resume already saved as %s\n", existing.ID)
		return nil
	}

	saved, err := database.SaveResume(ctx, &db.ResumeCreateInput{
		Filename:     result.Metadata.Filename,
		ContentHash:  result.Metadata.Hash,
		Registration: result.Registration,
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved resume %s\n", saved.ID)
	return nil
}
