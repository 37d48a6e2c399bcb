package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-parser/internal/schemas"
	schemafiles "github.com/jonathan/resume-parser/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a resume schema",
	RunE:  runValidate,
}

var (
	validateInputFile  string
	validateSchemaName string
	validateSchemaFile string
)

// schemaNames maps --schema values to the embedded schema files
var schemaNames = map[string]string{
	"registration":     schemafiles.Registration,
	"extracted_resume": schemafiles.ExtractedResume,
	"work_history":     schemafiles.WorkHistory,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to the JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchemaName, "schema", "registration", "Built-in schema: registration, extracted_resume or work_history")
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema-file", "", "Path to a JSON Schema file, instead of a built-in one")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateInputFile, validateSchemaName, validateSchemaFile); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", validateInputFile)
	return nil
}

// validateFile checks path against a schema file when given, otherwise against a built-in schema
func validateFile(path, schemaName, schemaFile string) error {
	if schemaFile != "" {
		return schemas.ValidateJSON(schemaFile, path)
	}

	name, ok := schemaNames[schemaName]
	if !ok {
		return fmt.Errorf("unknown schema %q", schemaName)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return schemas.Validate(name, data)
}
