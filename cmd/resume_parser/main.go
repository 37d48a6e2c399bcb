// Package main provides the resume_parser CLI: experience totals, LLM resume parsing, batch runs and the REST server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/resume-parser/internal/config"
	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logJSON    bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "resume_parser",
	Short: "Resume parsing and experience calculation",
	Long: "resume_parser extracts structured fields from resume files with an LLM, computes total " +
		"non-overlapping work experience, and serves both over a REST API.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logging.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON, TOML or YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output and debug logs")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
}

// loadConfig reads the config file and environment, applies global flags and sets up logging
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		loaded.Verbose = verbose
	}
	if flags.Changed("log-json") {
		loaded.LogJSON = logJSON
	}

	if err := loaded.Validate(); err != nil {
		return err
	}
	if err := logging.Initialize(loaded.LogJSON, loaded.Verbose); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg = loaded
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
