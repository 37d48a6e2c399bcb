package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-parser/internal/observability"
	"github.com/jonathan/resume-parser/internal/pipeline"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every resume in a directory",
	Long:  "Runs parse over each supported file in a directory concurrently, writing one JSON result per file.",
	RunE:  runBatch,
}

var (
	batchDir         string
	batchOutDir      string
	batchConcurrency int
	batchSave        bool
	batchAsOf        string
)

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "Directory of resume files (required)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "Directory to write <file>.json results to")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", pipeline.DefaultConcurrency, "Number of resumes parsed at once")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Also save results to PostgreSQL")
	batchCmd.Flags().StringVar(&batchAsOf, "as-of", "", "Date that Present resolves to (YYYY-MM); defaults to today")

	if err := batchCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	asOf, err := resolveAsOf(batchAsOf, time.Now())
	if err != nil {
		return err
	}

	concurrency := batchConcurrency
	if !cmd.Flags().Changed("concurrency") && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	opts := pipeline.BatchOptions{
		Dir:         batchDir,
		OutDir:      batchOutDir,
		Concurrency: concurrency,
		AsOf:        asOf,
	}
	if cfg.Verbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] %s: %s\n", e.Step, e.Path, e.Message)
		}
	}

	if batchSave {
		database, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database
	}

	report, err := pipeline.RunBatch(ctx, client, opts)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintBatchReport(report)
	if report.Succeeded == 0 {
		return fmt.Errorf("all %d resumes failed", report.Failed)
	}
	return nil
}
