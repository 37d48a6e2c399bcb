// Package pipeline runs resume parsing over many files concurrently.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/experience"
	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/logging"
	"github.com/jonathan/resume-parser/internal/parsing"
)

// DefaultConcurrency bounds in-flight model calls when none is configured
const DefaultConcurrency = 4

// Progress steps
const (
	StepIngested  = "ingested"
	StepDuplicate = "duplicate"
	StepParsed    = "parsed"
	StepSaved     = "saved"
	StepFailed    = "failed"
)

// ProgressEvent represents a progress update for one file
type ProgressEvent struct {
	Step    string `json:"step"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when batch progress occurs.
// It may be called from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// Store persists parsed resumes. *db.DB satisfies it.
type Store interface {
	FindResumeByHash(ctx context.Context, contentHash string) (*db.Resume, error)
	SaveResume(ctx context.Context, input *db.ResumeCreateInput) (*db.Resume, error)
}

// BatchOptions holds configuration for a batch run
type BatchOptions struct {
	Files       []string // Explicit files; appended to whatever Dir yields
	Dir         string
	OutDir      string // Each result is written to <OutDir>/<file>.json when set
	Concurrency int
	AsOf        time.Time
	Store       Store // Optional
	OnProgress  ProgressCallback
}

// FileResult is the outcome for one resume file
type FileResult struct {
	Path       string              `json:"path"`
	Output     string              `json:"output,omitempty"`
	ResumeID   string              `json:"resume_id,omitempty"`
	FullName   string              `json:"full_name,omitempty"`
	Duplicate  bool                `json:"duplicate,omitempty"`
	Experience *experience.Summary `json:"experience,omitempty"`
	Error      string              `json:"error,omitempty"`
}

// BatchReport summarizes a batch run. Results keep input order.
type BatchReport struct {
	Results   []FileResult `json:"results"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *BatchOptions, step, path, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Path:    path,
			Message: message,
			Content: content,
		})
	}
}

// CollectFiles lists the supported resume files directly inside dir, sorted by name
func CollectFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !ingestion.IsSupported(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputPath returns where the result for path is written inside outDir.
// The source extension is kept so resume.pdf and resume.docx do not collide.
func OutputPath(outDir, path string) string {
	return filepath.Join(outDir, filepath.Base(path)+".json")
}

// RunBatch parses every file concurrently. A file that fails is recorded in
// its FileResult and does not stop the others; only context cancellation
// aborts the run.
func RunBatch(ctx context.Context, client llm.Client, opts BatchOptions) (*BatchReport, error) {
	log := logging.Component("pipeline")

	files := append([]string(nil), opts.Files...)
	if opts.Dir != "" {
		found, err := CollectFiles(opts.Dir)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported resume files found (supported: %s)", strings.Join(ingestion.SupportedExtensions, ", "))
	}

	if opts.OutDir != "" {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if opts.AsOf.IsZero() {
		opts.AsOf = time.Now()
	}

	log.Infow("batch starting", "files", len(files), "concurrency", concurrency, "persistence", opts.Store != nil)

	results := make([]FileResult, len(files))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = processFile(gCtx, client, &opts, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	report := &BatchReport{Results: results}
	for _, r := range results {
		if r.Error != "" {
			report.Failed++
		} else {
			report.Succeeded++
		}
	}
	log.Infow("batch finished", "succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}

// processFile runs one file through ingestion, extraction and persistence
func processFile(ctx context.Context, client llm.Client, opts *BatchOptions, path string) FileResult {
	log := logging.Component("pipeline")
	result := FileResult{Path: path}

	fail := func(err error) FileResult {
		result.Error = err.Error()
		log.Warnw("resume failed", "path", path, "error", err)
		emitProgress(opts, StepFailed, path, err.Error(), nil)
		return result
	}

	text, metadata, err := ingestion.IngestFromFile(path)
	if err != nil {
		return fail(err)
	}
	emitProgress(opts, StepIngested, path, fmt.Sprintf("Extracted %d characters", metadata.Chars), metadata)

	if opts.Store != nil && text != "" {
		existing, err := opts.Store.FindResumeByHash(ctx, metadata.Hash)
		if err != nil {
			return fail(fmt.Errorf("failed to check for duplicate: %w", err))
		}
		if existing != nil {
			result.Duplicate = true
			result.ResumeID = existing.ID.String()
			result.FullName = existing.FullName
			emitProgress(opts, StepDuplicate, path, "Already saved as "+result.ResumeID, existing)
			return result
		}
	}

	parsed, err := parsing.ParseResume(ctx, client, text, opts.AsOf)
	if err != nil {
		return fail(err)
	}
	parsed.Metadata = metadata
	result.FullName = parsed.Registration.PersonalInfo.FullName
	result.Experience = &parsed.Experience
	emitProgress(opts, StepParsed, path, "Total experience: "+parsed.Experience.Display, parsed.Registration)

	if opts.OutDir != "" {
		out := OutputPath(opts.OutDir, path)
		if err := WriteJSON(out, parsed); err != nil {
			return fail(err)
		}
		result.Output = out
	}

	if opts.Store != nil {
		saved, err := opts.Store.SaveResume(ctx, &db.ResumeCreateInput{
			Filename:     metadata.Filename,
			ContentHash:  metadata.Hash,
			Registration: parsed.Registration,
		})
		if err != nil {
			return fail(fmt.Errorf("failed to save resume: %w", err))
		}
		result.ResumeID = saved.ID.String()
		emitProgress(opts, StepSaved, path, "Saved as "+result.ResumeID, nil)
	}

	return result
}

// WriteJSON writes v to path as indented JSON
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
