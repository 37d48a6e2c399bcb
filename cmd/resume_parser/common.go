package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-parser/internal/db"
	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/types"
)

// resolveAsOf picks the as-of date: the flag, then the configured as_of, then now
func resolveAsOf(flag string, now time.Time) (time.Time, error) {
	if flag == "" && cfg != nil {
		flag = cfg.AsOf
	}
	return types.ParseAsOf(flag, now)
}

// newLLMClient creates the extraction client from the loaded configuration
func newLLMClient(ctx context.Context) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable (or api_key config) is required")
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

// openStore connects to PostgreSQL and makes sure the resumes table exists
func openStore(ctx context.Context) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable (or database_url config) is required")
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
