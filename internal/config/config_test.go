package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "DATABASE_URL", "JWT_SECRET", "RESUME_PORT", "RESUME_API_KEY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_JSONFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.json", `{
		"port": 9090,
		"database_url": "postgres://localhost/resumes",
		"token_ttl": "2h",
		"rate_limit": {"burst": 5},
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond, "unset nested keys keep defaults")
	assert.True(t, cfg.Verbose)
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "config.toml", `
port = 7070
as_of = "2024-01"

[rate_limit]
enabled = false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "2024-01", cfg.AsOf)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESUME_PORT", "6060")
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("RESUME_RATE_LIMIT_BURST", "3")
	path := writeConfig(t, "config.yaml", "port: 9090\napi_key: from-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6060, cfg.Port, "environment wins over file")
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{ invalid json }`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "port"},
		{"negative upload", func(c *Config) { c.MaxUploadMB = -1 }, "max_upload_mb"},
		{"negative concurrency", func(c *Config) { c.Concurrency = -2 }, "concurrency"},
		{"negative burst", func(c *Config) { c.RateLimit.Burst = -1 }, "rate_limit"},
		{"bad as_of", func(c *Config) { c.AsOf = "January 2024" }, "as_of"},
		{"good as_of", func(c *Config) { c.AsOf = "2024-01" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{
		Port:        9000,
		DatabaseURL: "postgres://custom",
	}
	defaults := Default()
	defaults.APIKey = "default-key"
	defaults.DatabaseURL = "postgres://default"

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, 9000, merged.Port, "set values win")
	assert.Equal(t, "postgres://custom", merged.DatabaseURL)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, 4, merged.Concurrency)
	assert.Equal(t, 24*time.Hour, merged.TokenTTL)
	assert.Equal(t, 20, merged.RateLimit.Burst)

	// The receiver is not modified
	assert.Empty(t, cfg.APIKey)
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := Config{MaxUploadMB: 10}
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes())
}
