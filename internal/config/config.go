// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RESUME_PORT.
const EnvPrefix = "RESUME"

// Config represents the application configuration.
// Values come from defaults, then an optional JSON/TOML/YAML file, then the environment.
type Config struct {
	// LLM
	APIKey string `mapstructure:"api_key" json:"api_key,omitempty"` // Gemini API key
	Model  string `mapstructure:"model" json:"model,omitempty"`     // Overrides the standard-tier model

	// Storage
	DatabaseURL string `mapstructure:"database_url" json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	Port         int           `mapstructure:"port" json:"port,omitempty"`
	CORSOrigin   string        `mapstructure:"cors_origin" json:"cors_origin,omitempty"`
	MaxUploadMB  int           `mapstructure:"max_upload_mb" json:"max_upload_mb,omitempty"`
	JWTSecret    string        `mapstructure:"jwt_secret" json:"jwt_secret,omitempty"` // Empty disables auth
	TokenTTL     time.Duration `mapstructure:"token_ttl" json:"token_ttl,omitempty"`
	RateLimit    RateLimit     `mapstructure:"rate_limit" json:"rate_limit"`
	ShutdownWait time.Duration `mapstructure:"shutdown_wait" json:"shutdown_wait,omitempty"`

	// Batch
	Concurrency int `mapstructure:"concurrency" json:"concurrency,omitempty"`

	// Behavior
	AsOf    string `mapstructure:"as_of" json:"as_of,omitempty"` // Fixed "now" for experience, YYYY-MM
	Verbose bool   `mapstructure:"verbose" json:"verbose,omitempty"`
	LogJSON bool   `mapstructure:"log_json" json:"log_json,omitempty"`
}

// RateLimit configures per-client request limits
type RateLimit struct {
	Enabled           bool    `mapstructure:"enabled" json:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" json:"requests_per_second"`
	Burst             int     `mapstructure:"burst" json:"burst"`
	UploadsPerMinute  float64 `mapstructure:"uploads_per_minute" json:"uploads_per_minute"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Port:         8080,
		CORSOrigin:   "*",
		MaxUploadMB:  10,
		TokenTTL:     24 * time.Hour,
		ShutdownWait: 30 * time.Second,
		Concurrency:  4,
		RateLimit: RateLimit{
			Enabled:           true,
			RequestsPerSecond: 10,
			Burst:             20,
			UploadsPerMinute:  10,
		},
	}
}

// SetDefaults registers the built-in configuration with v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("model", d.Model)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("port", d.Port)
	v.SetDefault("cors_origin", d.CORSOrigin)
	v.SetDefault("max_upload_mb", d.MaxUploadMB)
	v.SetDefault("jwt_secret", d.JWTSecret)
	v.SetDefault("token_ttl", d.TokenTTL)
	v.SetDefault("shutdown_wait", d.ShutdownWait)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("as_of", d.AsOf)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("log_json", d.LogJSON)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.requests_per_second", d.RateLimit.RequestsPerSecond)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("rate_limit.uploads_per_minute", d.RateLimit.UploadsPerMinute)
}

// bindSensitiveEnvVars lets the conventional unprefixed variables work too
func bindSensitiveEnvVars(v *viper.Viper) {
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("jwt_secret", EnvPrefix+"_JWT_SECRET", "JWT_SECRET")
}

// New returns a viper instance with defaults and environment bindings applied
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindSensitiveEnvVars(v)
	SetDefaults(v)
	return v
}

// Load builds the configuration. An empty path skips the config file.
// The file format follows its extension (.json, .toml, .yaml).
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Missing credentials are not errors here; commands that need them check for themselves.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.MaxUploadMB < 0 {
		return fmt.Errorf("config error: 'max_upload_mb' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("config error: 'token_ttl' must be non-negative")
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 || c.RateLimit.UploadsPerMinute < 0 {
		return fmt.Errorf("config error: 'rate_limit' values must be non-negative")
	}
	if c.AsOf != "" {
		if _, err := time.Parse("2006-01", c.AsOf); err != nil {
			return fmt.Errorf("config error: 'as_of' must be YYYY-MM, got %q", c.AsOf)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bools are left alone since unset and false look the same.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CORSOrigin == "" {
		result.CORSOrigin = defaults.CORSOrigin
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.AsOf == "" {
		result.AsOf = defaults.AsOf
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadMB == 0 {
		result.MaxUploadMB = defaults.MaxUploadMB
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.TokenTTL == 0 {
		result.TokenTTL = defaults.TokenTTL
	}
	if result.ShutdownWait == 0 {
		result.ShutdownWait = defaults.ShutdownWait
	}

	if result.RateLimit.RequestsPerSecond == 0 {
		result.RateLimit.RequestsPerSecond = defaults.RateLimit.RequestsPerSecond
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}
	if result.RateLimit.UploadsPerMinute == 0 {
		result.RateLimit.UploadsPerMinute = defaults.RateLimit.UploadsPerMinute
	}

	return result
}

// MaxUploadBytes returns the upload size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
