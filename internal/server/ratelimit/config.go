package ratelimit

import (
	"math"
	"net/http"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration from per-second request and per-minute upload rates.
func NewConfig(enabled bool, requestsPerSecond float64, burst int, uploadsPerMinute float64) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    int(math.Round(requestsPerSecond * 60)),
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(int(math.Round(uploadsPerMinute))),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
// Uploads call the LLM, so they get their own, stricter bucket.
func DefaultEndpointConfigs(uploadsPerMinute int) []EndpointConfig {
	if uploadsPerMinute <= 0 {
		uploadsPerMinute = 10
	}
	return []EndpointConfig{
		{Path: "/resumes", Method: http.MethodPost, Limit: uploadsPerMinute, Window: time.Minute, Burst: 2},
		{Path: "/resumes/", Method: http.MethodPut, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/resumes/", Method: http.MethodDelete, Limit: 60, Window: time.Minute, Burst: 10},
	}
}
