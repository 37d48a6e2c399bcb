package config

import (
	"fmt"
	"time"
)

// minSecretLen is the shortest accepted HS256 signing secret.
const minSecretLen = 16

// JWTConfig holds configuration for API token generation and validation.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// JWT returns the token configuration, or nil when no secret is configured and auth is off.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.JWTSecret == "" {
		return nil, nil
	}

	cfg := &JWTConfig{Secret: c.JWTSecret, TTL: c.TokenTTL}
	if cfg.TTL == 0 {
		cfg.TTL = Default().TokenTTL
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < minSecretLen {
		return fmt.Errorf("jwt_secret must be at least %d characters", minSecretLen)
	}
	if c.TTL < time.Minute {
		return fmt.Errorf("token_ttl must be at least 1 minute, got: %s", c.TTL)
	}
	return nil
}
