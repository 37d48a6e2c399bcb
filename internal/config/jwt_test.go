package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_DisabledWithoutSecret(t *testing.T) {
	cfg := Default()

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Nil(t, jwtCfg)
}

func TestJWT_DefaultTTL(t *testing.T) {
	cfg := Config{JWTSecret: "0123456789abcdef0123"}

	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	require.NotNil(t, jwtCfg)
	assert.Equal(t, "0123456789abcdef0123", jwtCfg.Secret)
	assert.Equal(t, 24*time.Hour, jwtCfg.TTL)
}

func TestJWT_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"short secret", Config{JWTSecret: "short", TokenTTL: time.Hour}, "at least 16 characters"},
		{"tiny ttl", Config{JWTSecret: "0123456789abcdef", TokenTTL: time.Second}, "at least 1 minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.JWT()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
