package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 8, cfg.PasswordMinLen)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestMustLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("TOKEN_TTL", "45m")
	t.Setenv("PASSWORD_MIN_LEN", "12")

	cfg := MustLoad()

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 45*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.PasswordMinLen)
}
