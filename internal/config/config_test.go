package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CITYSAFE_API_URL", "")
	t.Setenv("CITYSAFE_HTTP_TIMEOUT", "")
	t.Setenv("CITYSAFE_STATE_DIR", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CITYSAFE_API_URL", "https://api.example.com/api")
	t.Setenv("CITYSAFE_HTTP_TIMEOUT", "30s")
	t.Setenv("CITYSAFE_STATE_DIR", "/tmp/citysafe-test")

	cfg := Load()
	assert.Equal(t, "https://api.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/citysafe-test", cfg.StateDir)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("CITYSAFE_HTTP_TIMEOUT", "soon")
	cfg := Load()
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
}
