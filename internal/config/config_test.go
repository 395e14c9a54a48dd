package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "http://localhost:8080/router", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Import.MaxFileSizeMB)
	assert.Equal(t, 3000, cfg.Report.PollIntervalMS)
}

func TestLoadBackendURLOverride(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://catalog.internal/router")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.internal/router", cfg.Backend.BaseURL)
}
