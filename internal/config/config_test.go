package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/conduit/internal/config"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/engine/orchestrator"
)

func TestLoadFrom_Defaults(t *testing.T) {
	s, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "config/pipeline_config.yaml", s.ConfigPath)
	assert.Equal(t, time.Second, s.TickInterval)
	assert.Equal(t, 10, s.IdleTimeout)
	assert.Equal(t, "launch", s.Mode)
	assert.True(t, s.DetectCycles)
	assert.False(t, s.GlobInputs)
	assert.False(t, s.JSONLogs())
	assert.False(t, s.Debug)
	assert.Empty(t, s.MetricsFile)
}

func TestLoadFrom_Overrides(t *testing.T) {
	s, err := config.LoadFrom(map[string]string{
		"CONDUIT_CONFIG":        "pipelines/geo.yaml",
		"CONDUIT_TICK_INTERVAL": "250ms",
		"CONDUIT_IDLE_TIMEOUT":  "3",
		"CONDUIT_MODE":          "completion",
		"CONDUIT_DETECT_CYCLES": "false",
		"CONDUIT_GLOB_INPUTS":   "true",
		"CONDUIT_LOG_FORMAT":    "JSON",
		"CONDUIT_DEBUG":         "true",
		"CONDUIT_METRICS_FILE":  "/tmp/conduit.prom",
	})
	require.NoError(t, err)

	assert.Equal(t, "pipelines/geo.yaml", s.ConfigPath)
	assert.Equal(t, 250*time.Millisecond, s.TickInterval)
	assert.False(t, s.DetectCycles)
	assert.True(t, s.GlobInputs)
	assert.True(t, s.JSONLogs())
	assert.True(t, s.Debug)
	assert.Equal(t, "/tmp/conduit.prom", s.MetricsFile)

	opts, err := s.OrchestratorOptions()
	require.NoError(t, err)
	assert.Equal(t, orchestrator.Options{
		TickInterval: 250 * time.Millisecond,
		IdleTimeout:  3,
		Mode:         orchestrator.ModeCompletion,
	}, opts)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unparseable interval", env: map[string]string{"CONDUIT_TICK_INTERVAL": "soon"}},
		{name: "zero interval", env: map[string]string{"CONDUIT_TICK_INTERVAL": "0s"}},
		{name: "negative idle timeout", env: map[string]string{"CONDUIT_IDLE_TIMEOUT": "-1"}},
		{name: "unknown mode", env: map[string]string{"CONDUIT_MODE": "eager"}},
		{name: "unknown log format", env: map[string]string{"CONDUIT_LOG_FORMAT": "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom(tt.env)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		})
	}
}
