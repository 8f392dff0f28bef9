package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Settings holds the runtime settings of a conduit invocation.
// CLI flags override the values read from the environment.
type Settings struct {
	ConfigPath   string        `env:"CONDUIT_CONFIG" envDefault:"config/pipeline_config.yaml"`
	TickInterval time.Duration `env:"CONDUIT_TICK_INTERVAL" envDefault:"1s"`
	IdleTimeout  int           `env:"CONDUIT_IDLE_TIMEOUT" envDefault:"10"`
	Mode         string        `env:"CONDUIT_MODE" envDefault:"launch"`
	DetectCycles bool          `env:"CONDUIT_DETECT_CYCLES" envDefault:"true"`
	GlobInputs   bool          `env:"CONDUIT_GLOB_INPUTS" envDefault:"false"`
	LogFormat    string        `env:"CONDUIT_LOG_FORMAT" envDefault:"text"`
	Debug        bool          `env:"CONDUIT_DEBUG" envDefault:"false"`
	MetricsFile  string        `env:"CONDUIT_METRICS_FILE"`
}

// Load reads settings from the process environment.
func Load() (*Settings, error) {
	return LoadFrom(nil)
}

// LoadFrom reads settings from the given environment. A nil map reads the process environment.
func LoadFrom(environ map[string]string) (*Settings, error) {
	s := &Settings{}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(s, opts); err != nil {
		return nil, zerr.Wrap(domain.ErrInvalidSettings, err.Error())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.TickInterval <= 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "tick interval must be positive"),
			"tick_interval", s.TickInterval.String())
	}
	if s.IdleTimeout <= 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "idle timeout must be positive"),
			"idle_timeout", s.IdleTimeout)
	}
	if _, err := orchestrator.ParseMode(s.Mode); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case LogFormatText, LogFormatJSON:
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "unknown log format"), "log_format", s.LogFormat)
	}
	return nil
}

// JSONLogs reports whether logs should be written as JSON.
func (s *Settings) JSONLogs() bool {
	return strings.EqualFold(s.LogFormat, LogFormatJSON)
}

// OrchestratorOptions converts the settings into run options.
func (s *Settings) OrchestratorOptions() (orchestrator.Options, error) {
	mode, err := orchestrator.ParseMode(s.Mode)
	if err != nil {
		return orchestrator.Options{}, err
	}
	return orchestrator.Options{
		TickInterval: s.TickInterval,
		IdleTimeout:  s.IdleTimeout,
		Mode:         mode,
	}, nil
}
