package weave

import (
	"github.com/go-drift/weave/pkg/errors"
	"github.com/go-drift/weave/pkg/options"
	"github.com/go-drift/weave/pkg/telemetry"
)

// Config holds the process-wide settings of a Runtime. A Runtime owns one
// Config for its whole life: set individual fields on the pointer returned
// by Runtime.Config instead of replacing it.
type Config struct {
	// Silent suppresses advisory warnings.
	Silent bool `yaml:"silent" toml:"silent"`
	// Production disables development diagnostics and performance timing.
	Production bool `yaml:"production" toml:"production"`
	// Performance times instance initialization in development mode.
	Performance bool `yaml:"performance" toml:"performance"`
	// DevTools allows inspection tooling to attach.
	DevTools bool `yaml:"devtools" toml:"devtools"`
	// IgnoredElements lists custom tags that are not components.
	IgnoredElements []string `yaml:"ignored_elements" toml:"ignored_elements" validate:"dive,required"`

	// OptionMergeStrategies overrides the merge strategy of individual
	// fields. It is consulted on every merge, so entries added after the
	// Runtime was created take effect immediately.
	OptionMergeStrategies options.Strategies `yaml:"-" toml:"-"`
	// WarnHandler receives advisory warnings instead of the global
	// error handler. It is called with no runtime lock held and may call
	// back into the Runtime and its definitions.
	WarnHandler func(w *errors.Warning) `yaml:"-" toml:"-"`

	Logging telemetry.LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics telemetry.MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() *Config {
	return &Config{
		DevTools:              true,
		OptionMergeStrategies: options.Strategies{},
		Logging:               telemetry.DefaultLoggingConfig(),
		Metrics:               telemetry.DefaultMetricsConfig(),
	}
}

// strategyTable reads the user overrides from the live Config and falls
// back to the default table.
type strategyTable struct {
	cfg      *Config
	defaults options.Strategies
}

func (t strategyTable) Strategy(key string) options.Strategy {
	if fn, ok := t.cfg.OptionMergeStrategies[key]; ok && fn != nil {
		return fn
	}
	return t.defaults.Strategy(key)
}
