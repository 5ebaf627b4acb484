package telemetry

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level sets the minimum log level (trace, debug, info, warn, error).
	Level string `yaml:"level" toml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`

	// Format specifies the log format (console, json).
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=console json"`

	// Output specifies where logs are written (stdout, stderr, file path).
	Output string `yaml:"output" toml:"output"`

	// EnableCaller adds file:line caller information to logs.
	EnableCaller bool `yaml:"enable_caller" toml:"enable_caller"`
}

// MetricsConfig configures metrics collection.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Namespace is the metrics namespace prefix.
	Namespace string `yaml:"namespace" toml:"namespace" validate:"omitempty,alphanum"`

	// InitBuckets are the instance initialization latency buckets in seconds.
	InitBuckets []float64 `yaml:"init_buckets" toml:"init_buckets" validate:"omitempty,dive,gt=0"`
}

// DefaultLoggingConfig returns JSON logging to stderr at info level.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stderr",
	}
}

// DefaultMetricsConfig returns an enabled metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "weave",
	}
}
