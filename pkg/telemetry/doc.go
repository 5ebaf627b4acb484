// Package telemetry provides structured logging and metrics for the weave
// runtime.
//
// Logging wraps zerolog. A runtime creates one root [Logger] and derives
// per-subsystem loggers from it:
//
//	logger, _ := telemetry.NewLogger(telemetry.DefaultLoggingConfig())
//	resolver := logger.NewComponentLogger("resolver")
//	resolver.WithField("cid", 3).Debug("options recomputed")
//
// Metrics are Prometheus collectors registered on a private registry, so
// several runtimes can coexist in one process. A disabled [Metrics] is a
// no-op and every method is safe to call on it, including on a nil pointer.
package telemetry
