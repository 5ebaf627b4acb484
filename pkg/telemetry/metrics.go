package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolution outcomes recorded by RecordResolution.
const (
	ResolutionRoot       = "root"
	ResolutionCached     = "cached"
	ResolutionRecomputed = "recomputed"
)

// Instantiation paths recorded by RecordInstance.
const (
	PathInternal = "internal"
	PathFull     = "full"
)

// Metrics provides Prometheus metrics for a weave runtime.
type Metrics struct {
	config MetricsConfig

	resolutions    *prometheus.CounterVec
	dedupeDropped  prometheus.Counter
	nodes          prometheus.Counter
	instances      *prometheus.CounterVec
	initDuration   prometheus.Histogram
	pluginsInstall prometheus.Counter
	warnings       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates a new metrics collector with the given configuration.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	namespace := cfg.Namespace
	buckets := cfg.InitBuckets
	if len(buckets) == 0 {
		buckets = prometheus.ExponentialBuckets(0.00001, 4, 10)
	}

	m := &Metrics{
		config:   cfg,
		registry: prometheus.NewRegistry(),

		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Constructor options resolutions by outcome",
			},
			[]string{"outcome"},
		),
		dedupeDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dedupe_dropped_total",
				Help:      "Accumulated field entries dropped as already inherited",
			},
		),
		nodes: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "nodes_total",
				Help:      "Configuration nodes created by extend",
			},
		),
		instances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "instances_total",
				Help:      "Component instances created by construction path",
			},
			[]string{"path"},
		),
		initDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "instance_init_seconds",
				Help:      "Instance initialization duration when performance tracing is on",
				Buckets:   buckets,
			},
		),
		pluginsInstall: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plugins_installed_total",
				Help:      "Plugins installed",
			},
		),
		warnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "warnings_total",
				Help:      "Advisory diagnostics by operation",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		m.resolutions,
		m.dedupeDropped,
		m.nodes,
		m.instances,
		m.initDuration,
		m.pluginsInstall,
		m.warnings,
	)
	return m
}

func (m *Metrics) enabled() bool {
	return m != nil && m.registry != nil
}

// Registry returns the private registry, or nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if !m.enabled() {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	if !m.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordResolution counts one options resolution.
func (m *Metrics) RecordResolution(outcome string) {
	if !m.enabled() {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

// RecordDedupeDropped counts entries removed by the dedupe pass.
func (m *Metrics) RecordDedupeDropped(n int) {
	if !m.enabled() || n <= 0 {
		return
	}
	m.dedupeDropped.Add(float64(n))
}

// RecordNode counts a node created by extend.
func (m *Metrics) RecordNode() {
	if !m.enabled() {
		return
	}
	m.nodes.Inc()
}

// RecordInstance counts an instance created through path.
func (m *Metrics) RecordInstance(path string) {
	if !m.enabled() {
		return
	}
	m.instances.WithLabelValues(path).Inc()
}

// ObserveInit records an instance initialization duration.
func (m *Metrics) ObserveInit(d time.Duration) {
	if !m.enabled() {
		return
	}
	m.initDuration.Observe(d.Seconds())
}

// RecordPluginInstalled counts an installed plugin.
func (m *Metrics) RecordPluginInstalled() {
	if !m.enabled() {
		return
	}
	m.pluginsInstall.Inc()
}

// RecordWarning counts an advisory diagnostic.
func (m *Metrics) RecordWarning(op string) {
	if !m.enabled() {
		return
	}
	m.warnings.WithLabelValues(op).Inc()
}

// ResolutionCount returns the counter for outcome, for tests and dashboards.
func (m *Metrics) ResolutionCount(outcome string) prometheus.Counter {
	if !m.enabled() {
		return nil
	}
	return m.resolutions.WithLabelValues(outcome)
}

// InstanceCount returns the counter for path.
func (m *Metrics) InstanceCount(path string) prometheus.Counter {
	if !m.enabled() {
		return nil
	}
	return m.instances.WithLabelValues(path)
}
