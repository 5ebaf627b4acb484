package telemetry

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsDisabledIsNoop(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	assert.NotPanics(t, func() {
		m.RecordResolution(ResolutionCached)
		m.RecordDedupeDropped(2)
		m.RecordNode()
		m.RecordInstance(PathFull)
		m.ObserveInit(time.Millisecond)
		m.RecordPluginInstalled()
		m.RecordWarning("weave.Use")
	})
	assert.Nil(t, m.Registry())
	assert.Nil(t, m.ResolutionCount(ResolutionCached))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordNode() })
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(DefaultMetricsConfig())
	m.RecordResolution(ResolutionRecomputed)
	m.RecordResolution(ResolutionRecomputed)
	m.RecordInstance(PathInternal)
	m.RecordDedupeDropped(0)
	m.RecordDedupeDropped(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ResolutionCount(ResolutionRecomputed)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ResolutionCount(ResolutionCached)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InstanceCount(PathInternal)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.dedupeDropped))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics(DefaultMetricsConfig())
	m.RecordNode()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "weave_nodes_total 1"))

	rec = httptest.NewRecorder()
	NewMetrics(MetricsConfig{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
