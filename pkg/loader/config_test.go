package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/weave/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "weave.yaml", `
production: true
ignored_elements: [x-chart]
logging:
  level: debug
  format: console
metrics:
  namespace: app
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Production)
	assert.True(t, cfg.DevTools, "unset fields keep their defaults")
	assert.Equal(t, []string{"x-chart"}, cfg.IgnoredElements)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, "app", cfg.Metrics.Namespace)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NotNil(t, cfg.OptionMergeStrategies)
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, "weave.toml", `
silent = true
performance = true

[logging]
level = "warn"

[metrics]
enabled = false
init_buckets = [0.001, 0.01]
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Silent)
	assert.True(t, cfg.Performance)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, []float64{0.001, 0.01}, cfg.Metrics.InitBuckets)
}

func TestLoadConfigEmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "weave.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name, file, content, want string
	}{
		{"unknown yaml field", "weave.yaml", "colour: red\n", "failed to parse config"},
		{"unknown toml field", "weave.toml", "colour = \"red\"\n", "unknown config field"},
		{"invalid level", "weave.yaml", "logging:\n  level: loud\n", "invalid config"},
		{"invalid namespace", "weave.toml", "[metrics]\nnamespace = \"my-app\"\n", "invalid config"},
		{"negative bucket", "weave.yaml", "metrics:\n  init_buckets: [-1]\n", "invalid config"},
		{"unsupported format", "weave.json", "{}", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var werr *errors.WeaveError
			require.ErrorAs(t, err, &werr)
			assert.Equal(t, errors.KindConfig, werr.Kind)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOptionalConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptionalConfig(dir)
	require.NoError(t, err)
	assert.False(t, cfg.Production)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "weave.toml"), []byte("production = true\n"), 0o644))
	cfg, err = LoadOptionalConfig(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Production)
}
