package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvDataFile, EnvAddr, EnvTheme, EnvBins, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
	assert.Equal(t, "purples", cfg.Theme)
	assert.Equal(t, 10, cfg.HistogramBins)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "socialdash.yaml", `
data_file: /data/survey.csv
addr: ":9090"
theme: Viridis
histogram_bins: 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/survey.csv", cfg.DataFile)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "viridis", cfg.Theme)
	assert.Equal(t, 20, cfg.HistogramBins)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)

	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvBins, "12")
	t.Setenv(EnvLogLevel, "DEBUG")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 12, cfg.HistogramBins)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "/data/survey.csv", cfg.DataFile)
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeFile(t, "socialdash.toml", `theme = "blues"`))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = Load(writeFile(t, "bad.yaml", "theme: [unclosed"))
	assert.ErrorContains(t, err, "parsing config file")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config file")

	t.Setenv(EnvTheme, "sepia")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid theme")
}

func TestValidate(t *testing.T) {
	cfg := NewConfig()
	cfg.HistogramBins = -1
	assert.ErrorContains(t, cfg.Validate(), "histogram bins must be positive")

	cfg = NewConfig()
	cfg.DataFile = ""
	assert.EqualError(t, cfg.Validate(), "data file must be set")

	cfg = NewConfig()
	cfg.Theme = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "purples", cfg.Theme)
}
