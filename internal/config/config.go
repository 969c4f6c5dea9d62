// Package config loads socialdash settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence (later
// sources win). Command-line flags are applied on top by the caller.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spektr-org/socialdash/engine"
)

// Config holds runtime settings.
type Config struct {
	DataFile      string `yaml:"data_file"`      // survey CSV path
	Addr          string `yaml:"addr"`           // listen address for -serve
	Theme         string `yaml:"theme"`          // heatmap color theme
	HistogramBins int    `yaml:"histogram_bins"` // daily usage histogram bins
	LogLevel      string `yaml:"log_level"`      // ERROR, WARN, INFO, DEBUG
}

// Default values.
const (
	DefaultDataFile      = "Students Social Media Addiction.csv"
	DefaultAddr          = ":8080"
	DefaultHistogramBins = 10
	DefaultLogLevel      = "INFO"
)

// Environment variables.
const (
	EnvDataFile = "SOCIALDASH_DATA"
	EnvAddr     = "SOCIALDASH_ADDR"
	EnvTheme    = "SOCIALDASH_THEME"
	EnvBins     = "SOCIALDASH_BINS"
	EnvLogLevel = "LOG_LEVEL"
)

// NewConfig returns the defaults.
func NewConfig() Config {
	return Config{
		DataFile:      DefaultDataFile,
		Addr:          DefaultAddr,
		Theme:         engine.DefaultTheme,
		HistogramBins: DefaultHistogramBins,
		LogLevel:      DefaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), ./.env when present, and the environment.
func Load(path string) (Config, error) {
	cfg := NewConfig()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.merge(fileCfg)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(err, "load .env")
	}

	cfg = cfg.merge(LoadFromEnv())
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML configuration file. Unset keys stay zero.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return Config{}, errors.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}

// LoadFromEnv reads settings from environment variables. Unset variables stay zero.
func LoadFromEnv() Config {
	var cfg Config
	cfg.DataFile = os.Getenv(EnvDataFile)
	cfg.Addr = os.Getenv(EnvAddr)
	cfg.Theme = os.Getenv(EnvTheme)
	cfg.LogLevel = os.Getenv(EnvLogLevel)
	if val := os.Getenv(EnvBins); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.HistogramBins = parsed
		}
	}
	return cfg
}

// merge overlays the non-zero fields of o.
func (c Config) merge(o Config) Config {
	if o.DataFile != "" {
		c.DataFile = o.DataFile
	}
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.HistogramBins != 0 {
		c.HistogramBins = o.HistogramBins
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	return c
}

// Validate checks the configuration and normalizes the theme name.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return errors.New("data file must be set")
	}
	if c.HistogramBins <= 0 {
		return errors.Errorf("histogram bins must be positive, got %d", c.HistogramBins)
	}
	theme, err := engine.ParseTheme(c.Theme)
	if err != nil {
		return errors.Wrap(err, "invalid theme")
	}
	c.Theme = theme
	return nil
}
