package engine

// ============================================================================
// ENGINE OPTIONS: Functional options for Apply()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Theme         string // heatmap color theme
	HistogramBins int    // bins for the daily usage histogram
	Charts        bool   // build ChartConfigs
}

// WithTheme selects the heatmap color theme.
func WithTheme(theme string) Option {
	return func(c *config) {
		c.Theme = theme
	}
}

// WithHistogramBins sets the number of daily usage histogram bins.
func WithHistogramBins(bins int) Option {
	return func(c *config) {
		if bins > 0 {
			c.HistogramBins = bins
		}
	}
}

// WithoutCharts skips chart construction (tables and KPIs only).
func WithoutCharts() Option {
	return func(c *config) {
		c.Charts = false
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Theme:         DefaultTheme,
		HistogramBins: 10,
		Charts:        true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
