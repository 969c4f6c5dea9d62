package engine

import (
	"fmt"
	"sort"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// CHART BUILDER: Produces the dashboard's ChartConfigs from a Result
// ============================================================================
// One ChartConfig per widget. The rendering layer decides how to draw them;
// the builder only fixes data, chart type, axis labels and colors.
// ============================================================================

// Gender colors used by every gender-split chart.
var genderColors = map[string]string{
	"Female": "#FADADD",
	"Male":   "#B0E0E6",
}

// Academic impact colors.
var impactColors = map[string]string{
	"Yes": "#FFA6A6",
	"No":  "#FFFDD0",
}

// Pastel sequence for category charts.
var pastelColors = []string{
	"#FFD1DC", "#AEC6CF", "#FFB347", "#B39EB5",
	"#AAF0D1", "#ACE1AF", "#CBAACB", "#FF6961",
}

const histogramColor = "#FFDDEE"

// Chart IDs, stable across runs so the rendering layer can lay them out.
const (
	ChartAddictionVsMental = "addiction-vs-mental-health"
	ChartUsageHistogram    = "daily-usage-distribution"
	ChartAddictionByGender = "addiction-by-gender"
	ChartPlatforms         = "most-used-platforms"
	ChartSleepVsUsage      = "sleep-vs-daily-usage"
	ChartAcademicImpact    = "academic-impact-by-platform"
	ChartCorrelation       = "correlation-heatmap"
	ChartUsageByGender     = "daily-usage-by-gender"
	ChartAcademicLevels    = "academic-level-distribution"
	ChartAddictionLevels   = "addiction-level-distribution"
)

// BuildCharts produces every dashboard widget for a Result.
func BuildCharts(r *Result) []ChartConfig {
	return []ChartConfig{
		buildScatter(r.View, ChartAddictionVsMental, "Addiction Score vs Mental Health Score",
			schema.AddictedScore, schema.MentalHealth, ""),
		buildHistogram(r.UsageHistogram),
		buildGroupedCounts(r.AddictionByGender),
		buildPie(ChartPlatforms, "Most Used Social Media Platforms", r.PlatformCounts, 0),
		buildScatter(r.View, ChartSleepVsUsage, "Sleep Hours vs Daily Usage",
			schema.DailyUsage, schema.SleepHours, schema.AddictedScore),
		buildStacked(r.AcademicImpact),
		BuildHeatmap(r.Correlation, r.Theme),
		buildBox(r.UsageByGender),
		buildPie(ChartAcademicLevels, "Academic Level Distribution", distribution(r, schema.AcademicLevel), 0),
		buildPie(ChartAddictionLevels, "Addiction Level Distribution", distribution(r, schema.AddictedScore), 0.4),
	}
}

func distribution(r *Result, dimension string) FrequencyTable {
	for _, t := range r.Distributions {
		if t.Dimension == dimension {
			return t
		}
	}
	return FrequencyTable{Dimension: dimension}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

// buildScatter splits points by gender. A non-empty size measure makes it a bubble chart.
func buildScatter(view RecordView, id, title, xKey, yKey, sizeKey string) ChartConfig {
	chartType := "scatter"
	if sizeKey != "" {
		chartType = "bubble"
	}
	config := ChartConfig{
		ID:         id,
		ChartType:  chartType,
		Title:      title,
		XAxis:      LabelForDimension(xKey),
		YAxis:      LabelForDimension(yKey),
		ShowLegend: true,
		ShowGrid:   true,
	}

	groups := groupBySingle(view, schema.Gender)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	for i, g := range groups {
		points := make([]ChartPoint, 0, g.View.Len())
		for k := 0; k < g.View.Len(); k++ {
			p := ChartPoint{X: g.View.Measure(k, xKey), Y: g.View.Measure(k, yKey)}
			if sizeKey != "" {
				p.Size = g.View.Measure(k, sizeKey)
			}
			points = append(points, p)
		}
		config.Series = append(config.Series, ChartSeries{
			Name:  g.Label,
			Data:  points,
			Color: colorFor(genderColors, g.Label, i),
		})
	}
	config.Colors = seriesColors(config.Series)
	return config
}

func buildHistogram(h Histogram) ChartConfig {
	points := make([]ChartPoint, 0, len(h.Bins))
	for _, b := range h.Bins {
		points = append(points, ChartPoint{
			Label: fmt.Sprintf("%.1f–%.1f", b.Lower, b.Upper),
			Value: float64(b.Count),
			X:     (b.Lower + b.Upper) / 2,
		})
	}
	return ChartConfig{
		ID:        ChartUsageHistogram,
		ChartType: "histogram",
		Title:     "Distribution of Daily Usage (hrs)",
		XAxis:     LabelForDimension(h.Measure),
		YAxis:     "Count",
		Series:    []ChartSeries{{Name: "Students", Data: points, Color: histogramColor}},
		Colors:    []string{histogramColor},
		ShowGrid:  true,
	}
}

// buildGroupedCounts draws one bar series per column label of a contingency table.
func buildGroupedCounts(t ContingencyTable) ChartConfig {
	config := ChartConfig{
		ID:         ChartAddictionByGender,
		ChartType:  "bar",
		Title:      "Addiction Level by Gender",
		XAxis:      LabelForDimension(t.RowDimension),
		YAxis:      "Count",
		BarMode:    "group",
		ShowLegend: true,
		ShowGrid:   true,
	}
	config.Series = contingencySeries(t, genderColors)
	config.Colors = seriesColors(config.Series)
	return config
}

func buildStacked(t ContingencyTable) ChartConfig {
	config := ChartConfig{
		ID:         ChartAcademicImpact,
		ChartType:  "stacked_bar",
		Title:      "Academic Performance Impact by Platform",
		XAxis:      LabelForDimension(t.RowDimension),
		YAxis:      "Count",
		BarMode:    "stack",
		ShowLegend: true,
		ShowGrid:   true,
	}
	config.Series = contingencySeries(t, impactColors)
	config.Colors = seriesColors(config.Series)
	return config
}

func contingencySeries(t ContingencyTable, palette map[string]string) []ChartSeries {
	series := make([]ChartSeries, 0, len(t.Columns))
	for c, col := range t.Columns {
		points := make([]ChartPoint, 0, len(t.Rows))
		for _, row := range t.Rows {
			points = append(points, ChartPoint{Label: row.Label, Value: float64(row.Counts[c])})
		}
		series = append(series, ChartSeries{
			Name:  col,
			Data:  points,
			Color: colorFor(palette, col, c),
		})
	}
	return series
}

func buildPie(id, title string, t FrequencyTable, hole float64) ChartConfig {
	points := make([]ChartPoint, 0, len(t.Rows))
	for _, r := range t.Rows {
		points = append(points, ChartPoint{Label: r.Label, Value: float64(r.Count)})
	}
	return ChartConfig{
		ID:         id,
		ChartType:  "pie",
		Title:      title,
		Series:     []ChartSeries{{Name: LabelForDimension(t.Dimension), Data: points}},
		Colors:     assignColors(len(points)),
		Hole:       hole,
		ShowLegend: true,
	}
}

// BuildHeatmap lays the correlation matrix out as one series per row.
// Undefined cells are flagged rather than zero-filled.
func BuildHeatmap(m CorrelationMatrix, theme string) ChartConfig {
	config := ChartConfig{
		ID:         ChartCorrelation,
		ChartType:  "heatmap",
		Title:      "Correlation Between Key Metrics",
		ColorScale: ThemeScale(theme),
		ShowLegend: true,
	}
	for i, rowKey := range m.Measures {
		points := make([]ChartPoint, 0, len(m.Measures))
		for j, colKey := range m.Measures {
			cell := m.Cells[i][j]
			points = append(points, ChartPoint{
				Label:     colKey,
				Value:     cell.Value,
				Undefined: !cell.Defined,
			})
		}
		config.Series = append(config.Series, ChartSeries{Name: rowKey, Data: points})
	}
	return config
}

func buildBox(boxes []BoxStats) ChartConfig {
	config := ChartConfig{
		ID:         ChartUsageByGender,
		ChartType:  "box",
		Title:      "Social Media Usage by Gender",
		XAxis:      LabelForDimension(schema.DailyUsage),
		YAxis:      LabelForDimension(schema.Gender),
		ShowLegend: true,
		ShowGrid:   true,
	}
	for i, b := range boxes {
		stats := []struct {
			label string
			m     Metric
		}{{"min", b.Min}, {"q1", b.Q1}, {"median", b.Median}, {"q3", b.Q3}, {"max", b.Max}}

		points := make([]ChartPoint, 0, len(stats))
		for _, s := range stats {
			points = append(points, ChartPoint{Label: s.label, Value: s.m.Value, Undefined: !s.m.Defined})
		}
		config.Series = append(config.Series, ChartSeries{
			Name:  b.Group,
			Data:  points,
			Color: colorFor(genderColors, b.Group, i),
		})
	}
	config.Colors = seriesColors(config.Series)
	return config
}

// ============================================================================
// COLORS
// ============================================================================

// GenderColor returns the chart color for a gender label.
func GenderColor(label string, i int) string {
	return colorFor(genderColors, label, i)
}

func colorFor(palette map[string]string, label string, i int) string {
	if c, ok := palette[label]; ok {
		return c
	}
	return pastelColors[i%len(pastelColors)]
}

func seriesColors(series []ChartSeries) []string {
	colors := make([]string, len(series))
	for i, s := range series {
		colors[i] = s.Color
	}
	return colors
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = pastelColors[i%len(pastelColors)]
	}
	return colors
}
