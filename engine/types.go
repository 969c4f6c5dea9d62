package engine

import (
	"encoding/json"
	"math"
	"strconv"
)

// ============================================================================
// SOCIALDASH ENGINE TYPES
// ============================================================================
// Row is the typed survey record. The engine reads rows through RecordView
// (see view.go) so filtering and grouping never copy data.
// ============================================================================

// ============================================================================
// ROW: One survey respondent
// ============================================================================

// Row is a single survey respondent.
type Row struct {
	StudentID          int     `json:"studentId,omitempty"`
	Age                int     `json:"age,omitempty"`
	Gender             string  `json:"gender"`
	AcademicLevel      string  `json:"academicLevel"`
	Country            string  `json:"country,omitempty"`
	DailyUsageHours    float64 `json:"avgDailyUsageHours"`
	Platform           string  `json:"mostUsedPlatform"`
	AcademicImpact     string  `json:"affectsAcademicPerformance"`
	SleepHours         float64 `json:"sleepHoursPerNight"`
	MentalHealthScore  float64 `json:"mentalHealthScore"`
	RelationshipStatus string  `json:"relationshipStatus"`
	Conflicts          float64 `json:"conflictsOverSocialMedia"`
	AddictedScore      float64 `json:"addictedScore"`
}

// ============================================================================
// SELECTION: The three dashboard filters
// ============================================================================

// Selection holds the allowed labels for each filter dimension.
// A nil or empty set selects nothing; there is no implicit "select all".
type Selection struct {
	Genders  []string `json:"genders"`
	Levels   []string `json:"levels"`
	Statuses []string `json:"statuses"`
}

// ============================================================================
// METRIC: A scalar that may be undefined
// ============================================================================

// Metric is a computed scalar that distinguishes "zero" from "no data".
// Undefined metrics encode as JSON null.
type Metric struct {
	Value   float64
	Defined bool
}

// Undefined is the metric for statistics with insufficient data.
var Undefined = Metric{}

// Defined wraps a value known to be meaningful.
func Defined(v float64) Metric { return Metric{Value: v, Defined: true} }

// MetricOf wraps a raw float, mapping NaN and ±Inf to Undefined.
func MetricOf(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return Defined(v)
}

// Float returns the value, or NaN when undefined.
func (m Metric) Float() float64 {
	if !m.Defined {
		return math.NaN()
	}
	return m.Value
}

// Format renders the metric with the given precision, or "undefined".
func (m Metric) Format(decimals int) string {
	if !m.Defined {
		return "undefined"
	}
	return strconv.FormatFloat(m.Value, 'f', decimals, 64)
}

// MarshalJSON implements json.Marshaler.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}

// ============================================================================
// RESULT: Render-ready output of one pipeline run
// ============================================================================

// KPIs are the four headline numbers.
type KPIs struct {
	AddictionScore Metric `json:"addictionScore"`
	DailyUsage     Metric `json:"dailyUsageHours"`
	MentalHealth   Metric `json:"mentalHealthScore"`
	TotalStudents  Metric `json:"totalStudents"`
}

// Result is the engine's render-ready output.
type Result struct {
	Success   bool      `json:"success"`
	Empty     bool      `json:"empty"`
	Reply     string    `json:"reply"`
	Total     int       `json:"datasetRows"`
	Matched   int       `json:"matchedRows"`
	Selection Selection `json:"selection"`
	Theme     string    `json:"theme"`

	KPIs KPIs `json:"kpis"`

	PlatformCounts    FrequencyTable    `json:"platformCounts"`
	Distributions     []FrequencyTable  `json:"distributions"`
	AcademicImpact    ContingencyTable  `json:"academicImpact"`
	AddictionByGender ContingencyTable  `json:"addictionByGender"`
	Correlation       CorrelationMatrix `json:"correlation"`
	UsageHistogram    Histogram         `json:"usageHistogram"`
	UsageByGender     []BoxStats        `json:"usageByGender"`
	Charts            []ChartConfig     `json:"charts,omitempty"`
	Errors            []string          `json:"errors,omitempty"`

	// View is the filtered row set; the rendering layer reads rows through it.
	View RecordView `json:"-"`
}

// ============================================================================
// DERIVED TABLES
// ============================================================================

// Frequency is one label and how many rows carry it.
type Frequency struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FrequencyTable counts rows per label of one dimension, most frequent first.
type FrequencyTable struct {
	Dimension string      `json:"dimension"`
	Rows      []Frequency `json:"rows"`
}

// Total returns the sum of all counts.
func (t FrequencyTable) Total() int {
	n := 0
	for _, r := range t.Rows {
		n += r.Count
	}
	return n
}

// ContingencyRow is one row label and its count per column label.
type ContingencyRow struct {
	Label  string `json:"label"`
	Counts []int  `json:"counts"`
}

// ContingencyTable is a zero-filled two-way count of co-occurring labels.
type ContingencyTable struct {
	RowDimension    string           `json:"rowDimension"`
	ColumnDimension string           `json:"columnDimension"`
	Columns         []string         `json:"columns"`
	Rows            []ContingencyRow `json:"rows"`
}

// Total returns the sum of all cells.
func (t ContingencyTable) Total() int {
	n := 0
	for _, r := range t.Rows {
		for _, c := range r.Counts {
			n += c
		}
	}
	return n
}

// Count returns the cell for a row/column label pair (0 when absent).
func (t ContingencyTable) Count(row, column string) int {
	col := -1
	for i, c := range t.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return 0
	}
	for _, r := range t.Rows {
		if r.Label == row {
			return r.Counts[col]
		}
	}
	return 0
}

// CorrelationMatrix holds pairwise Pearson coefficients, rounded to 2 dp.
type CorrelationMatrix struct {
	Measures []string   `json:"measures"`
	Cells    [][]Metric `json:"cells"`
}

// At returns the coefficient for measures a and b.
func (m CorrelationMatrix) At(a, b string) Metric {
	i, j := indexOf(m.Measures, a), indexOf(m.Measures, b)
	if i < 0 || j < 0 {
		return Undefined
	}
	return m.Cells[i][j]
}

// Bin is one half-open histogram interval [Lower, Upper).
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is an equal-width binning of a measure.
type Histogram struct {
	Measure string `json:"measure"`
	Bins    []Bin  `json:"bins"`
}

// BoxStats summarizes a measure within one group.
type BoxStats struct {
	Group  string `json:"group"`
	Count  int    `json:"count"`
	Min    Metric `json:"min"`
	Q1     Metric `json:"q1"`
	Median Metric `json:"median"`
	Q3     Metric `json:"q3"`
	Max    Metric `json:"max"`
}

// ============================================================================
// GROUP: Intermediate computation result
// ============================================================================

// Group represents a grouped result.
type Group struct {
	Key       string     `json:"key"`
	Label     string     `json:"label"`
	Value     float64    `json:"value"`
	Count     int        `json:"count"`
	SubGroups []Group    `json:"subGroups,omitempty"`
	View      RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render one dashboard widget.
type ChartConfig struct {
	ID         string        `json:"id"`
	ChartType  string        `json:"chartType"` // "scatter", "bubble", "histogram", "bar", "stacked_bar", "pie", "heatmap", "box"
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ColorScale []string      `json:"colorScale,omitempty"` // heatmap only
	BarMode    string        `json:"barMode,omitempty"`    // "group", "stack"
	Hole       float64       `json:"hole,omitempty"`       // donut charts
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. Category charts use Label/Value,
// scatter charts use X/Y (and Size for bubbles).
type ChartPoint struct {
	Label     string  `json:"label,omitempty"`
	Value     float64 `json:"value"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Undefined bool    `json:"undefined,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

func indexOf(items []string, s string) int {
	for i, it := range items {
		if it == s {
			return i
		}
	}
	return -1
}
