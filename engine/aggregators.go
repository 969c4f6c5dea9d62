package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// AGGREGATORS: Grouping, Counting and Summary Statistics via RecordView
// ============================================================================
// All functions operate on RecordView for zero-copy access to the dataset.
// Grouping produces SubViews (index lists into parent view).
// Statistics over an empty view are Undefined, never zero.
// ============================================================================

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

func groupByMulti(view RecordView, dimensions []string) []Group {
	if len(dimensions) < 2 {
		return groupBySingle(view, dimensions[0])
	}

	primaryGroups := groupBySingle(view, dimensions[0])
	for i := range primaryGroups {
		primaryGroups[i].SubGroups = groupBySingle(primaryGroups[i].View, dimensions[1])
	}
	return primaryGroups
}

// ============================================================================
// FREQUENCY + CONTINGENCY
// ============================================================================

// ValueCounts counts rows per label of a dimension.
// Most frequent first; ties keep encounter order.
func ValueCounts(view RecordView, dimension string) FrequencyTable {
	groups := groupBySingle(view, dimension)
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	table := FrequencyTable{Dimension: dimension, Rows: make([]Frequency, 0, len(groups))}
	for _, g := range groups {
		table.Rows = append(table.Rows, Frequency{Label: g.Label, Count: g.Count})
	}
	return table
}

// Crosstab counts rows jointly by two dimensions.
// The given columns always appear (zero-filled); any other column label
// observed in the view is appended after them in sorted order. Rows are
// sorted by label.
func Crosstab(view RecordView, rowDim, colDim string, columns ...string) ContingencyTable {
	table := ContingencyTable{RowDimension: rowDim, ColumnDimension: colDim}

	cols := append([]string(nil), columns...)
	seen := toSet(cols)
	var extra []string
	for i := 0; i < view.Len(); i++ {
		label := view.Dimension(i, colDim)
		if !seen[label] {
			seen[label] = true
			extra = append(extra, label)
		}
	}
	sortLabels(extra)
	table.Columns = append(cols, extra...)

	groups := groupByMulti(view, []string{rowDim, colDim})
	sort.SliceStable(groups, func(i, j int) bool { return labelLess(groups[i].Key, groups[j].Key) })

	table.Rows = make([]ContingencyRow, 0, len(groups))
	for _, g := range groups {
		counts := make([]int, len(table.Columns))
		for _, sg := range g.SubGroups {
			if idx := indexOf(table.Columns, sg.Key); idx >= 0 {
				counts[idx] = sg.Count
			}
		}
		table.Rows = append(table.Rows, ContingencyRow{Label: g.Label, Counts: counts})
	}
	return table
}

// sortLabels sorts numerically when every label is a number, else lexically.
func sortLabels(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool { return labelLess(labels[i], labels[j]) })
}

func labelLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

// ============================================================================
// SUMMARY STATISTICS
// ============================================================================

// MeasureValues extracts a measure's values from a view.
func MeasureValues(view RecordView, measure string) []float64 {
	out := make([]float64, view.Len())
	for i := range out {
		out[i] = view.Measure(i, measure)
	}
	return out
}

// Mean computes the arithmetic mean of a measure. Undefined on an empty view.
func Mean(view RecordView, measure string) Metric {
	m, err := stats.Mean(MeasureValues(view, measure))
	if err != nil {
		return Undefined
	}
	return MetricOf(m)
}

// ComputeKPIs computes the four headline numbers for a view.
// On an empty view every KPI is Undefined, including the row count.
func ComputeKPIs(view RecordView) KPIs {
	if view.Len() == 0 {
		return KPIs{}
	}
	return KPIs{
		AddictionScore: Mean(view, schema.AddictedScore),
		DailyUsage:     Mean(view, schema.DailyUsage),
		MentalHealth:   Mean(view, schema.MentalHealth),
		TotalStudents:  Defined(float64(view.Len())),
	}
}

// HistogramOf bins a measure into equal-width intervals spanning its range.
// The last bin is closed so the maximum value is counted.
func HistogramOf(view RecordView, measure string, bins int) Histogram {
	h := Histogram{Measure: measure, Bins: []Bin{}}
	x := MeasureValues(view, measure)
	if len(x) == 0 || bins <= 0 {
		return h
	}
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		hi = lo + 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)
	for i, c := range counts {
		upper := dividers[i+1]
		if i == bins-1 {
			upper = hi
		}
		h.Bins = append(h.Bins, Bin{Lower: dividers[i], Upper: upper, Count: int(c)})
	}
	return h
}

// BoxStatsBy summarizes a measure per label of a dimension, in label order.
func BoxStatsBy(view RecordView, measure, dimension string) []BoxStats {
	groups := groupBySingle(view, dimension)
	sort.SliceStable(groups, func(i, j int) bool { return labelLess(groups[i].Key, groups[j].Key) })

	out := make([]BoxStats, 0, len(groups))
	for _, g := range groups {
		out = append(out, boxStats(g.Label, MeasureValues(g.View, measure)))
	}
	return out
}

func boxStats(group string, x []float64) BoxStats {
	b := BoxStats{Group: group, Count: len(x)}
	if len(x) == 0 {
		return b
	}
	b.Min = metricOrUndefined(stats.Min(x))
	b.Max = metricOrUndefined(stats.Max(x))
	b.Median = metricOrUndefined(stats.Median(x))
	if q, err := stats.Quartile(x); err == nil {
		b.Q1 = MetricOf(q.Q1)
		b.Q3 = MetricOf(q.Q3)
	}
	return b
}

func metricOrUndefined(v float64, err error) Metric {
	if err != nil {
		return Undefined
	}
	return MetricOf(v)
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

// LabelForDimension returns the display name for a survey column.
func LabelForDimension(key string) string {
	return schema.Survey().DisplayName(key)
}
