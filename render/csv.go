package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spektr-org/socialdash/engine"
)

// ============================================================================
// CSV OUTPUT: Result tables as Sheets-ready CSV
// ============================================================================

// CSV writes every dashboard table, separated by a blank line.
// Each block starts with a single-cell title row.
func CSV(w io.Writer, r *engine.Result) error {
	cw := csv.NewWriter(w)

	tables := engine.BuildTables(r)
	tables = append(tables,
		engine.BuildHistogramTable("Distribution of Daily Usage (hrs)", r.UsageHistogram),
		engine.BuildBoxTable("Social Media Usage by Gender", r.UsageByGender),
	)

	for i, t := range tables {
		if i > 0 {
			cw.Write([]string{})
		}
		cw.Write([]string{t.Title})
		writeTableCSV(cw, t)
	}
	cw.Flush()
	return cw.Error()
}

// ChartCSV writes one chart's category data as CSV.
// Single series → two columns; multi-series → label + one column per series.
func ChartCSV(w io.Writer, chart engine.ChartConfig) error {
	cw := csv.NewWriter(w)
	writeChartCSV(cw, chart)
	cw.Flush()
	return cw.Error()
}

func writeTableCSV(cw *csv.Writer, t *engine.TableData) {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range t.Rows {
		cw.Write(row)
	}
	if t.Summary != nil {
		footer := []string{t.Summary.Label}
		for _, c := range t.Columns[1:] {
			footer = append(footer, t.Summary.Values[c.Key])
		}
		cw.Write(footer)
	}
}

func writeChartCSV(cw *csv.Writer, chart engine.ChartConfig) {
	xLabel, yLabel := chart.XAxis, chart.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	if len(chart.Series) == 0 {
		cw.Write([]string{xLabel, yLabel})
		return
	}

	if len(chart.Series) == 1 {
		cw.Write([]string{xLabel, yLabel})
		for _, d := range chart.Series[0].Data {
			cw.Write([]string{pointLabel(d), pointValue(d)})
		}
		return
	}

	headers := []string{xLabel}
	for _, s := range chart.Series {
		headers = append(headers, s.Name)
	}
	cw.Write(headers)

	for i, d := range chart.Series[0].Data {
		row := []string{pointLabel(d)}
		for _, s := range chart.Series {
			if i < len(s.Data) {
				row = append(row, pointValue(s.Data[i]))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
}

func pointLabel(p engine.ChartPoint) string {
	if p.Label != "" {
		return p.Label
	}
	return fmtNum(p.X)
}

func pointValue(p engine.ChartPoint) string {
	if p.Undefined {
		return "undefined"
	}
	if p.Label == "" {
		return fmtNum(p.Y)
	}
	return fmtNum(p.Value)
}

// fmtNum prints whole numbers without decimals and fractions with two.
func fmtNum(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
