package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// TABLE BUILDER: Produces TableData from a Result
// ============================================================================
// Tables are the text-friendly form of the derived aggregates. Undefined
// numbers are written as "undefined", never as 0.
// ============================================================================

// BuildTables returns every table for a Result, in dashboard order.
func BuildTables(r *Result) []*TableData {
	return []*TableData{
		BuildKPITable(r.KPIs),
		BuildFrequencyTable("Most Used Social Media Platforms", r.PlatformCounts),
		BuildContingencyTable("Academic Performance Impact by Platform", r.AcademicImpact),
		BuildCorrelationTable("Correlation Between Key Metrics", r.Correlation),
	}
}

// BuildKPITable lays the four KPIs out as label/value rows.
func BuildKPITable(k KPIs) *TableData {
	return &TableData{
		Title: "Key Performance Indicators",
		Columns: []Column{
			{Key: "kpi", Label: "KPI", Type: "text", Align: "left"},
			{Key: "value", Label: "Value", Type: "number", Align: "right"},
		},
		Rows: [][]string{
			{"Addiction Score", k.AddictionScore.Format(2)},
			{"Daily Usage (hours)", k.DailyUsage.Format(2)},
			{"Mental Health Score", k.MentalHealth.Format(2)},
			{"Total Students", k.TotalStudents.Format(0)},
		},
	}
}

// BuildFrequencyTable lays a frequency table out with a share column.
func BuildFrequencyTable(title string, t FrequencyTable) *TableData {
	total := t.Total()
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		share := Undefined
		if total > 0 {
			share = Defined(float64(r.Count) / float64(total) * 100)
		}
		rows = append(rows, []string{r.Label, strconv.Itoa(r.Count), share.Format(1)})
	}

	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "label", Label: LabelForDimension(t.Dimension), Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
			{Key: "share", Label: "Share %", Type: "number", Align: "right"},
		},
		Rows: rows,
		Summary: &Summary{
			Label:  "Total",
			Values: map[string]string{"count": FormatInt(total)},
		},
	}
}

// BuildContingencyTable lays a contingency table out with one column per label.
func BuildContingencyTable(title string, t ContingencyTable) *TableData {
	columns := []Column{{Key: "label", Label: LabelForDimension(t.RowDimension), Type: "text", Align: "left"}}
	for _, c := range t.Columns {
		columns = append(columns, Column{Key: c, Label: c, Type: "number", Align: "right"})
	}

	totals := make([]int, len(t.Columns))
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{r.Label}
		for i, c := range r.Counts {
			row = append(row, strconv.Itoa(c))
			totals[i] += c
		}
		rows = append(rows, row)
	}

	summary := &Summary{Label: "Total", Values: make(map[string]string, len(t.Columns))}
	for i, c := range t.Columns {
		summary.Values[c] = FormatInt(totals[i])
	}

	return &TableData{Title: title, Columns: columns, Rows: rows, Summary: summary}
}

// BuildCorrelationTable lays the correlation matrix out as a square table.
func BuildCorrelationTable(title string, m CorrelationMatrix) *TableData {
	columns := []Column{{Key: "metric", Label: "Metric", Type: "text", Align: "left"}}
	for _, key := range m.Measures {
		columns = append(columns, Column{Key: key, Label: LabelForDimension(key), Type: "number", Align: "right"})
	}

	rows := make([][]string, 0, len(m.Measures))
	for i, key := range m.Measures {
		row := []string{LabelForDimension(key)}
		for j := range m.Measures {
			row = append(row, m.Cells[i][j].Format(2))
		}
		rows = append(rows, row)
	}
	return &TableData{Title: title, Columns: columns, Rows: rows}
}

// BuildHistogramTable lays histogram bins out as range/count rows.
func BuildHistogramTable(title string, h Histogram) *TableData {
	rows := make([][]string, 0, len(h.Bins))
	for _, b := range h.Bins {
		rows = append(rows, []string{fmt.Sprintf("%.2f – %.2f", b.Lower, b.Upper), strconv.Itoa(b.Count)})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "range", Label: LabelForDimension(h.Measure), Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}

// BuildBoxTable lays per-group box statistics out as a table.
func BuildBoxTable(title string, boxes []BoxStats) *TableData {
	rows := make([][]string, 0, len(boxes))
	for _, b := range boxes {
		rows = append(rows, []string{
			b.Group, strconv.Itoa(b.Count),
			b.Min.Format(2), b.Q1.Format(2), b.Median.Format(2), b.Q3.Format(2), b.Max.Format(2),
		})
	}
	return &TableData{
		Title: title,
		Columns: []Column{
			{Key: "group", Label: "Group", Type: "text", Align: "left"},
			{Key: "count", Label: "Count", Type: "number", Align: "right"},
			{Key: "min", Label: "Min", Type: "number", Align: "right"},
			{Key: "q1", Label: "Q1", Type: "number", Align: "right"},
			{Key: "median", Label: "Median", Type: "number", Align: "right"},
			{Key: "q3", Label: "Q3", Type: "number", Align: "right"},
			{Key: "max", Label: "Max", Type: "number", Align: "right"},
		},
		Rows: rows,
	}
}
