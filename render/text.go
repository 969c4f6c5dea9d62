// Package render turns an engine.Result into terminal tables, CSV, XLSX
// workbooks and PNG charts. It only reads the Result; nothing is recomputed.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/helpers"
)

var (
	heading = color.New(color.FgYellow, color.Bold)
	muted   = color.New(color.FgHiBlack)
	alert   = color.New(color.FgRed)
)

// Text writes the dashboard as KPI cards and tables for a terminal.
func Text(w io.Writer, r *engine.Result) error {
	heading.Fprintln(w, "\n=== Students Social Media Addiction Dashboard ===")
	muted.Fprintln(w, engine.DescribeSelection(r.Selection))
	fmt.Fprintln(w, r.Reply)

	if r.Empty {
		alert.Fprintln(w, "No data")
	}

	for _, t := range engine.BuildTables(r) {
		writeTable(w, t)
	}
	writeTable(w, engine.BuildHistogramTable("Distribution of Daily Usage (hrs)", r.UsageHistogram))
	writeTable(w, engine.BuildBoxTable("Social Media Usage by Gender", r.UsageByGender))
	return nil
}

func writeTable(w io.Writer, t *engine.TableData) {
	heading.Fprintf(w, "\n%s\n", t.Title)
	if len(t.Rows) == 0 {
		muted.Fprintln(w, "No data")
		return
	}

	table := tablewriter.NewWriter(w)
	headers := make([]string, len(t.Columns))
	aligns := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Label
		aligns[i] = alignment(c.Align)
	}
	table.SetHeader(headers)
	table.SetColumnAlignment(aligns)
	table.SetAutoWrapText(false)

	for _, row := range t.Rows {
		table.Append(row)
	}

	if t.Summary != nil {
		footer := make([]string, len(t.Columns))
		footer[0] = t.Summary.Label
		for i, c := range t.Columns[1:] {
			footer[i+1] = t.Summary.Values[c.Key]
		}
		table.SetFooter(footer)
	}
	table.Render()
}

func alignment(a string) int {
	switch strings.ToLower(a) {
	case "right":
		return tablewriter.ALIGN_RIGHT
	case "center":
		return tablewriter.ALIGN_CENTER
	case "left":
		return tablewriter.ALIGN_LEFT
	}
	return tablewriter.ALIGN_DEFAULT
}

// Profile writes a column overview table.
func Profile(w io.Writer, cols []helpers.ColumnProfile) {
	t := &engine.TableData{
		Title: "Columns",
		Columns: []engine.Column{
			{Key: "name", Label: "Column", Align: "left"},
			{Key: "type", Label: "Type", Align: "left"},
			{Key: "nonNull", Label: "Non-Null", Align: "right"},
			{Key: "missing", Label: "Missing", Align: "right"},
			{Key: "unique", Label: "Unique", Align: "right"},
			{Key: "mean", Label: "Mean", Align: "right"},
			{Key: "std", Label: "Std", Align: "right"},
			{Key: "min", Label: "Min", Align: "right"},
			{Key: "max", Label: "Max", Align: "right"},
		},
	}
	for _, c := range cols {
		t.Rows = append(t.Rows, []string{
			c.Name, c.Type,
			engine.FormatInt(c.NonNull), engine.FormatInt(c.Missing), engine.FormatInt(c.Unique),
			dash(c.Mean), dash(c.Std), dash(c.Min), dash(c.Max),
		})
	}
	writeTable(w, t)
}

func dash(m engine.Metric) string {
	if !m.Defined {
		return "-"
	}
	return m.Format(2)
}
