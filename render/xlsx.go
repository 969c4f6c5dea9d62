package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/spektr-org/socialdash/engine"
)

// ============================================================================
// XLSX OUTPUT: One sheet per dashboard table
// ============================================================================

// WriteWorkbook builds the dashboard workbook and writes it to w.
func WriteWorkbook(w io.Writer, r *engine.Result) error {
	f, err := Workbook(r)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrap(f.Write(w), "write workbook")
}

// Workbook builds an XLSX file with sheets for the KPIs, platform counts,
// academic impact, correlation matrix and daily usage distribution.
// Correlation cells are filled with the selected theme's heat colors.
func Workbook(r *engine.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := []struct {
		name  string
		table *engine.TableData
	}{
		{"KPIs", engine.BuildKPITable(r.KPIs)},
		{"Platforms", engine.BuildFrequencyTable("Most Used Social Media Platforms", r.PlatformCounts)},
		{"Academic Impact", engine.BuildContingencyTable("Academic Performance Impact by Platform", r.AcademicImpact)},
		{"Correlation", engine.BuildCorrelationTable("Correlation Between Key Metrics", r.Correlation)},
		{"Daily Usage", engine.BuildHistogramTable("Distribution of Daily Usage (hrs)", r.UsageHistogram)},
		{"Usage by Gender", engine.BuildBoxTable("Social Media Usage by Gender", r.UsageByGender)},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0F0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "header style")
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				f.Close()
				return nil, errors.Wrapf(err, "rename sheet %s", s.name)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "new sheet %s", s.name)
		}
		if err := writeSheet(f, s.name, s.table, headerStyle); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "sheet %s", s.name)
		}
	}

	if err := colorCorrelation(f, "Correlation", r.Correlation, r.Theme); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "color correlation")
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t *engine.TableData, headerStyle int) error {
	for c, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return err
		}
	}
	if len(t.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	rowIdx := 2
	for _, row := range t.Rows {
		if err := writeRow(f, sheet, rowIdx, row); err != nil {
			return err
		}
		rowIdx++
	}

	if t.Summary != nil {
		footer := []string{t.Summary.Label}
		for _, c := range t.Columns[1:] {
			footer = append(footer, t.Summary.Values[c.Key])
		}
		if err := writeRow(f, sheet, rowIdx, footer); err != nil {
			return err
		}
	}
	return nil
}

// writeRow stores numeric-looking cells as numbers so spreadsheets can sum them.
func writeRow(f *excelize.File, sheet string, rowIdx int, row []string) error {
	for c, v := range row {
		cell, _ := excelize.CoordinatesToCellName(c+1, rowIdx)
		var value interface{} = v
		if n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64); err == nil && c > 0 {
			value = n
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func colorCorrelation(f *excelize.File, sheet string, m engine.CorrelationMatrix, theme string) error {
	styles := make(map[string]int)
	for i := range m.Measures {
		for j := range m.Measures {
			bg := engine.HeatColor(theme, m.Cells[i][j])
			style, ok := styles[bg]
			if !ok {
				var err error
				style, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Color: []string{bg}, Pattern: 1},
					Font: &excelize.Font{Color: engine.TextColorFor(bg)},
				})
				if err != nil {
					return err
				}
				styles[bg] = style
			}
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}
	return nil
}
