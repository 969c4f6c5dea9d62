package server

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/spektr-org/socialdash/engine"
)

// ============================================================================
// HTML DASHBOARD
// ============================================================================

type kpiCard struct {
	Label string
	Value string
	Style template.CSS
	Emoji string
}

type checkbox struct {
	Value   string
	Checked bool
}

type filterGroup struct {
	Param   string
	Label   string
	Options []checkbox
}

type heatCell struct {
	Text  string
	Style template.CSS
}

type heatRow struct {
	Label string
	Cells []heatCell
}

type themeOption struct {
	Name     string
	Selected bool
}

type pageData struct {
	Result   *engine.Result
	Cards    []kpiCard
	Filters  []filterGroup
	Themes   []themeOption
	Tables   []*engine.TableData
	Heat     []heatRow
	HeatCols []string
	Note     template.HTML
	CSVURL   template.URL
	XLSXURL  template.URL
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	result, err := a.apply(r, engine.WithoutCharts())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data := pageData{
		Result: result,
		Cards:  kpiCards(result.KPIs),
		Tables: []*engine.TableData{
			engine.BuildFrequencyTable("📌 Most Used Social Media Platforms", result.PlatformCounts),
			engine.BuildContingencyTable("🎓 Academic Performance Impact by Platform", result.AcademicImpact),
			engine.BuildHistogramTable("⏰ Distribution of Daily Usage (hrs)", result.UsageHistogram),
			engine.BuildBoxTable("👥 Social Media Usage by Gender", result.UsageByGender),
		},
		Note:    a.note,
		CSVURL:  exportURL("/api/export.csv", r),
		XLSXURL: exportURL("/api/export.xlsx", r),
	}

	for _, f := range a.filterOptions() {
		selected := selectionFor(result.Selection, f.Param)
		group := filterGroup{Param: f.Param, Label: f.Label}
		for _, v := range f.Values {
			group.Options = append(group.Options, checkbox{Value: v, Checked: contains(selected, v)})
		}
		data.Filters = append(data.Filters, group)
	}

	for _, t := range engine.Themes() {
		data.Themes = append(data.Themes, themeOption{Name: t, Selected: t == result.Theme})
	}

	m := result.Correlation
	for _, key := range m.Measures {
		data.HeatCols = append(data.HeatCols, engine.LabelForDimension(key))
	}
	for i, key := range m.Measures {
		row := heatRow{Label: engine.LabelForDimension(key)}
		for j := range m.Measures {
			cell := m.Cells[i][j]
			bg := engine.HeatColor(result.Theme, cell)
			text := cell.Format(2)
			if !cell.Defined {
				text = "n/a"
			}
			row.Cells = append(row.Cells, heatCell{Text: text, Style: colorStyle(bg, engine.TextColorFor(bg))})
		}
		data.Heat = append(data.Heat, row)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		a.log.Error("template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func exportURL(path string, r *http.Request) template.URL {
	if r.URL.RawQuery == "" {
		return template.URL(path)
	}
	return template.URL(path + "?" + r.URL.RawQuery)
}

func kpiCards(k engine.KPIs) []kpiCard {
	show := func(m engine.Metric, decimals int) string {
		if !m.Defined {
			return "No data"
		}
		return m.Format(decimals)
	}
	return []kpiCard{
		{"Addiction Score", show(k.AddictionScore, 2), colorStyle("#BB86FC", "#FFFFFF"), "📱"},
		{"Daily Usage (hours)", show(k.DailyUsage, 2), colorStyle("#F48FB1", "#FFFFFF"), "⏰"},
		{"Mental Health Score", show(k.MentalHealth, 2), colorStyle("#CE93D8", "#FFFFFF"), "🧠"},
		{"Total Students", show(k.TotalStudents, 0), colorStyle("#9575CD", "#FFFFFF"), "👥"},
	}
}

func colorStyle(background, foreground string) template.CSS {
	return template.CSS("background-color:" + background + ";color:" + foreground)
}

func selectionFor(sel engine.Selection, param string) []string {
	switch param {
	case paramGender:
		return sel.Genders
	case paramLevel:
		return sel.Levels
	case paramStatus:
		return sel.Statuses
	}
	return nil
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}

func joinLabels(items []string) string { return strings.Join(items, ", ") }
