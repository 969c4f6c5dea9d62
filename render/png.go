package render

import (
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// PNG CHARTS: Static dashboard charts via gonum/plot
// ============================================================================
// One file per ChartConfig, named <chart id>.png. Pie and donut charts have
// no gonum plotter; they are drawn as bar charts of the same counts.
// ============================================================================

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// Charts writes a PNG for every chart in the Result and returns the paths.
// An empty Result writes nothing.
func Charts(dir string, r *engine.Result) ([]string, error) {
	if r.Empty {
		log.Printf("⚠️ Socialdash: no rows selected, skipping charts")
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create chart dir %s", dir)
	}

	charts := r.Charts
	if len(charts) == 0 {
		charts = engine.BuildCharts(r)
	}

	var paths []string
	for _, c := range charts {
		p, err := plotChart(c, r)
		if err != nil {
			return paths, errors.Wrapf(err, "chart %s", c.ID)
		}
		path := filepath.Join(dir, c.ID+".png")
		if err := p.Save(chartWidth, chartHeight, path); err != nil {
			return paths, errors.Wrapf(err, "save %s", path)
		}
		paths = append(paths, path)
	}
	log.Printf("🖼️ Socialdash: wrote %d charts to %s", len(paths), dir)
	return paths, nil
}

func plotChart(c engine.ChartConfig, r *engine.Result) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = c.XAxis
	p.Y.Label.Text = c.YAxis
	p.Legend.Top = true

	var err error
	switch c.ChartType {
	case "scatter", "bubble":
		err = addScatter(p, c)
	case "heatmap":
		err = addHeatmap(p, c)
	case "box":
		err = addBoxes(p, r)
	case "bar", "stacked_bar", "histogram", "pie":
		err = addBars(p, c)
	default:
		err = errors.Errorf("unsupported chart type %q", c.ChartType)
	}
	if err != nil {
		return nil, err
	}
	if c.ShowGrid {
		p.Add(plotter.NewGrid())
	}
	return p, nil
}

func addScatter(p *plot.Plot, c engine.ChartConfig) error {
	maxSize := 0.0
	for _, s := range c.Series {
		for _, d := range s.Data {
			if d.Size > maxSize {
				maxSize = d.Size
			}
		}
	}

	for _, s := range c.Series {
		if len(s.Data) == 0 {
			continue
		}
		fill := engine.ParseHexColor(s.Color)
		if c.ChartType == "scatter" {
			xys := make(plotter.XYs, len(s.Data))
			for i, d := range s.Data {
				xys[i] = plotter.XY{X: d.X, Y: d.Y}
			}
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = darken(fill)
			sc.GlyphStyle.Radius = vg.Points(3)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			p.Legend.Add(s.Name, sc)
			continue
		}

		// Bubbles: one scatter per point so each gets its own radius.
		for i, d := range s.Data {
			sc, err := plotter.NewScatter(plotter.XYs{{X: d.X, Y: d.Y}})
			if err != nil {
				return err
			}
			radius := vg.Points(2)
			if maxSize > 0 {
				radius = vg.Points(2 + 8*d.Size/maxSize)
			}
			sc.GlyphStyle.Color = darken(fill)
			sc.GlyphStyle.Radius = radius
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			if i == 0 {
				p.Legend.Add(s.Name, sc)
			}
		}
	}
	return nil
}

func addBars(p *plot.Plot, c engine.ChartConfig) error {
	if len(c.Series) == 0 || len(c.Series[0].Data) == 0 {
		return nil
	}

	labels := make([]string, len(c.Series[0].Data))
	for i, d := range c.Series[0].Data {
		labels[i] = d.Label
	}

	width := vg.Points(40 / float64(len(c.Series)))
	if c.ChartType == "stacked_bar" || len(c.Series) == 1 {
		width = vg.Points(30)
	}

	var below *plotter.BarChart
	for si, s := range c.Series {
		values := make(plotter.Values, len(s.Data))
		for i, d := range s.Data {
			values[i] = d.Value
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = engine.ParseHexColor(seriesColor(c, si))

		switch {
		case c.ChartType == "stacked_bar" && below != nil:
			bars.StackOn(below)
		case c.ChartType == "bar" && len(c.Series) > 1:
			bars.Offset = vg.Length(float64(si)-float64(len(c.Series)-1)/2) * width
		}
		below = bars

		p.Add(bars)
		if len(c.Series) > 1 {
			p.Legend.Add(s.Name, bars)
		}
	}

	if c.ChartType == "pie" {
		p.Y.Label.Text = "Count"
		p.X.Label.Text = c.Series[0].Name
	}
	p.NominalX(labels...)
	return nil
}

func seriesColor(c engine.ChartConfig, i int) string {
	if c.Series[i].Color != "" {
		return c.Series[i].Color
	}
	if i < len(c.Colors) {
		return c.Colors[i]
	}
	return "#AEC6CF"
}

// ============================================================================
// HEATMAP
// ============================================================================

// correlationGrid exposes the heatmap series as a plotter.GridXYZ.
// Column c is the c-th measure, row r the r-th measure.
type correlationGrid struct {
	cells [][]engine.ChartPoint
}

func (g correlationGrid) Dims() (c, r int) { return len(g.cells), len(g.cells) }
func (g correlationGrid) X(c int) float64  { return float64(c) }
func (g correlationGrid) Y(r int) float64  { return float64(r) }

func (g correlationGrid) Z(c, r int) float64 {
	pt := g.cells[r][c]
	if pt.Undefined {
		return math.NaN()
	}
	return pt.Value
}

// themePalette interpolates a heat theme into a fixed number of colors.
type themePalette []color.Color

func (t themePalette) Colors() []color.Color { return t }

// newThemePalette samples the chart's color scale at n evenly spaced
// points across [-1, 1], using the same interpolation as the HTML heatmap.
func newThemePalette(scale []string, n int) themePalette {
	out := make(themePalette, n)
	for i := range out {
		out[i] = engine.ScaleRGBA(scale, -1+2*float64(i)/float64(n-1))
	}
	return out
}

func addHeatmap(p *plot.Plot, c engine.ChartConfig) error {
	n := len(c.Series)
	if n == 0 {
		return nil
	}
	grid := correlationGrid{cells: make([][]engine.ChartPoint, n)}
	names := make([]string, n)
	for i, s := range c.Series {
		grid.cells[i] = s.Data
		names[i] = shortName(s.Name)
	}

	hm := plotter.NewHeatMap(grid, newThemePalette(c.ColorScale, 64))
	hm.Min, hm.Max = -1, 1
	hm.NaN = engine.ParseHexColor(engine.UndefinedColor)
	p.Add(hm)

	xys := make(plotter.XYs, 0, n*n)
	text := make([]string, 0, n*n)
	for r, s := range c.Series {
		for col, d := range s.Data {
			xys = append(xys, plotter.XY{X: float64(col), Y: float64(r)})
			if d.Undefined {
				text = append(text, "n/a")
			} else {
				text = append(text, engine.Defined(d.Value).Format(2))
			}
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return err
	}
	p.Add(labels)

	p.NominalX(names...)
	p.NominalY(names...)
	return nil
}

func shortName(key string) string {
	switch key {
	case schema.AddictedScore:
		return "Addiction"
	case schema.MentalHealth:
		return "Mental Health"
	case schema.DailyUsage:
		return "Daily Usage"
	case schema.SleepHours:
		return "Sleep"
	case schema.Conflicts:
		return "Conflicts"
	}
	return engine.LabelForDimension(key)
}

// ============================================================================
// BOX PLOTS
// ============================================================================

func addBoxes(p *plot.Plot, r *engine.Result) error {
	var names []string
	for i, b := range r.UsageByGender {
		if b.Count == 0 {
			continue
		}
		group := engine.ApplyFilters(r.View, engine.Filters{Dimensions: map[string][]string{
			schema.Gender: {b.Group},
		}})
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(len(names)), plotter.Values(engine.MeasureValues(group, schema.DailyUsage)))
		if err != nil {
			return err
		}
		box.FillColor = engine.ParseHexColor(engine.GenderColor(b.Group, i))
		p.Add(box)
		names = append(names, b.Group)
	}
	p.X.Label.Text = engine.LabelForDimension(schema.Gender)
	p.Y.Label.Text = engine.LabelForDimension(schema.DailyUsage)
	p.NominalX(names...)
	return nil
}

func darken(c color.RGBA) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * 3 / 4) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}
