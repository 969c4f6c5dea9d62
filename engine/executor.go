package engine

import (
	"errors"
	"log"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// EXECUTOR: Filter-and-Aggregate Pipeline
// ============================================================================
// Entry point: Apply(dataset, selection, opts...)
//
// Pipeline:
//   1. Apply selection → SubView
//   2. KPIs (means + row count)
//   3. Frequency tables, contingency tables, correlation matrix
//   4. Histogram and box statistics
//   5. Chart configs for the rendering layer
//
// Apply is a pure function of (Dataset, Selection): no state is kept between
// calls and the dataset is only read. Every filter change is a full rerun.
// ============================================================================

// ErrNoDataset is returned when Apply is called without a loaded dataset.
var ErrNoDataset = errors.New("no dataset loaded")

// ImpactColumns are the contingency columns for the academic-impact table.
var ImpactColumns = []string{"Yes", "No"}

// Apply runs the pipeline for one selection and returns a render-ready Result.
//
// Options:
//   - WithTheme(name): heatmap palette (cosmetic only)
//   - WithHistogramBins(n): daily usage histogram resolution
//   - WithoutCharts(): skip chart configs
func Apply(ds *Dataset, sel Selection, opts ...Option) (*Result, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}
	cfg := applyOptions(opts)

	theme, err := ParseTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}

	// 1. Filter → SubView (zero-copy)
	view := ds.View()
	filtered := ApplySelection(view, sel)

	log.Printf("🔧 Socialdash: %d of %d rows match selection (genders=%d levels=%d statuses=%d)",
		filtered.Len(), view.Len(), len(sel.Genders), len(sel.Levels), len(sel.Statuses))

	result := &Result{
		Success:   true,
		Empty:     filtered.Len() == 0,
		Total:     view.Len(),
		Matched:   filtered.Len(),
		Selection: sel,
		Theme:     theme,
		View:      filtered,
	}

	// 2. KPIs
	result.KPIs = ComputeKPIs(filtered)

	// 3. Derived tables
	result.PlatformCounts = ValueCounts(filtered, schema.Platform)
	result.Distributions = []FrequencyTable{
		ValueCounts(filtered, schema.Gender),
		ValueCounts(filtered, schema.AcademicLevel),
		ValueCounts(filtered, schema.AddictedScore),
	}
	result.AcademicImpact = Crosstab(filtered, schema.Platform, schema.AcademicImpact, ImpactColumns...)
	result.AddictionByGender = Crosstab(filtered, schema.AddictedScore, schema.Gender)
	result.Correlation = CorrelationMatrixOf(filtered, CorrelationMeasures)

	// 4. Distributions of daily usage
	result.UsageHistogram = HistogramOf(filtered, schema.DailyUsage, cfg.HistogramBins)
	result.UsageByGender = BoxStatsBy(filtered, schema.DailyUsage, schema.Gender)

	// 5. Charts
	if cfg.Charts {
		result.Charts = BuildCharts(result)
	}

	result.Reply = BuildReply(result)
	return result, nil
}
