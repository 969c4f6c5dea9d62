package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spektr-org/socialdash/schema"
)

// CorrelationMeasures are the five numeric fields in the heatmap, in display order.
var CorrelationMeasures = []string{
	schema.AddictedScore,
	schema.MentalHealth,
	schema.DailyUsage,
	schema.SleepHours,
	schema.Conflicts,
}

// CorrelationMatrixOf computes pairwise Pearson coefficients over a view,
// rounded to two decimals.
//
// A column is degenerate when the view has fewer than two rows or the column
// is constant. Every cell touching a degenerate column, diagonal included, is
// Undefined. Non-degenerate diagonals are exactly 1.
func CorrelationMatrixOf(view RecordView, measures []string) CorrelationMatrix {
	n := len(measures)
	m := CorrelationMatrix{
		Measures: append([]string(nil), measures...),
		Cells:    make([][]Metric, n),
	}
	for i := range m.Cells {
		m.Cells[i] = make([]Metric, n)
	}

	cols := make([][]float64, n)
	degenerate := make([]bool, n)
	for i, key := range measures {
		cols[i] = MeasureValues(view, key)
		degenerate[i] = len(cols[i]) < 2 || floats.Min(cols[i]) == floats.Max(cols[i])
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			var cell Metric
			switch {
			case degenerate[i] || degenerate[j]:
				cell = Undefined
			case i == j:
				cell = Defined(1)
			default:
				r := stat.Correlation(cols[i], cols[j], nil)
				cell = MetricOf(RoundTo2(math.Max(-1, math.Min(1, r))))
			}
			m.Cells[i][j] = cell
			m.Cells[j][i] = cell
		}
	}
	return m
}
