package engine

import (
	"strconv"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// RECORD VIEW: Zero-Copy Data Access Interface
// ============================================================================
// The engine never owns the dataset. It reads through this interface.
//
// Implementations:
//   DomainView[T]  reads typed structs via accessor functions (zero-copy)
//   SubView        filtered subset (indices into parent, zero-copy)
//
// The survey adapter is registered once; every pipeline run binds the same
// immutable []Row and filters it into SubViews.
// ============================================================================

// RecordView provides indexed access to a dataset.
// The engine calls Dimension/Measure in tight loops; keep implementations fast.
type RecordView interface {
	Len() int
	Dimension(index int, key string) string
	Measure(index int, key string) float64
	DimensionKeys() []string // available dimension keys
	MeasureKeys() []string   // available measure keys
}

// ============================================================================
// SUB VIEW: filtered subset (zero-copy)
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return 0
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) DimensionKeys() []string { return v.parent.DimensionKeys() }
func (v *SubView) MeasureKeys() []string   { return v.parent.MeasureKeys() }

// ============================================================================
// DOMAIN ADAPTER: Zero-copy typed struct access
// ============================================================================
//
// Usage:
//
//	adapter := engine.NewDomainAdapter[Row]().
//	    Dimension("Gender", func(r Row) string { return r.Gender }).
//	    Measure("Addicted_Score", func(r Row) float64 { return r.AddictedScore })
//
//	view := adapter.Bind(rows)
//
// ============================================================================

// DomainAdapter builds a RecordView from typed structs.
// Declare once, bind many times.
type DomainAdapter[T any] struct {
	dimOrder []string
	mesOrder []string
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
}

// NewDomainAdapter creates a new adapter for type T.
func NewDomainAdapter[T any]() *DomainAdapter[T] {
	return &DomainAdapter[T]{
		dims: make(map[string]func(T) string),
		meas: make(map[string]func(T) float64),
	}
}

// Dimension registers a dimension accessor.
func (a *DomainAdapter[T]) Dimension(key string, fn func(T) string) *DomainAdapter[T] {
	if _, exists := a.dims[key]; !exists {
		a.dimOrder = append(a.dimOrder, key)
	}
	a.dims[key] = fn
	return a
}

// Measure registers a measure accessor.
func (a *DomainAdapter[T]) Measure(key string, fn func(T) float64) *DomainAdapter[T] {
	if _, exists := a.meas[key]; !exists {
		a.mesOrder = append(a.mesOrder, key)
	}
	a.meas[key] = fn
	return a
}

// Bind creates a RecordView from a data slice. Zero-copy: holds a reference.
func (a *DomainAdapter[T]) Bind(data []T) RecordView {
	return &DomainView[T]{
		data:     data,
		dims:     a.dims,
		meas:     a.meas,
		dimKeys:  a.dimOrder,
		measKeys: a.mesOrder,
	}
}

// DomainView reads typed struct fields via registered accessor functions.
type DomainView[T any] struct {
	data     []T
	dims     map[string]func(T) string
	meas     map[string]func(T) float64
	dimKeys  []string
	measKeys []string
}

func (v *DomainView[T]) Len() int { return len(v.data) }

func (v *DomainView[T]) Dimension(i int, key string) string {
	if i < 0 || i >= len(v.data) {
		return ""
	}
	if fn, ok := v.dims[key]; ok {
		return fn(v.data[i])
	}
	return ""
}

func (v *DomainView[T]) Measure(i int, key string) float64 {
	if i < 0 || i >= len(v.data) {
		return 0
	}
	if fn, ok := v.meas[key]; ok {
		return fn(v.data[i])
	}
	return 0
}

func (v *DomainView[T]) DimensionKeys() []string { return v.dimKeys }
func (v *DomainView[T]) MeasureKeys() []string   { return v.measKeys }

// ============================================================================
// SURVEY ADAPTER: Row accessors keyed by survey column name
// ============================================================================

// surveyAdapter maps Row fields to schema column names.
// Addicted_Score is also exposed as a dimension so it can be grouped
// (the addiction-by-gender chart counts rows per score).
var surveyAdapter = NewDomainAdapter[Row]().
	Dimension(schema.Gender, func(r Row) string { return r.Gender }).
	Dimension(schema.AcademicLevel, func(r Row) string { return r.AcademicLevel }).
	Dimension(schema.RelationshipState, func(r Row) string { return r.RelationshipStatus }).
	Dimension(schema.Platform, func(r Row) string { return r.Platform }).
	Dimension(schema.AcademicImpact, func(r Row) string { return r.AcademicImpact }).
	Dimension(schema.Country, func(r Row) string { return r.Country }).
	Dimension(schema.AddictedScore, func(r Row) string { return formatNumber(r.AddictedScore) }).
	Measure(schema.AddictedScore, func(r Row) float64 { return r.AddictedScore }).
	Measure(schema.MentalHealth, func(r Row) float64 { return r.MentalHealthScore }).
	Measure(schema.DailyUsage, func(r Row) float64 { return r.DailyUsageHours }).
	Measure(schema.SleepHours, func(r Row) float64 { return r.SleepHours }).
	Measure(schema.Conflicts, func(r Row) float64 { return r.Conflicts }).
	Measure(schema.Age, func(r Row) float64 { return float64(r.Age) })

// formatNumber renders whole numbers without decimals.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================================
// DATASET: Immutable survey rows
// ============================================================================

// Dataset is the loaded survey. It is immutable after construction and safe
// to share between goroutines.
type Dataset struct {
	rows []Row
	view RecordView
}

// NewDataset copies rows into a new immutable Dataset.
func NewDataset(rows []Row) *Dataset {
	owned := make([]Row, len(rows))
	copy(owned, rows)
	return &Dataset{rows: owned, view: surveyAdapter.Bind(owned)}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Row returns a copy of row i.
func (d *Dataset) Row(i int) Row { return d.rows[i] }

// View returns the full dataset as a RecordView.
func (d *Dataset) View() RecordView { return d.view }

// Labels returns the distinct values of a dimension in encounter order.
func (d *Dataset) Labels(dimension string) []string {
	return UniqueValues(d.view, dimension)
}

// Rows returns a copy of the rows visible through a view of this dataset.
func Rows(view RecordView) []Row {
	if dv, ok := view.(*DomainView[Row]); ok {
		out := make([]Row, len(dv.data))
		copy(out, dv.data)
		return out
	}
	if sv, ok := view.(*SubView); ok {
		parent := Rows(sv.parent)
		out := make([]Row, 0, len(sv.indices))
		for _, idx := range sv.indices {
			out = append(out, parent[idx])
		}
		return out
	}
	return nil
}
