package engine

import (
	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// FILTERS: Set-Membership Filtering via RecordView
// ============================================================================
// Single-pass filter: checks ALL dimension constraints per record in one loop.
// Returns a SubView (index list into parent), zero data copy.
//
// Unlike a search box, a dashboard filter with nothing ticked shows nothing:
// a listed dimension with an empty allowed set matches no record.
// ============================================================================

// Filters define which records to include.
// Keys are dimension names. Values are allowed labels.
// OR within a dimension, AND across dimensions. Unlisted dimensions are unrestricted.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// HasFilter returns true if a dimension is restricted (even to the empty set).
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	_, ok := f.Dimensions[dimension]
	return ok
}

// MatchesNothing returns true if some listed dimension allows no labels.
func (f Filters) MatchesNothing() bool {
	for _, vals := range f.Dimensions {
		if len(vals) == 0 {
			return true
		}
	}
	return false
}

// Filters converts the selection into dimension filters.
func (s Selection) Filters() Filters {
	return Filters{Dimensions: map[string][]string{
		schema.Gender:            s.Genders,
		schema.AcademicLevel:     s.Levels,
		schema.RelationshipState: s.Statuses,
	}}
}

// IsEmpty returns true if any of the three sets is empty.
func (s Selection) IsEmpty() bool {
	return len(s.Genders) == 0 || len(s.Levels) == 0 || len(s.Statuses) == 0
}

// FullSelection selects every label present in the dataset.
func FullSelection(ds *Dataset) Selection {
	return Selection{
		Genders:  ds.Labels(schema.Gender),
		Levels:   ds.Labels(schema.AcademicLevel),
		Statuses: ds.Labels(schema.RelationshipState),
	}
}

// ApplySelection returns the rows whose gender, academic level and
// relationship status are all members of the selection.
func ApplySelection(view RecordView, sel Selection) RecordView {
	return ApplyFilters(view, sel.Filters())
}

// ApplyFilters returns a view of records matching all dimension filters.
// Matching is exact and case-sensitive.
func ApplyFilters(view RecordView, filters Filters) RecordView {
	if len(filters.Dimensions) == 0 {
		return view
	}
	if filters.MatchesNothing() {
		return newSubView(view, []int{})
	}

	sets := make(map[string]map[string]bool, len(filters.Dimensions))
	for dim, allowed := range filters.Dimensions {
		sets[dim] = toSet(allowed)
	}

	// Single pass: record passes if it matches ALL dimension filters
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for dim, set := range sets {
			if !set[view.Dimension(i, dim)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices)
}

// toSet converts a string slice to a lookup set.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
