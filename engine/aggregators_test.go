package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// KPI TESTS
// ============================================================================

func TestComputeKPIs(t *testing.T) {
	k := ComputeKPIs(sampleDataset().View())

	require.True(t, k.AddictionScore.Defined)
	assert.InDelta(t, 6.5, k.AddictionScore.Value, 1e-9)
	assert.InDelta(t, 4.0, k.DailyUsage.Value, 1e-9)
	assert.InDelta(t, 6.0, k.MentalHealth.Value, 1e-9)
	assert.Equal(t, Defined(6), k.TotalStudents)
}

func TestComputeKPIsEmptyViewIsUndefined(t *testing.T) {
	empty := ApplySelection(sampleDataset().View(), Selection{})
	k := ComputeKPIs(empty)

	assert.False(t, k.AddictionScore.Defined)
	assert.False(t, k.DailyUsage.Defined)
	assert.False(t, k.MentalHealth.Defined)
	assert.False(t, k.TotalStudents.Defined)
	assert.Equal(t, "undefined", k.AddictionScore.Format(2))
}

func TestMeanMatchesArithmeticMean(t *testing.T) {
	ds := NewDataset(genderSplitRows())
	view := ds.View()

	sum := 0.0
	for _, r := range Rows(view) {
		sum += r.SleepHours
	}
	got := Mean(view, schema.SleepHours)
	require.True(t, got.Defined)
	assert.InDelta(t, sum/float64(view.Len()), got.Value, 1e-9)
}

// ============================================================================
// FREQUENCY + CONTINGENCY TESTS
// ============================================================================

func TestValueCountsOrder(t *testing.T) {
	table := ValueCounts(sampleDataset().View(), schema.Platform)

	assert.Equal(t, schema.Platform, table.Dimension)
	assert.Equal(t, []Frequency{
		{Label: "Instagram", Count: 2},
		{Label: "TikTok", Count: 2},
		{Label: "Facebook", Count: 1},
		{Label: "YouTube", Count: 1},
	}, table.Rows)
	assert.Equal(t, 6, table.Total())
}

func TestValueCountsEmptyView(t *testing.T) {
	table := ValueCounts(ApplySelection(sampleDataset().View(), Selection{}), schema.Platform)
	assert.Empty(t, table.Rows)
	assert.NotNil(t, table.Rows)
}

func TestCrosstabZeroFilled(t *testing.T) {
	table := Crosstab(sampleDataset().View(), schema.Platform, schema.AcademicImpact, "Yes", "No")

	assert.Equal(t, []string{"Yes", "No"}, table.Columns)
	assert.Equal(t, []ContingencyRow{
		{Label: "Facebook", Counts: []int{0, 1}},
		{Label: "Instagram", Counts: []int{2, 0}},
		{Label: "TikTok", Counts: []int{1, 1}},
		{Label: "YouTube", Counts: []int{0, 1}},
	}, table.Rows)
	assert.Equal(t, 0, table.Count("Facebook", "Yes"))
	assert.Equal(t, 2, table.Count("Instagram", "Yes"))
}

func TestCrosstabSumsToViewLength(t *testing.T) {
	ds := NewDataset(genderSplitRows())
	all := FullSelection(ds)

	for _, g := range [][]string{all.Genders, {"Female"}, {"Male"}, {}} {
		view := ApplySelection(ds.View(), Selection{Genders: g, Levels: all.Levels, Statuses: all.Statuses})
		table := Crosstab(view, schema.Platform, schema.AcademicImpact, "Yes", "No")
		assert.Equal(t, view.Len(), table.Total(), "genders %v", g)
		assert.Equal(t, []string{"Yes", "No"}, table.Columns)
	}
}

func TestCrosstabExtraColumnsSorted(t *testing.T) {
	table := Crosstab(sampleDataset().View(), schema.AddictedScore, schema.Gender)

	assert.Equal(t, []string{"Female", "Male"}, table.Columns)
	labels := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"4", "5", "6", "7", "8", "9"}, labels)
}

// ============================================================================
// DISTRIBUTION TESTS
// ============================================================================

func TestHistogramOf(t *testing.T) {
	rows := make([]Row, 10)
	for i := range rows {
		rows[i] = surveyRow("Female", "Graduate", "Single", "Instagram", "No", float64(i), 5, 5, 7, 1)
	}
	h := HistogramOf(NewDataset(rows).View(), schema.DailyUsage, 10)

	require.Len(t, h.Bins, 10)
	assert.Equal(t, 0.0, h.Bins[0].Lower)
	assert.Equal(t, 9.0, h.Bins[9].Upper)
	for i, b := range h.Bins {
		assert.Equal(t, 1, b.Count, "bin %d", i)
	}
}

func TestHistogramConstantAndEmpty(t *testing.T) {
	rows := []Row{
		surveyRow("Female", "Graduate", "Single", "Instagram", "No", 3, 5, 5, 7, 1),
		surveyRow("Male", "Graduate", "Single", "Instagram", "No", 3, 5, 5, 7, 1),
	}
	h := HistogramOf(NewDataset(rows).View(), schema.DailyUsage, 4)
	total := 0
	for _, b := range h.Bins {
		total += b.Count
	}
	assert.Equal(t, 2, total)

	empty := HistogramOf(ApplySelection(NewDataset(rows).View(), Selection{}), schema.DailyUsage, 4)
	assert.Empty(t, empty.Bins)
}

func TestBoxStatsBy(t *testing.T) {
	var rows []Row
	for _, v := range []float64{1, 2, 3, 4, 5} {
		rows = append(rows, surveyRow("Female", "Graduate", "Single", "Instagram", "No", v, 5, 5, 7, 1))
	}
	rows = append(rows, surveyRow("Male", "Graduate", "Single", "Instagram", "No", 2.5, 5, 5, 7, 1))

	boxes := BoxStatsBy(NewDataset(rows).View(), schema.DailyUsage, schema.Gender)
	require.Len(t, boxes, 2)

	f := boxes[0]
	assert.Equal(t, "Female", f.Group)
	assert.Equal(t, 5, f.Count)
	assert.Equal(t, Defined(1), f.Min)
	assert.Equal(t, Defined(3), f.Median)
	assert.Equal(t, Defined(5), f.Max)
	assert.InDelta(t, 1.5, f.Q1.Value, 1e-9)
	assert.InDelta(t, 4.5, f.Q3.Value, 1e-9)

	m := boxes[1]
	assert.Equal(t, "Male", m.Group)
	assert.Equal(t, Defined(2.5), m.Median)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "1,234,567", FormatInt(1234567))
	assert.Equal(t, "-1,200", FormatInt(-1200))
}
