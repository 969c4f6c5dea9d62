package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var surveyHeader = []string{
	"Student_ID", "Age", "Gender", "Academic_Level", "Country", "Avg_Daily_Usage_Hours",
	"Most_Used_Platform", "Affects_Academic_Performance", "Sleep_Hours_Per_Night",
	"Mental_Health_Score", "Relationship_Status", "Conflicts_Over_Social_Media", "Addicted_Score",
}

func TestSurveyFilterKeys(t *testing.T) {
	assert.Equal(t, []string{Gender, AcademicLevel, RelationshipState}, Survey().FilterKeys())
}

func TestDisplayName(t *testing.T) {
	s := Survey()
	assert.Equal(t, "Addiction Score", s.DisplayName(AddictedScore))
	assert.Equal(t, "Relationship Status", s.DisplayName(RelationshipState))
	assert.Equal(t, "Favourite Snack", s.DisplayName("favourite_snack"))
	assert.Equal(t, "Already Spaced", s.DisplayName("Already Spaced"))
}

func TestMeasureLookup(t *testing.T) {
	m, ok := Survey().Measure(AddictedScore)
	require.True(t, ok)
	assert.True(t, m.Integer)

	m, ok = Survey().Measure(DailyUsage)
	require.True(t, ok)
	assert.False(t, m.Integer)
	assert.Equal(t, "hours", m.Unit)

	_, ok = Survey().Measure(Gender)
	assert.False(t, ok)
	_, ok = Survey().Dimension(Gender)
	assert.True(t, ok)
}

// ============================================================================
// HEADER CHECK TESTS
// ============================================================================

func TestCheckHeaderComplete(t *testing.T) {
	report := Survey().CheckHeader(surveyHeader)

	assert.True(t, report.OK())
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Extra)
	assert.Len(t, report.Present, 13)
	assert.Equal(t, 2, report.Index[Gender])
	assert.Equal(t, 12, report.Index[AddictedScore])
}

func TestCheckHeaderOptionalColumns(t *testing.T) {
	header := []string{
		"Gender", "Academic_Level", "Avg_Daily_Usage_Hours", "Most_Used_Platform",
		"Affects_Academic_Performance", "Sleep_Hours_Per_Night", "Mental_Health_Score",
		"Relationship_Status", "Conflicts_Over_Social_Media", "Addicted_Score",
	}
	report := Survey().CheckHeader(header)
	assert.True(t, report.OK())
	assert.NotContains(t, report.Index, Country)
}

func TestCheckHeaderMissingAndExtra(t *testing.T) {
	header := append([]string{"Favourite_Color"}, surveyHeader[:9]...)
	report := Survey().CheckHeader(header)

	assert.False(t, report.OK())
	assert.Equal(t, []string{"Favourite_Color"}, report.Extra)
	assert.Equal(t, []string{RelationshipState, MentalHealth, Conflicts, AddictedScore}, report.Missing)
	assert.EqualError(t, report.Err(), "missing required column(s): Relationship_Status, Mental_Health_Score, Conflicts_Over_Social_Media, Addicted_Score")
}

func TestCheckHeaderTrimsBOMAndWhitespace(t *testing.T) {
	header := append([]string(nil), surveyHeader...)
	header[0] = "\ufeffStudent_ID"
	header[2] = "  Gender "

	report := Survey().CheckHeader(header)
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Index[StudentID])
	assert.Equal(t, 2, report.Index[Gender])
}

func TestCheckHeaderIsCaseSensitive(t *testing.T) {
	header := append([]string(nil), surveyHeader...)
	header[2] = "gender"

	report := Survey().CheckHeader(header)
	assert.Equal(t, []string{Gender}, report.Missing)
	assert.Equal(t, []string{"gender"}, report.Extra)
}
