package helpers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/schema"
)

const surveyHeader = "Student_ID,Age,Gender,Academic_Level,Country,Avg_Daily_Usage_Hours,Most_Used_Platform," +
	"Affects_Academic_Performance,Sleep_Hours_Per_Night,Mental_Health_Score,Relationship_Status," +
	"Conflicts_Over_Social_Media,Addicted_Score"

var surveyRows = []string{
	"1,19,Female,Undergraduate,Bangladesh,5.2,Instagram,Yes,6.5,6,In Relationship,3,8",
	"2,22,Male,Graduate,India,2.1,Twitter,No,7.5,8,Single,0,3",
	"3,20,Female,Undergraduate,USA,6.0,TikTok,Yes,5.0,5,Complicated,4,9",
	"4,18,Male,High School,UK,3.0,YouTube,No,7.0,7,Single,1,5",
}

func surveyCSV(rows ...string) string {
	return surveyHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// ============================================================================
// PARSE TESTS
// ============================================================================

func TestParseCSV(t *testing.T) {
	ds, err := ParseCSV(strings.NewReader(surveyCSV(surveyRows...)))
	require.NoError(t, err)
	require.Equal(t, 4, ds.Len())

	assert.Equal(t, engine.Row{
		StudentID:          1,
		Age:                19,
		Gender:             "Female",
		AcademicLevel:      "Undergraduate",
		Country:            "Bangladesh",
		DailyUsageHours:    5.2,
		Platform:           "Instagram",
		AcademicImpact:     "Yes",
		SleepHours:         6.5,
		MentalHealthScore:  6,
		RelationshipStatus: "In Relationship",
		Conflicts:          3,
		AddictedScore:      8,
	}, ds.Row(0))
	assert.Equal(t, []string{"Female", "Male"}, ds.Labels(schema.Gender))
	assert.Equal(t, []string{"Undergraduate", "Graduate", "High School"}, ds.Labels(schema.AcademicLevel))
}

func TestParseCSVToleratesLayoutNoise(t *testing.T) {
	header := "\ufeff Gender ,Academic_Level,Avg_Daily_Usage_Hours,Most_Used_Platform,Affects_Academic_Performance," +
		"Sleep_Hours_Per_Night,Mental_Health_Score,Relationship_Status,Conflicts_Over_Social_Media,Addicted_Score,Notes"
	data := header + "\n" +
		"Female,Graduate, 4.5 ,Instagram,Yes,6,6, Single ,2,7,first\n" +
		"Male,Graduate,3,TikTok,No,7,7,Complicated,1,5,\n"

	ds, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	r := ds.Row(0)
	assert.Equal(t, "Female", r.Gender)
	assert.Equal(t, 4.5, r.DailyUsageHours)
	assert.Equal(t, "Single", r.RelationshipStatus)
	assert.Empty(t, r.Country)
	assert.Zero(t, r.StudentID)
}

func TestParseCSVRejectsBadInput(t *testing.T) {
	missingColumn := strings.Replace(surveyHeader, ",Addicted_Score", "", 1) + "\n" +
		"1,19,Female,Undergraduate,Bangladesh,5.2,Instagram,Yes,6.5,6,In Relationship,3\n"

	tests := []struct {
		name string
		data string
		want string
	}{
		{"missing column", missingColumn, "missing required column(s): Addicted_Score"},
		{"bad number", surveyCSV("1,19,Female,Undergraduate,BD,lots,Instagram,Yes,6.5,6,Single,3,8"), "row 1: Avg_Daily_Usage_Hours is not a number"},
		{"fractional score", surveyCSV(surveyRows[0], "2,22,Male,Graduate,IN,2.1,Twitter,No,7.5,8,Single,0,3.5"), "row 2: Addicted_Score must be a whole number"},
		{"empty gender", surveyCSV("1,19,,Undergraduate,BD,5.2,Instagram,Yes,6.5,6,Single,3,8"), "row 1: empty Gender"},
		{"empty score", surveyCSV("1,19,Female,Undergraduate,BD,5.2,Instagram,Yes,6.5,,Single,3,8"), "row 1: empty Mental_Health_Score"},
		{"infinite", surveyCSV("1,19,Female,Undergraduate,BD,Inf,Instagram,Yes,6.5,6,Single,3,8"), "is not a number"},
		{"header only", surveyHeader + "\n", ""},
		{"ragged row", surveyCSV("1,19,Female"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ParseCSV(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, ErrParse), "got %v", err)
			assert.False(t, errors.Is(err, ErrNotFound))
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

// ============================================================================
// LOAD TESTS
// ============================================================================

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(surveyCSV(surveyRows...)), 0o644))

	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())
}

func TestLoadCSVMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), path)
}

func TestLoadCSVParseErrorNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
}

// ============================================================================
// PROFILE TESTS
// ============================================================================

func TestProfileReader(t *testing.T) {
	cols, err := ProfileReader(strings.NewReader(surveyCSV(surveyRows...)))
	require.NoError(t, err)
	require.Len(t, cols, 13)

	byName := make(map[string]ColumnProfile, len(cols))
	for _, c := range cols {
		byName[c.Name] = c
	}

	age := byName["Age"]
	assert.Equal(t, "int", age.Type)
	assert.Equal(t, 4, age.NonNull)
	assert.Equal(t, 4, age.Unique)
	assert.InDelta(t, 19.75, age.Mean.Value, 1e-9)
	assert.Equal(t, engine.Defined(18), age.Min)
	assert.Equal(t, engine.Defined(22), age.Max)
	assert.True(t, age.Std.Defined)

	gender := byName["Gender"]
	assert.Equal(t, "string", gender.Type)
	assert.Equal(t, 2, gender.Unique)
	assert.False(t, gender.Mean.Defined)

	assert.Equal(t, "float", byName["Avg_Daily_Usage_Hours"].Type)
}

func TestProfileMissingFile(t *testing.T) {
	_, err := Profile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
