package schema

// ============================================================================
// SCHEMA: Describes the shape of the survey dataset
// ============================================================================
// The survey has a fixed header. The loader uses this schema to type columns
// and to reject files that are missing required fields. The engine and the
// rendering layer use the display names and units.
// ============================================================================

// Column names as they appear in the survey header.
const (
	StudentID         = "Student_ID"
	Age               = "Age"
	Gender            = "Gender"
	AcademicLevel     = "Academic_Level"
	Country           = "Country"
	DailyUsage        = "Avg_Daily_Usage_Hours"
	Platform          = "Most_Used_Platform"
	AcademicImpact    = "Affects_Academic_Performance"
	SleepHours        = "Sleep_Hours_Per_Night"
	MentalHealth      = "Mental_Health_Score"
	RelationshipState = "Relationship_Status"
	Conflicts         = "Conflicts_Over_Social_Media"
	AddictedScore     = "Addicted_Score"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field used for grouping/filtering.
type DimensionMeta struct {
	Key          string   `json:"key"`
	DisplayName  string   `json:"displayName"`
	Description  string   `json:"description,omitempty"`
	SampleValues []string `json:"sampleValues,omitempty"`
	Groupable    bool     `json:"groupable"`
	Filterable   bool     `json:"filterable"`
	Required     bool     `json:"required"`
}

// MeasureMeta describes a numeric field used for aggregation.
type MeasureMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"` // "hours", "points", "count", "years"
	Integer     bool   `json:"integer,omitempty"`
	Required    bool   `json:"required"`
}

// DefaultDimension creates a DimensionMeta with sensible defaults.
func DefaultDimension(key, displayName string, samples []string) DimensionMeta {
	return DimensionMeta{
		Key:          key,
		DisplayName:  displayName,
		SampleValues: samples,
		Groupable:    true,
		Required:     true,
	}
}

// DefaultMeasure creates a MeasureMeta with sensible defaults.
func DefaultMeasure(key, displayName, unit string) MeasureMeta {
	return MeasureMeta{
		Key:         key,
		DisplayName: displayName,
		Unit:        unit,
		Required:    true,
	}
}

// Survey returns the schema of the "Students Social Media Addiction" dataset.
func Survey() Config {
	gender := DefaultDimension(Gender, "Gender", []string{"Female", "Male"})
	gender.Filterable = true
	level := DefaultDimension(AcademicLevel, "Academic Level", []string{"High School", "Undergraduate", "Graduate"})
	level.Filterable = true
	status := DefaultDimension(RelationshipState, "Relationship Status", []string{"Single", "In Relationship", "Complicated"})
	status.Filterable = true

	country := DefaultDimension(Country, "Country", nil)
	country.Required = false

	studentID := DefaultMeasure(StudentID, "Student ID", "")
	studentID.Integer = true
	studentID.Required = false
	age := DefaultMeasure(Age, "Age", "years")
	age.Integer = true
	age.Required = false

	addicted := DefaultMeasure(AddictedScore, "Addiction Score", "points")
	addicted.Integer = true
	mental := DefaultMeasure(MentalHealth, "Mental Health Score", "points")
	mental.Integer = true
	conflicts := DefaultMeasure(Conflicts, "Conflicts Over Social Media", "count")
	conflicts.Integer = true

	return Config{
		Name:        "Students Social Media Addiction",
		Version:     "1.0",
		Description: "One row per surveyed student: demographics, platform habits, sleep and wellbeing scores.",
		Dimensions: []DimensionMeta{
			gender,
			level,
			country,
			DefaultDimension(Platform, "Most Used Platform", []string{"Instagram", "TikTok", "Facebook", "YouTube"}),
			DefaultDimension(AcademicImpact, "Affects Academic Performance", []string{"Yes", "No"}),
			status,
		},
		Measures: []MeasureMeta{
			studentID,
			age,
			DefaultMeasure(DailyUsage, "Average Daily Usage (hours)", "hours"),
			DefaultMeasure(SleepHours, "Sleep Hours per Night", "hours"),
			mental,
			conflicts,
			addicted,
		},
	}
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// FilterKeys returns the dimensions exposed as dashboard filters, in display order.
func (c Config) FilterKeys() []string {
	var keys []string
	for _, d := range c.Dimensions {
		if d.Filterable {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// DisplayName returns the display name for a dimension or measure key.
// Unknown keys are humanized from their column name.
func (c Config) DisplayName(key string) string {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d.DisplayName
		}
	}
	for _, m := range c.Measures {
		if m.Key == key {
			return m.DisplayName
		}
	}
	return toDisplayName(key)
}

// Measure looks up a measure by key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// Dimension looks up a dimension by key.
func (c Config) Dimension(key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}
