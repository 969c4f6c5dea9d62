package helpers

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/spektr-org/socialdash/engine"
	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// CSV LOADER: Parses the survey CSV into an engine.Dataset
// ============================================================================
// The file is read once at startup. Every column is loaded as text through
// gota, then typed against the survey schema so that a bad cell is reported
// with its row and column instead of silently becoming zero.
//
// Any failure is fatal for the caller: there is no partial dataset.
// ============================================================================

// Load failure kinds. Match with errors.Is.
var (
	ErrNotFound = errors.New("dataset file not found")
	ErrParse    = errors.New("dataset file is malformed")
)

// LoadError describes why a dataset could not be loaded.
type LoadError struct {
	Path string // file path, or "" when parsing a reader
	Kind error  // ErrNotFound or ErrParse
	Err  error  // underlying cause
}

func (e *LoadError) Error() string {
	src := e.Path
	if src == "" {
		src = "<input>"
	}
	if e.Err == nil {
		return fmt.Sprintf("load %s: %v", src, e.Kind)
	}
	return fmt.Sprintf("load %s: %v: %v", src, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }

// Is matches the failure kind.
func (e *LoadError) Is(target error) bool { return target == e.Kind }

// LoadCSV reads the survey file at path.
func LoadCSV(path string) (*engine.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		kind := ErrParse
		if os.IsNotExist(err) {
			kind = ErrNotFound
		}
		return nil, &LoadError{Path: path, Kind: kind, Err: err}
	}

	ds, err := ParseCSV(bytes.NewReader(data))
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, err
	}

	log.Printf("📂 Socialdash: loaded %d rows from %s", ds.Len(), path)
	return ds, nil
}

// ParseCSV parses survey CSV data. The header must carry every required
// schema column; extra columns are ignored.
func ParseCSV(r io.Reader) (*engine.Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, parseError(errors.Wrap(df.Err, "read csv"))
	}

	rows, err := frameRows(df, schema.Survey())
	if err != nil {
		return nil, parseError(err)
	}
	if len(rows) == 0 {
		return nil, parseError(errors.New("no data rows"))
	}
	return engine.NewDataset(rows), nil
}

func parseError(err error) error {
	return &LoadError{Kind: ErrParse, Err: err}
}

// frameRows types every row of a text-only frame against the schema.
func frameRows(df dataframe.DataFrame, sch schema.Config) ([]engine.Row, error) {
	names := df.Names()
	report := sch.CheckHeader(names)
	if !report.OK() {
		return nil, report.Err()
	}

	cols := make(map[string][]string, len(report.Present))
	missing := make(map[string][]bool, len(report.Present))
	for _, key := range report.Present {
		s := df.Col(names[report.Index[key]])
		cols[key] = s.Records()
		missing[key] = s.IsNaN()
	}

	text := func(i int, key string) (string, error) {
		vals, ok := cols[key]
		if !ok {
			return "", nil
		}
		v := strings.TrimSpace(vals[i])
		if missing[key][i] || v == "" {
			if d, ok := sch.Dimension(key); ok && !d.Required {
				return "", nil
			}
			return "", errors.Errorf("row %d: empty %s", i+1, key)
		}
		return v, nil
	}

	number := func(i int, key string) (float64, error) {
		vals, ok := cols[key]
		if !ok {
			return 0, nil
		}
		m, _ := sch.Measure(key)
		v := strings.TrimSpace(vals[i])
		if missing[key][i] || v == "" {
			if !m.Required {
				return 0, nil
			}
			return 0, errors.Errorf("row %d: empty %s", i+1, key)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.Errorf("row %d: %s is not a number: %q", i+1, key, v)
		}
		if m.Integer && f != math.Trunc(f) {
			return 0, errors.Errorf("row %d: %s must be a whole number: %q", i+1, key, v)
		}
		return f, nil
	}

	rows := make([]engine.Row, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		var row engine.Row
		var err error
		str := func(key string, dst *string) {
			if err == nil {
				*dst, err = text(i, key)
			}
		}
		num := func(key string, dst *float64) {
			if err == nil {
				*dst, err = number(i, key)
			}
		}

		str(schema.Gender, &row.Gender)
		str(schema.AcademicLevel, &row.AcademicLevel)
		str(schema.Country, &row.Country)
		str(schema.Platform, &row.Platform)
		str(schema.AcademicImpact, &row.AcademicImpact)
		str(schema.RelationshipState, &row.RelationshipStatus)
		num(schema.DailyUsage, &row.DailyUsageHours)
		num(schema.SleepHours, &row.SleepHours)
		num(schema.MentalHealth, &row.MentalHealthScore)
		num(schema.Conflicts, &row.Conflicts)
		num(schema.AddictedScore, &row.AddictedScore)

		var id, age float64
		num(schema.StudentID, &id)
		num(schema.Age, &age)
		if err != nil {
			return nil, err
		}
		row.StudentID, row.Age = int(id), int(age)

		rows = append(rows, row)
	}
	return rows, nil
}
