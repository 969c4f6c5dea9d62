package helpers

import (
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/spektr-org/socialdash/engine"
)

// ============================================================================
// PROFILE: Column overview of a raw survey file
// ============================================================================
// A quick look at the file before any typing: inferred column type, how many
// cells are filled, how many distinct values, and summary statistics for the
// numeric columns. Used by `socialdash -describe`.
// ============================================================================

// ColumnProfile summarizes one CSV column.
type ColumnProfile struct {
	Name    string        `json:"name"`
	Type    string        `json:"type"` // "string", "int", "float", "bool"
	NonNull int           `json:"nonNull"`
	Missing int           `json:"missing"`
	Unique  int           `json:"unique"`
	Mean    engine.Metric `json:"mean"`
	Std     engine.Metric `json:"std"`
	Min     engine.Metric `json:"min"`
	Max     engine.Metric `json:"max"`
}

// Profile reads the file at path and profiles every column.
func Profile(path string) ([]ColumnProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := ErrParse
		if os.IsNotExist(err) {
			kind = ErrNotFound
		}
		return nil, &LoadError{Path: path, Kind: kind, Err: err}
	}
	defer f.Close()

	profiles, err := ProfileReader(f)
	if le, ok := err.(*LoadError); ok {
		le.Path = path
	}
	return profiles, err
}

// ProfileReader profiles CSV data with gota's type detection.
func ProfileReader(r io.Reader) ([]ColumnProfile, error) {
	df := dataframe.ReadCSV(r, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, parseError(errors.Wrap(df.Err, "read csv"))
	}
	return ProfileFrame(df), nil
}

// ProfileFrame profiles every column of a loaded frame, in header order.
func ProfileFrame(df dataframe.DataFrame) []ColumnProfile {
	out := make([]ColumnProfile, 0, df.Ncol())
	for _, name := range df.Names() {
		out = append(out, profileSeries(df.Col(name)))
	}
	return out
}

func profileSeries(s series.Series) ColumnProfile {
	p := ColumnProfile{Name: s.Name, Type: string(s.Type())}

	nan := s.IsNaN()
	seen := make(map[string]bool)
	for i, v := range s.Records() {
		if nan[i] || strings.TrimSpace(v) == "" {
			p.Missing++
			continue
		}
		p.NonNull++
		seen[v] = true
	}
	p.Unique = len(seen)

	if p.NonNull == 0 {
		return p
	}
	switch s.Type() {
	case series.Int, series.Float:
		p.Mean = engine.MetricOf(s.Mean())
		p.Min = engine.MetricOf(s.Min())
		p.Max = engine.MetricOf(s.Max())
		if p.NonNull > 1 {
			p.Std = engine.MetricOf(s.StdDev())
		}
	}
	return p
}
