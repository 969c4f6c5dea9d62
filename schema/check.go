package schema

import (
	"fmt"
	"strings"
)

// ============================================================================
// HEADER CHECK: Validates a CSV header against the survey schema
// ============================================================================
// The survey has no versioning or migration: a file either carries every
// required column or it is rejected. Extra columns are tolerated and ignored.
// Matching is exact after trimming surrounding whitespace (and a UTF-8 BOM on
// the first cell, which spreadsheet exports like to add).
// ============================================================================

// HeaderReport is the outcome of checking a header row.
type HeaderReport struct {
	Present []string       // schema keys found in the header
	Missing []string       // required schema keys not found
	Extra   []string       // header cells that are not part of the schema
	Index   map[string]int // schema key → column position
}

// OK reports whether every required column is present.
func (r HeaderReport) OK() bool { return len(r.Missing) == 0 }

// Err returns a descriptive error when required columns are missing, nil otherwise.
func (r HeaderReport) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("missing required column(s): %s", strings.Join(r.Missing, ", "))
}

// CheckHeader compares a header row against the schema.
func (c Config) CheckHeader(headers []string) HeaderReport {
	report := HeaderReport{Index: make(map[string]int, len(headers))}

	known := make(map[string]bool, len(c.Dimensions)+len(c.Measures))
	for _, k := range c.DimensionKeys() {
		known[k] = true
	}
	for _, k := range c.MeasureKeys() {
		known[k] = true
	}

	for i, h := range headers {
		key := cleanHeader(h)
		if !known[key] {
			report.Extra = append(report.Extra, key)
			continue
		}
		if _, dup := report.Index[key]; dup {
			continue
		}
		report.Index[key] = i
		report.Present = append(report.Present, key)
	}

	for _, d := range c.Dimensions {
		if _, ok := report.Index[d.Key]; !ok && d.Required {
			report.Missing = append(report.Missing, d.Key)
		}
	}
	for _, m := range c.Measures {
		if _, ok := report.Index[m.Key]; !ok && m.Required {
			report.Missing = append(report.Missing, m.Key)
		}
	}

	return report
}

func cleanHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.TrimSpace(h)
}

// toDisplayName cleans a header for human display.
// "Sleep_Hours_Per_Night" → "Sleep Hours Per Night"
func toDisplayName(s string) string {
	if strings.Contains(s, " ") {
		return strings.TrimSpace(s)
	}

	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
	}
	return strings.Join(words, " ")
}
