package engine

import (
	"fmt"
	"strings"
)

// ============================================================================
// TEXT BUILDER: One-line summaries for a Result
// ============================================================================

// BuildReply summarizes a Result in one sentence.
func BuildReply(r *Result) string {
	if r.Empty {
		if r.Selection.IsEmpty() {
			return "No data: at least one filter has nothing selected."
		}
		return "No data: no students match the selected filters."
	}

	parts := []string{
		fmt.Sprintf("%s of %s students", FormatInt(r.Matched), FormatInt(r.Total)),
		fmt.Sprintf("average addiction score %s", r.KPIs.AddictionScore.Format(2)),
		fmt.Sprintf("average daily usage %s hours", r.KPIs.DailyUsage.Format(2)),
		fmt.Sprintf("average mental health score %s", r.KPIs.MentalHealth.Format(2)),
	}
	if len(r.PlatformCounts.Rows) > 0 {
		top := r.PlatformCounts.Rows[0]
		parts = append(parts, fmt.Sprintf("top platform %s (%d)", top.Label, top.Count))
	}
	return strings.Join(parts, ", ") + "."
}

// DescribeSelection renders a selection as "Gender: A, B; Academic Level: ...".
func DescribeSelection(sel Selection) string {
	describe := func(label string, vals []string) string {
		if len(vals) == 0 {
			return label + ": none"
		}
		return label + ": " + strings.Join(vals, ", ")
	}
	return strings.Join([]string{
		describe("Gender", sel.Genders),
		describe("Academic Level", sel.Levels),
		describe("Relationship Status", sel.Statuses),
	}, "; ")
}
