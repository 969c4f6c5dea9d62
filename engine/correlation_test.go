package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/socialdash/schema"
)

// ============================================================================
// CORRELATION TESTS
// ============================================================================

func TestCorrelationMatrixSymmetricWithUnitDiagonal(t *testing.T) {
	m := CorrelationMatrixOf(NewDataset(genderSplitRows()).View(), CorrelationMeasures)

	require.Len(t, m.Cells, 5)
	assert.Equal(t, CorrelationMeasures, m.Measures)
	for i := range m.Cells {
		require.Len(t, m.Cells[i], 5)
		assert.Equal(t, Defined(1), m.Cells[i][i], "diagonal %s", m.Measures[i])
		for j := range m.Cells {
			assert.Equal(t, m.Cells[i][j], m.Cells[j][i])
			if m.Cells[i][j].Defined {
				assert.GreaterOrEqual(t, m.Cells[i][j].Value, -1.0)
				assert.LessOrEqual(t, m.Cells[i][j].Value, 1.0)
				assert.Equal(t, RoundTo2(m.Cells[i][j].Value), m.Cells[i][j].Value)
			}
		}
	}
}

func TestCorrelationPerfectLinear(t *testing.T) {
	var rows []Row
	for i := 1; i <= 5; i++ {
		x := float64(i)
		// usage rises with addiction, sleep falls with it
		rows = append(rows, surveyRow("Female", "Graduate", "Single", "TikTok", "Yes", 2*x, x, 10-x, 12-x, float64(i%2)))
	}
	m := CorrelationMatrixOf(NewDataset(rows).View(), CorrelationMeasures)

	assert.Equal(t, Defined(1), m.At(schema.AddictedScore, schema.DailyUsage))
	assert.Equal(t, Defined(-1), m.At(schema.AddictedScore, schema.MentalHealth))
	assert.Equal(t, Defined(-1), m.At(schema.DailyUsage, schema.SleepHours))
	assert.Equal(t, Defined(1), m.At(schema.MentalHealth, schema.SleepHours))
}

func TestCorrelationDegenerateColumnIsUndefined(t *testing.T) {
	rows := []Row{
		surveyRow("Female", "Graduate", "Single", "TikTok", "Yes", 1, 5, 7, 6, 2),
		surveyRow("Male", "Graduate", "Single", "TikTok", "Yes", 2, 6, 6, 6, 2),
		surveyRow("Male", "Graduate", "Single", "TikTok", "Yes", 3, 7, 5, 6, 2),
	}
	m := CorrelationMatrixOf(NewDataset(rows).View(), CorrelationMeasures)

	// sleep and conflicts are constant
	for _, key := range CorrelationMeasures {
		assert.False(t, m.At(schema.SleepHours, key).Defined, "sleep × %s", key)
		assert.False(t, m.At(key, schema.Conflicts).Defined, "%s × conflicts", key)
	}
	assert.Equal(t, Defined(1), m.At(schema.AddictedScore, schema.AddictedScore))
	assert.Equal(t, Defined(1), m.At(schema.AddictedScore, schema.DailyUsage))
}

func TestCorrelationTooFewRows(t *testing.T) {
	one := NewDataset(sampleRows()[:1]).View()
	empty := ApplySelection(sampleDataset().View(), Selection{})

	for name, view := range map[string]RecordView{"one row": one, "empty": empty} {
		t.Run(name, func(t *testing.T) {
			m := CorrelationMatrixOf(view, CorrelationMeasures)
			for i := range m.Cells {
				for j := range m.Cells[i] {
					assert.False(t, m.Cells[i][j].Defined)
				}
			}
		})
	}
}

func TestCorrelationUndefinedEncodesAsNull(t *testing.T) {
	m := CorrelationMatrixOf(NewDataset(sampleRows()[:1]).View(), []string{schema.AddictedScore})
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"measures":["Addicted_Score"],"cells":[[null]]}`, string(b))
}
