package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_NumericReport(t *testing.T) {
	report, err := Summarize(`[{"a":1},{"a":2},{"a":3},{"a":4}]`, "")
	require.NoError(t, err)
	assert.Contains(t, report, "Rows: 4, Columns: 1")
	assert.Contains(t, report, "a: numeric")
	assert.Contains(t, report, "min=1, max=4, mean=2.5, median=2.5, sum=10")
}

func TestSummarize_CategoricalReport(t *testing.T) {
	report, err := Summarize(`[{"c":"x"},{"c":"x"},{"c":"y"}]`, "")
	require.NoError(t, err)
	assert.Contains(t, report, "c: 2 distinct value(s)")
	assert.Contains(t, report, "x: 2 (66.67%)")
	assert.Contains(t, report, "y: 1 (33.33%)")
}

func TestSummarize_MixedColumns(t *testing.T) {
	report, err := Summarize(
		`[{"region":"west","sales":100,"active":true,"day":"2024-01-01"},`+
			`{"region":"east","sales":50,"active":false,"day":"2024-01-02"}]`, "")
	require.NoError(t, err)
	assert.Contains(t, report, "region: string")
	assert.Contains(t, report, "sales: numeric")
	assert.Contains(t, report, "active: boolean")
	assert.Contains(t, report, "day: date")
}

func TestSummarize_FocusTrends(t *testing.T) {
	report, err := Summarize(`[{"a":1},{"a":4}]`, FocusTrends)
	require.NoError(t, err)
	assert.Contains(t, report, "Focus: trends")
}

func TestSummarize_UnrecognizedFocusOmitted(t *testing.T) {
	report, err := Summarize(`[{"a":1},{"a":4}]`, Focus("vibes"))
	require.NoError(t, err)
	assert.NotContains(t, report, "Focus:")
}

func TestSummarize_BadInputIsError(t *testing.T) {
	for _, input := range []string{`{}`, `[]`, `nope`, ``} {
		_, err := Summarize(input, "")
		assert.Error(t, err, "input %q", input)
	}
}

func TestSummarize_CategoricalCapAtFiveColumns(t *testing.T) {
	report, err := Summarize(
		`[{"c1":"a","c2":"a","c3":"a","c4":"a","c5":"a","c6":"a"}]`, "")
	require.NoError(t, err)
	assert.Contains(t, report, "c5: 1 distinct")
	assert.NotContains(t, report, "c6: 1 distinct")
}

func TestParseFocus(t *testing.T) {
	assert.Equal(t, FocusTrends, ParseFocus("trends"))
	assert.Equal(t, FocusOutliers, ParseFocus(" OUTLIERS "))
	assert.Equal(t, FocusDistribution, ParseFocus("distribution"))
	assert.Equal(t, Focus(""), ParseFocus("show me everything"))
	assert.Equal(t, Focus(""), ParseFocus(""))
}
