package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNumericStats_Basic(t *testing.T) {
	rows := []map[string]any{
		{"a": float64(1)},
		{"a": float64(2)},
		{"a": float64(3)},
		{"a": float64(4)},
	}
	stats := ComputeNumericStats(rows, "a")
	require.NotNil(t, stats)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, float64(1), stats.Min)
	assert.Equal(t, float64(4), stats.Max)
	assert.Equal(t, 2.5, stats.Mean)
	assert.Equal(t, 2.5, stats.Median)
	assert.Equal(t, float64(10), stats.Sum)
}

func TestComputeNumericStats_OddCountMedian(t *testing.T) {
	rows := []map[string]any{
		{"a": float64(9)},
		{"a": float64(1)},
		{"a": float64(5)},
	}
	stats := ComputeNumericStats(rows, "a")
	require.NotNil(t, stats)
	assert.Equal(t, float64(5), stats.Median)
}

func TestComputeNumericStats_SkipsNulls(t *testing.T) {
	rows := []map[string]any{
		{"a": float64(2)},
		{"a": nil},
		{"a": float64(4)},
	}
	stats := ComputeNumericStats(rows, "a")
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, float64(6), stats.Sum)
	assert.Equal(t, float64(3), stats.Mean)
}

func TestComputeNumericStats_NoValues(t *testing.T) {
	rows := []map[string]any{{"a": nil}, {"a": "x"}}
	assert.Nil(t, ComputeNumericStats(rows, "a"))
}

func TestComputeCategoricalSummary(t *testing.T) {
	rows := []map[string]any{
		{"c": "x"},
		{"c": "x"},
		{"c": "y"},
	}
	summary := ComputeCategoricalSummary(rows, "c")
	assert.Equal(t, 2, summary.Distinct)
	require.Len(t, summary.Top, 2)
	assert.Equal(t, ValueCount{Value: "x", Count: 2, Percent: 66.67}, summary.Top[0])
	assert.Equal(t, ValueCount{Value: "y", Count: 1, Percent: 33.33}, summary.Top[1])
}

func TestComputeCategoricalSummary_TiesKeepFirstOccurrenceOrder(t *testing.T) {
	rows := []map[string]any{
		{"c": "beta"},
		{"c": "alpha"},
		{"c": "beta"},
		{"c": "alpha"},
	}
	summary := ComputeCategoricalSummary(rows, "c")
	require.Len(t, summary.Top, 2)
	assert.Equal(t, "beta", summary.Top[0].Value)
	assert.Equal(t, "alpha", summary.Top[1].Value)
}

func TestComputeCategoricalSummary_TopFiveOnly(t *testing.T) {
	var rows []map[string]any
	for _, v := range []string{"a", "a", "a", "b", "b", "c", "c", "d", "e", "f"} {
		rows = append(rows, map[string]any{"c": v})
	}
	summary := ComputeCategoricalSummary(rows, "c")
	assert.Equal(t, 6, summary.Distinct)
	assert.Len(t, summary.Top, 5)
	assert.Equal(t, "a", summary.Top[0].Value)
}

func TestComputeCategoricalSummary_SkipsNullsButPercentsOverAllRows(t *testing.T) {
	rows := []map[string]any{
		{"c": "x"},
		{"c": nil},
		{"c": "x"},
		{"c": nil},
	}
	summary := ComputeCategoricalSummary(rows, "c")
	require.Len(t, summary.Top, 1)
	assert.Equal(t, 2, summary.Top[0].Count)
	assert.Equal(t, 50.0, summary.Top[0].Percent)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.13}, // exact half rounds up, not to even
		{-0.125, -0.13},
		{66.666666, 66.67},
		{33.333333, 33.33},
		{2.5, 2.5},
		{0, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "2.5", FormatNumber(2.5))
	assert.Equal(t, "10", FormatNumber(10))
	assert.Equal(t, "66.67", FormatNumber(66.666666))
}
