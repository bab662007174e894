package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleAnalyze_Report(t *testing.T) {
	toolkit := newTestToolkit(&fakeClient{})

	result := toolkit.handleAnalyze(AnalyzeInput{Data: `[{"a":1},{"a":2},{"a":3},{"a":4}]`})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "min=1, max=4, mean=2.5, median=2.5, sum=10")
}

func TestHandleAnalyze_FocusPassthrough(t *testing.T) {
	toolkit := newTestToolkit(&fakeClient{})

	result := toolkit.handleAnalyze(AnalyzeInput{Data: `[{"a":1},{"a":4}]`, Focus: "trends"})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Focus: trends")
}

func TestHandleAnalyze_BadInputIsErrorResult(t *testing.T) {
	toolkit := newTestToolkit(&fakeClient{})

	for _, data := range []string{`{}`, `[]`, `garbage`, ``} {
		result := toolkit.handleAnalyze(AnalyzeInput{Data: data})
		assert.True(t, result.IsError, "data %q should be an error result", data)
	}
}
