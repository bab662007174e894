package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/analyze"
)

// AnalyzeInput is the analyze_results tool's arguments. Data is a
// JSON-encoded array of row records, typically the output of query.
type AnalyzeInput struct {
	Data  string `json:"data"`
	Focus string `json:"focus,omitempty"`
}

// registerAnalyzeTool registers the tabular summarizer.
func (t *Toolkit) registerAnalyzeTool(s *mcp.Server) error {
	in, err := jsonschema.For[AnalyzeInput](nil)
	if err != nil {
		return fmt.Errorf("creating analyze_results input schema: %w", err)
	}

	mcp.AddTool(s, &mcp.Tool{
		Name: "analyze_results",
		Description: "Compute summary statistics over a JSON array of row records: column types " +
			"(inferred from the first row), numeric min/max/mean/median/sum, and top values for " +
			"categorical columns. Optional focus: trends, outliers, or distribution.",
		InputSchema: in,
	}, func(_ context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		result := t.handleAnalyze(input)
		t.observe("analyze_results", start, result)
		return result, nil, nil
	})
	return nil
}

// handleAnalyze runs the summarizer; malformed input is a recoverable result.
func (t *Toolkit) handleAnalyze(input AnalyzeInput) *mcp.CallToolResult {
	report, err := analyze.Summarize(input.Data, analyze.ParseFocus(input.Focus))
	if err != nil {
		return errorResult("%v", err)
	}
	return textResult(report)
}
