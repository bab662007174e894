package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/analyze"
	"github.com/txn2/mcp-bigquery/pkg/visualize"
)

// VisualizeInput is the generate_visualization tool's arguments.
type VisualizeInput struct {
	Data  string `json:"data"`
	Type  string `json:"type,omitempty"`
	Title string `json:"title,omitempty"`
}

// registerVisualizeTool registers the chart document generator.
func (t *Toolkit) registerVisualizeTool(s *mcp.Server) error {
	in, err := jsonschema.For[VisualizeInput](nil)
	if err != nil {
		return fmt.Errorf("creating generate_visualization input schema: %w", err)
	}

	mcp.AddTool(s, &mcp.Tool{
		Name: "generate_visualization",
		Description: "Render a JSON array of row records as a self-contained HTML chart document. " +
			"Supported types: bar (default), line, pie, scatter. Bar and line charts show the " +
			"first 20 rows; the document includes a table of the first 10 rows.",
		InputSchema: in,
	}, func(_ context.Context, _ *mcp.CallToolRequest, input VisualizeInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		result := t.handleVisualize(input)
		t.observe("generate_visualization", start, result)
		return result, nil, nil
	})
	return nil
}

// handleVisualize parses rows and renders the chart document.
func (t *Toolkit) handleVisualize(input VisualizeInput) *mcp.CallToolResult {
	rows, columns, err := analyze.ParseRows(input.Data)
	if err != nil {
		return errorResult("%v", err)
	}

	data := visualize.Build(rows, columns, visualize.ParseKind(input.Type), input.Title)
	doc, err := visualize.RenderDocument(data, rows, columns)
	if err != nil {
		return errorResult("%v", err)
	}
	return textResult(doc)
}
