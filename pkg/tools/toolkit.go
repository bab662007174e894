// Package tools provides the MCP tool and resource surface over the
// warehouse client.
package tools

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
	"github.com/txn2/mcp-bigquery/pkg/metrics"
)

// Toolkit holds the per-process context passed to every handler: the
// warehouse client and resolved configuration. There is no module-level
// state; each call is independent.
type Toolkit struct {
	log    *slog.Logger
	client bigquery.Client
	cfg    bigquery.Config
}

// New creates a toolkit. cfg must already be validated and defaulted.
func New(log *slog.Logger, client bigquery.Client, cfg bigquery.Config) *Toolkit {
	if log == nil {
		log = slog.Default()
	}
	return &Toolkit{log: log, client: client, cfg: cfg}
}

// RegisterAll registers every tool and resource with the MCP server.
func (t *Toolkit) RegisterAll(s *mcp.Server) error {
	registrations := []func(*mcp.Server) error{
		t.registerQueryTool,
		t.registerGenerateSQLTool,
		t.registerAnalyzeTool,
		t.registerVisualizeTool,
		t.registerInsightsTool,
		t.registerResources,
	}
	for _, register := range registrations {
		if err := register(s); err != nil {
			return err
		}
	}
	return nil
}

// Tools returns the tool names provided by this toolkit.
func (*Toolkit) Tools() []string {
	return []string{
		"query",
		"generate_sql",
		"analyze_results",
		"generate_visualization",
		"get_schema_insights",
	}
}

// Close releases the warehouse client.
func (t *Toolkit) Close() error {
	if t.client != nil {
		if err := t.client.Close(); err != nil {
			return fmt.Errorf("closing warehouse client: %w", err)
		}
	}
	return nil
}

// textResult wraps text in a successful tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult wraps a business failure in an error-flagged tool result.
// Per-call faults are returned this way, never as Go errors, so they stay
// distinguishable from protocol-level failures.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error: "+format, args...)}},
		IsError: true,
	}
}

// observe records audit and metrics for one completed invocation.
func (t *Toolkit) observe(tool string, start time.Time, result *mcp.CallToolResult) {
	status := "success"
	if result != nil && result.IsError {
		status = "error"
	}
	duration := time.Since(start)
	metrics.ToolCallsTotal.WithLabelValues(tool, status).Inc()
	metrics.ToolCallDuration.WithLabelValues(tool).Observe(duration.Seconds())
	t.log.Info("tool call",
		"invocation_id", uuid.NewString(),
		"tool", tool,
		"status", status,
		"duration", duration,
	)
}
