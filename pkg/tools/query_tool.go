package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
	"github.com/txn2/mcp-bigquery/pkg/guard"
	"github.com/txn2/mcp-bigquery/pkg/metrics"
)

// QueryInput is the query tool's arguments. The billing cap arrives as text
// for compatibility with string-only callers.
type QueryInput struct {
	SQL                string `json:"sql"`
	MaximumBytesBilled string `json:"maximumBytesBilled,omitempty"`
}

// registerQueryTool registers the read-only query gateway.
func (t *Toolkit) registerQueryTool(s *mcp.Server) error {
	in, err := jsonschema.For[QueryInput](nil)
	if err != nil {
		return fmt.Errorf("creating query input schema: %w", err)
	}

	mcp.AddTool(s, &mcp.Tool{
		Name: "query",
		Description: "Execute a read-only BigQuery SQL query. Write statements are rejected. " +
			"INFORMATION_SCHEMA queries must name a dataset, e.g. FROM dataset.INFORMATION_SCHEMA.TABLES. " +
			"maximumBytesBilled caps scanned bytes (default 1 GiB).",
		InputSchema: in,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		result := t.handleQuery(ctx, input)
		t.observe("query", start, result)
		return result, nil, nil
	})
	return nil
}

// handleQuery validates, rewrites and forwards one statement. Every failure
// is a recoverable tool result; nothing is retried.
func (t *Toolkit) handleQuery(ctx context.Context, input QueryInput) *mcp.CallToolResult {
	if err := guard.CheckReadOnly(input.SQL); err != nil {
		return errorResult("%v", err)
	}

	sql, err := guard.QualifyInformationSchema(input.SQL, t.cfg.ProjectID)
	if err != nil {
		return errorResult("%v", err)
	}

	maxBytes, err := parseMaxBytes(input.MaximumBytesBilled, t.cfg.MaxBytesBilled)
	if err != nil {
		return errorResult("%v", err)
	}
	metrics.QueryBytesBilledCap.Observe(float64(maxBytes))

	rows, err := t.client.RunQuery(ctx, bigquery.QueryRequest{
		SQL:            sql,
		Location:       t.cfg.Location,
		MaxBytesBilled: maxBytes,
	})
	if err != nil {
		// Warehouse-side failures are business errors, not transport faults.
		return errorResult("query failed: %v", err)
	}

	if len(rows) == 0 {
		return textResult("Query returned no rows.")
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return errorResult("serializing rows: %v", err)
	}
	return textResult(string(out))
}

// parseMaxBytes resolves the billing cap argument against the configured
// default. A non-numeric or non-positive value is a usage error.
func parseMaxBytes(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("maximumBytesBilled must be a positive integer, got %q", raw)
	}
	return n, nil
}
