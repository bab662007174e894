package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
)

// wideTableColumns is the column count beyond which a table is flagged wide.
const wideTableColumns = 50

// InsightsInput is the get_schema_insights tool's arguments. An empty
// dataset reports on every dataset in the project.
type InsightsInput struct {
	Dataset string `json:"dataset,omitempty"`
}

// registerInsightsTool registers the schema report tool.
func (t *Toolkit) registerInsightsTool(s *mcp.Server) error {
	in, err := jsonschema.For[InsightsInput](nil)
	if err != nil {
		return fmt.Errorf("creating get_schema_insights input schema: %w", err)
	}

	mcp.AddTool(s, &mcp.Tool{
		Name: "get_schema_insights",
		Description: "Report the tables in a dataset (or every dataset) with row counts, field " +
			"summaries and heuristic observations. Dataset and table order follows the " +
			"warehouse's enumeration order.",
		InputSchema: in,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input InsightsInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		result := t.handleInsights(ctx, input)
		t.observe("get_schema_insights", start, result)
		return result, nil, nil
	})
	return nil
}

// handleInsights fans out dataset -> tables -> metadata and renders the
// report. A single failed remote call aborts the invocation; nothing is
// retried.
func (t *Toolkit) handleInsights(ctx context.Context, input InsightsInput) *mcp.CallToolResult {
	datasets := []string{strings.TrimSpace(input.Dataset)}
	if datasets[0] == "" {
		var err error
		datasets, err = t.client.ListDatasets(ctx)
		if err != nil {
			return errorResult("listing datasets: %v", err)
		}
		if len(datasets) == 0 {
			return textResult(fmt.Sprintf("Project %s has no datasets.", t.cfg.ProjectID))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Schema Insights for project %s\n", t.cfg.ProjectID)

	for _, dataset := range datasets {
		tables, err := t.client.ListTables(ctx, dataset)
		if err != nil {
			return errorResult("listing tables in %s: %v", dataset, err)
		}
		fmt.Fprintf(&b, "\nDataset %s (%d tables)\n", dataset, len(tables))

		for _, table := range tables {
			md, err := t.client.TableMetadata(ctx, dataset, table)
			if err != nil {
				return errorResult("fetching metadata for %s.%s: %v", dataset, table, err)
			}
			writeTableInsight(&b, md)
		}
	}
	return textResult(b.String())
}

// writeTableInsight appends one table's summary and observations.
func writeTableInsight(b *strings.Builder, md *bigquery.TableMetadata) {
	fmt.Fprintf(b, "  - %s: %d rows, %d fields", md.Table, md.RowCount, len(md.Fields))
	if md.Type != "" && md.Type != "TABLE" {
		fmt.Fprintf(b, " (%s)", md.Type)
	}
	b.WriteString("\n")

	typeCounts := make(map[string]int)
	described := 0
	for _, f := range md.Fields {
		typeCounts[f.Type]++
		if f.Description != "" {
			described++
		}
	}
	if len(md.Fields) > 0 {
		var parts []string
		for _, f := range md.Fields {
			if typeCounts[f.Type] == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s x%d", f.Type, typeCounts[f.Type]))
			typeCounts[f.Type] = 0
		}
		fmt.Fprintf(b, "      fields: %s\n", strings.Join(parts, ", "))
	}

	for _, note := range tableObservations(md, described) {
		fmt.Fprintf(b, "      note: %s\n", note)
	}
}

// tableObservations emits heuristic notes about one table.
func tableObservations(md *bigquery.TableMetadata, described int) []string {
	var notes []string
	if md.RowCount == 0 {
		notes = append(notes, "table is empty")
	}
	if len(md.Fields) > wideTableColumns {
		notes = append(notes, fmt.Sprintf("wide table (%d columns); prefer explicit column lists", len(md.Fields)))
	}
	if len(md.Fields) > 0 && described == 0 {
		notes = append(notes, "no field descriptions")
	}
	return notes
}
