package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
	"github.com/txn2/mcp-bigquery/pkg/sqlgen"
)

// maxSuggestionTables bounds how many table schemas ground one suggestion.
const maxSuggestionTables = 20

// GenerateSQLInput is the generate_sql tool's arguments. Context optionally
// names a dataset to restrict schema discovery.
type GenerateSQLInput struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// registerGenerateSQLTool registers the templated SQL suggestion tool.
func (t *Toolkit) registerGenerateSQLTool(s *mcp.Server) error {
	in, err := jsonschema.For[GenerateSQLInput](nil)
	if err != nil {
		return fmt.Errorf("creating generate_sql input schema: %w", err)
	}

	mcp.AddTool(s, &mcp.Tool{
		Name: "generate_sql",
		Description: "Suggest a read-only SQL query for a natural-language question, grounded on " +
			"live table schemas. Pass a dataset id in context to narrow discovery. " +
			"This is a keyword heuristic; review the SQL before running it.",
		InputSchema: in,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateSQLInput) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		result := t.handleGenerateSQL(ctx, input)
		t.observe("generate_sql", start, result)
		return result, nil, nil
	})
	return nil
}

// handleGenerateSQL discovers schemas and delegates to the sqlgen heuristic.
func (t *Toolkit) handleGenerateSQL(ctx context.Context, input GenerateSQLInput) *mcp.CallToolResult {
	if strings.TrimSpace(input.Question) == "" {
		return errorResult("question is required")
	}

	schemas, err := t.discoverSchemas(ctx, strings.TrimSpace(input.Context))
	if err != nil {
		return errorResult("discovering schemas: %v", err)
	}
	if len(schemas) == 0 {
		return errorResult("no tables found to ground a suggestion")
	}

	suggestion, err := sqlgen.Suggest(input.Question, t.cfg.ProjectID, schemas)
	if err != nil {
		return errorResult("%v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Suggested SQL (table %s):\n\n%s\n\n%s", suggestion.Table, suggestion.SQL, suggestion.Context)
	return textResult(b.String())
}

// discoverSchemas fetches table metadata, restricted to one dataset when the
// hint names one, capped at maxSuggestionTables. Enumeration order is the
// warehouse's.
func (t *Toolkit) discoverSchemas(ctx context.Context, datasetHint string) ([]bigquery.TableMetadata, error) {
	datasets := []string{datasetHint}
	if datasetHint == "" {
		var err error
		datasets, err = t.client.ListDatasets(ctx)
		if err != nil {
			return nil, err
		}
	}

	var schemas []bigquery.TableMetadata
	for _, dataset := range datasets {
		tables, err := t.client.ListTables(ctx, dataset)
		if err != nil {
			return nil, err
		}
		for _, table := range tables {
			md, err := t.client.TableMetadata(ctx, dataset, table)
			if err != nil {
				return nil, err
			}
			schemas = append(schemas, *md)
			if len(schemas) == maxSuggestionTables {
				return schemas, nil
			}
		}
	}
	return schemas, nil
}
