package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/yosida95/uritemplate/v3"
)

// tableTemplateURI addresses one table's field schema.
const tableTemplateURI = "bigquery://{dataset}/{table}"

// registerResources registers the table schema resource template.
func (t *Toolkit) registerResources(s *mcp.Server) error {
	s.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: tableTemplateURI,
		Name:        "Table Schema",
		Description: "Field name/type/mode list and row count for one table or view",
		MIMEType:    "application/json",
	}, t.handleTableResource)
	return nil
}

// RegisterTableResources enumerates the warehouse's tables and registers one
// concrete resource per table so callers can list them. Best effort: an
// enumeration failure leaves only the template registered.
func (t *Toolkit) RegisterTableResources(ctx context.Context, s *mcp.Server) {
	datasets, err := t.client.ListDatasets(ctx)
	if err != nil {
		t.log.Warn("skipping table resource registration", "error", err)
		return
	}
	for _, dataset := range datasets {
		tables, err := t.client.ListTables(ctx, dataset)
		if err != nil {
			t.log.Warn("skipping dataset resources", "dataset", dataset, "error", err)
			continue
		}
		for _, table := range tables {
			s.AddResource(&mcp.Resource{
				URI:         fmt.Sprintf("bigquery://%s/%s", dataset, table),
				Name:        dataset + "." + table,
				Description: "Field schema for " + dataset + "." + table,
				MIMEType:    "application/json",
			}, t.handleTableResource)
		}
	}
}

// parseTemplateVars extracts named variables from a URI using a URI template.
func parseTemplateVars(templateStr, uri string) (map[string]string, error) {
	tmpl, err := uritemplate.New(templateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", templateStr, err)
	}
	match := tmpl.Match(uri)
	if match == nil {
		return nil, fmt.Errorf("uri %q does not match template %q", uri, templateStr)
	}
	vars := make(map[string]string)
	for _, name := range tmpl.Varnames() {
		vars[name] = match.Get(name).String()
	}
	return vars, nil
}

// handleTableResource resolves bigquery://{dataset}/{table} to the table's
// field list as pretty-printed JSON.
func (t *Toolkit) handleTableResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI
	vars, err := parseTemplateVars(tableTemplateURI, uri)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	dataset, table := vars["dataset"], vars["table"]
	if dataset == "" || table == "" {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	md, err := t.client.TableMetadata(ctx, dataset, table)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(uri) //nolint:wrapcheck // MCP protocol error returned as-is for SDK type matching
	}

	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing table schema: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
