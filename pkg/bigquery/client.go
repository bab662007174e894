package bigquery

import "context"

// Client is the warehouse collaborator contract. The MCP toolkit depends on
// this interface only; GoogleClient implements it against BigQuery.
type Client interface {
	// ListDatasets enumerates dataset ids in the configured project.
	ListDatasets(ctx context.Context) ([]string, error)

	// ListTables enumerates table ids in a dataset.
	ListTables(ctx context.Context, dataset string) ([]string, error)

	// TableMetadata fetches schema and row count for one table.
	TableMetadata(ctx context.Context, dataset, table string) (*TableMetadata, error)

	// RunQuery executes SQL and returns the ordered result rows.
	RunQuery(ctx context.Context, req QueryRequest) ([]Row, error)

	// Close releases resources.
	Close() error
}
