package bigquery

import (
	"context"
	"fmt"
	"math/big"
	"time"

	bq "cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GoogleClient implements Client against the BigQuery service.
type GoogleClient struct {
	bq       *bq.Client
	location string
}

// NewGoogleClient creates a warehouse client from validated configuration.
func NewGoogleClient(ctx context.Context, cfg Config) (*GoogleClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.ApplyDefaults()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := bq.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	return &GoogleClient{bq: client, location: cfg.Location}, nil
}

// ListDatasets enumerates dataset ids in enumeration order.
func (c *GoogleClient) ListDatasets(ctx context.Context) ([]string, error) {
	var datasets []string
	it := c.bq.Datasets(ctx)
	for {
		ds, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing datasets: %w", err)
		}
		datasets = append(datasets, ds.DatasetID)
	}
	return datasets, nil
}

// ListTables enumerates table ids within a dataset.
func (c *GoogleClient) ListTables(ctx context.Context, dataset string) ([]string, error) {
	var tables []string
	it := c.bq.Dataset(dataset).Tables(ctx)
	for {
		tbl, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing tables in %s: %w", dataset, err)
		}
		tables = append(tables, tbl.TableID)
	}
	return tables, nil
}

// TableMetadata fetches schema and row count for one table.
func (c *GoogleClient) TableMetadata(ctx context.Context, dataset, table string) (*TableMetadata, error) {
	md, err := c.bq.Dataset(dataset).Table(table).Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s.%s: %w", dataset, table, err)
	}

	fields := make([]FieldSchema, 0, len(md.Schema))
	for _, f := range md.Schema {
		fields = append(fields, FieldSchema{
			Name:        f.Name,
			Type:        string(f.Type),
			Mode:        fieldMode(f),
			Description: f.Description,
		})
	}

	return &TableMetadata{
		Dataset:     dataset,
		Table:       table,
		Type:        string(md.Type),
		Description: md.Description,
		RowCount:    md.NumRows,
		Fields:      fields,
	}, nil
}

// fieldMode renders the BigQuery field mode string.
func fieldMode(f *bq.FieldSchema) string {
	switch {
	case f.Repeated:
		return "REPEATED"
	case f.Required:
		return "REQUIRED"
	default:
		return "NULLABLE"
	}
}

// RunQuery executes SQL with the request's location and billing cap and
// returns the ordered rows keyed by column name.
func (c *GoogleClient) RunQuery(ctx context.Context, req QueryRequest) ([]Row, error) {
	q := c.bq.Query(req.SQL)
	q.Location = req.Location
	if q.Location == "" {
		q.Location = c.location
	}
	q.MaxBytesBilled = req.MaxBytesBilled

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}

	var rows []Row
	for {
		var vals []bq.Value
		err := it.Next(&vals)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading query results: %w", err)
		}
		row := make(Row, len(it.Schema))
		for i, f := range it.Schema {
			if i < len(vals) {
				row[f.Name] = normalizeValue(vals[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// normalizeValue converts BigQuery scalar types to JSON-friendly values.
// Dates and timestamps become strings, NUMERIC becomes float64.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case civil.Date:
		return val.String()
	case civil.Time:
		return val.String()
	case civil.DateTime:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case *big.Rat:
		f, _ := val.Float64()
		return f
	case []byte:
		return string(val)
	default:
		return v
	}
}

// Close releases the underlying client.
func (c *GoogleClient) Close() error {
	if err := c.bq.Close(); err != nil {
		return fmt.Errorf("closing bigquery client: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ Client = (*GoogleClient)(nil)
