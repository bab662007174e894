// Package bigquery provides the warehouse client used by the MCP toolkit.
//
//nolint:revive // package contains related DTO types
package bigquery

// Row is a single result row keyed by column name.
type Row = map[string]any

// FieldSchema describes one column of a table or view.
type FieldSchema struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Mode        string `json:"mode,omitempty"`
	Description string `json:"description,omitempty"`
}

// TableMetadata describes a table or view.
type TableMetadata struct {
	Dataset     string        `json:"dataset"`
	Table       string        `json:"table"`
	Type        string        `json:"type,omitempty"`
	Description string        `json:"description,omitempty"`
	RowCount    uint64        `json:"row_count"`
	Fields      []FieldSchema `json:"fields"`
}

// FullName returns the dataset-qualified table name.
func (m TableMetadata) FullName() string {
	return m.Dataset + "." + m.Table
}

// QueryRequest carries one query execution to the warehouse.
type QueryRequest struct {
	SQL            string `json:"sql"`
	Location       string `json:"location,omitempty"`
	MaxBytesBilled int64  `json:"max_bytes_billed,omitempty"`
}
