package bigquery

import (
	"math/big"
	"testing"
	"time"

	bq "cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	date := civil.Date{Year: 2024, Month: time.January, Day: 15}
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"date", date, "2024-01-15"},
		{"timestamp", ts, "2024-01-15T10:30:00Z"},
		{"numeric", big.NewRat(5, 2), 2.5},
		{"bytes", []byte("raw"), "raw"},
		{"string passthrough", "hello", "hello"},
		{"int passthrough", int64(42), int64(42)},
		{"float passthrough", 1.5, 1.5},
		{"bool passthrough", true, true},
		{"nil passthrough", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeValue(tt.in))
		})
	}
}

func TestFieldMode(t *testing.T) {
	assert.Equal(t, "REPEATED", fieldMode(&bq.FieldSchema{Repeated: true}))
	assert.Equal(t, "REQUIRED", fieldMode(&bq.FieldSchema{Required: true}))
	assert.Equal(t, "NULLABLE", fieldMode(&bq.FieldSchema{}))
}

func TestTableMetadataFullName(t *testing.T) {
	md := TableMetadata{Dataset: "sales", Table: "orders"}
	assert.Equal(t, "sales.orders", md.FullName())
}
