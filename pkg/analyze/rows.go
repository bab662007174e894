// Package analyze computes heuristic statistics over ad-hoc tabular data.
package analyze

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// ColumnType tags the inferred type of a column.
type ColumnType string

// Column type tags.
const (
	TypeNumeric ColumnType = "numeric"
	TypeString  ColumnType = "string"
	TypeBoolean ColumnType = "boolean"
	TypeDate    ColumnType = "date"
	TypeUnknown ColumnType = "unknown"
)

// datePrefix matches ISO date strings (YYYY-MM-DD, optionally followed by a
// time component).
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ]\d{2}:\d{2}|$)`)

// ParseRows decodes a JSON array of row objects. It returns the rows and the
// first row's column names in their original order. A value that is not a
// non-empty array of objects is a recoverable error, never a panic.
func ParseRows(text string) ([]map[string]any, []string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil, fmt.Errorf("data must be a JSON array of row objects")
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &rows); err != nil {
		return nil, nil, fmt.Errorf("data is not a JSON array of row objects: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("data array is empty")
	}

	columns, err := firstRowColumns(trimmed)
	if err != nil {
		return nil, nil, err
	}
	return rows, columns, nil
}

// firstRowColumns extracts the first object's keys in document order.
// encoding/json maps lose ordering, so the first row is re-read as a token
// stream.
func firstRowColumns(text string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))

	// consume the opening '[' and '{'
	for _, want := range []json.Delim{'[', '{'} {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading data: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != want {
			return nil, fmt.Errorf("data rows must be JSON objects")
		}
	}

	var columns []string
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading data: %w", err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return columns, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("data rows must be JSON objects")
		}
		columns = append(columns, key)
		// skip the key's value, including nested structures
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
}

// skipValue consumes one JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	var v json.RawMessage
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("reading data: %w", err)
	}
	return nil
}

// InferColumnType assigns a type tag from a single value. By contract only
// the first row's value is ever consulted; later rows never change the tag.
func InferColumnType(v any) ColumnType {
	switch val := v.(type) {
	case float64:
		return TypeNumeric
	case bool:
		return TypeBoolean
	case string:
		if datePrefix.MatchString(val) {
			return TypeDate
		}
		return TypeString
	default:
		return TypeUnknown
	}
}

// ColumnTypes tags every column from the first row only.
func ColumnTypes(rows []map[string]any, columns []string) map[string]ColumnType {
	types := make(map[string]ColumnType, len(columns))
	first := rows[0]
	for _, col := range columns {
		types[col] = InferColumnType(first[col])
	}
	return types
}

// NumericValue extracts a float64 from a parsed JSON value. Null and NaN
// report ok=false.
func NumericValue(v any) (float64, bool) {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
