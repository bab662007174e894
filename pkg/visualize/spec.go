// Package visualize maps tabular data to a renderable chart configuration
// and a self-contained HTML document.
package visualize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/txn2/mcp-bigquery/pkg/analyze"
)

// Kind is a supported chart kind.
type Kind string

// Chart kinds. Unrecognized requests fall back to bar.
const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// maxChartRows clamps bar and line charts to the first rows for readability.
const maxChartRows = 20

// ParseKind normalizes a requested chart kind, defaulting to bar.
func ParseKind(raw string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case KindLine:
		return KindLine
	case KindPie:
		return KindPie
	case KindScatter:
		return KindScatter
	default:
		return KindBar
	}
}

// Axes names the selected category (X) and value (Y) columns.
type Axes struct {
	Category string
	Value    string
}

// Point is one scatter point. Either coordinate may be NaN when the row's
// value does not coerce to a number; such points are kept, not filtered.
type Point struct {
	X float64
	Y float64
}

// ChartData is the render-ready chart structure.
type ChartData struct {
	Kind   Kind
	Title  string
	Axes   Axes
	Labels []string
	Values []float64
	Points []Point
}

// SelectAxes picks chart columns: category = first string-or-boolean column,
// else first numeric, else first by position; value = first numeric column,
// with fallbacks when it collides with the category or none exists.
func SelectAxes(rows []map[string]any, columns []string) Axes {
	types := analyze.ColumnTypes(rows, columns)

	category := ""
	for _, col := range columns {
		if types[col] == analyze.TypeString || types[col] == analyze.TypeBoolean {
			category = col
			break
		}
	}

	var numerics []string
	for _, col := range columns {
		if types[col] == analyze.TypeNumeric {
			numerics = append(numerics, col)
		}
	}

	if category == "" {
		if len(numerics) > 0 {
			category = numerics[0]
		} else {
			category = columns[0]
		}
	}

	value := ""
	switch {
	case len(numerics) > 0 && numerics[0] != category:
		value = numerics[0]
	case len(numerics) > 1:
		value = numerics[1]
	case len(columns) > 1:
		value = columns[1]
	default:
		value = columns[0]
	}

	return Axes{Category: category, Value: value}
}

// Build maps rows to chart data for the requested kind.
func Build(rows []map[string]any, columns []string, kind Kind, title string) ChartData {
	axes := SelectAxes(rows, columns)
	data := ChartData{Kind: kind, Title: title, Axes: axes}

	switch kind {
	case KindPie:
		buildPie(&data, rows, columns)
	case KindScatter:
		buildScatter(&data, rows)
	default:
		buildSeries(&data, rows)
	}
	return data
}

// buildPie aggregates the value column by category, summing values, or
// counting rows when the data has no numeric column at all.
func buildPie(data *ChartData, rows []map[string]any, columns []string) {
	types := analyze.ColumnTypes(rows, columns)
	hasNumeric := false
	for _, col := range columns {
		if types[col] == analyze.TypeNumeric {
			hasNumeric = true
			break
		}
	}

	sums := make(map[string]float64)
	var order []string
	for _, row := range rows {
		key := labelOf(row[data.Axes.Category])
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		if hasNumeric {
			sums[key] += coerceNumber(row[data.Axes.Value])
		} else {
			sums[key]++
		}
	}

	for _, key := range order {
		data.Labels = append(data.Labels, key)
		data.Values = append(data.Values, sums[key])
	}
}

// buildScatter emits one (x, y) point per row via numeric coercion.
func buildScatter(data *ChartData, rows []map[string]any) {
	for _, row := range rows {
		data.Points = append(data.Points, Point{
			X: coerceNumber(row[data.Axes.Category]),
			Y: coerceNumber(row[data.Axes.Value]),
		})
	}
}

// buildSeries emits one category/value pair per row in original order,
// clamped to the first maxChartRows rows.
func buildSeries(data *ChartData, rows []map[string]any) {
	if len(rows) > maxChartRows {
		rows = rows[:maxChartRows]
	}
	for _, row := range rows {
		data.Labels = append(data.Labels, labelOf(row[data.Axes.Category]))
		data.Values = append(data.Values, coerceNumber(row[data.Axes.Value]))
	}
}

// coerceNumber parses any scalar as a number, yielding NaN on failure.
func coerceNumber(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// labelOf renders a category value as a chart label.
func labelOf(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
