package analyze

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// maxCategoricalColumns bounds how many string/boolean columns get a
// frequency summary.
const maxCategoricalColumns = 5

// topValueLimit bounds the per-column top-value list.
const topValueLimit = 5

// NumericStats summarizes one numeric column over its non-null values.
type NumericStats struct {
	Column string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Sum    float64
}

// ValueCount is one entry in a categorical top-value list.
type ValueCount struct {
	Value   string
	Count   int
	Percent float64
}

// CategoricalSummary summarizes one string or boolean column.
type CategoricalSummary struct {
	Column   string
	Distinct int
	Top      []ValueCount
}

// Round2 rounds half away from zero at two decimal places. All reported
// figures go through this one helper so formatted output is stable across
// platforms.
func Round2(x float64) float64 {
	if x < 0 {
		return -math.Floor(-x*100+0.5) / 100
	}
	return math.Floor(x*100+0.5) / 100
}

// FormatNumber renders a rounded figure without trailing zeros.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(Round2(x), 'f', -1, 64)
}

// columnValues collects the non-null, non-NaN numeric values of a column
// across all rows, in row order.
func columnValues(rows []map[string]any, column string) []float64 {
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if f, ok := NumericValue(row[column]); ok {
			values = append(values, f)
		}
	}
	return values
}

// ComputeNumericStats computes min, max, mean, median and sum for one numeric
// column. Returns nil when the column has no usable values.
func ComputeNumericStats(rows []map[string]any, column string) *NumericStats {
	values := columnValues(rows, column)
	if len(values) == 0 {
		return nil
	}

	stats := &NumericStats{
		Column: column,
		Count:  len(values),
		Min:    values[0],
		Max:    values[0],
	}
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		stats.Sum += v
	}
	stats.Mean = stats.Sum / float64(len(values))
	stats.Median = median(values)
	return stats
}

// median sorts a copy ascending; an even count averages the two middle
// elements, an odd count takes the middle element.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// ComputeCategoricalSummary builds a frequency summary over non-null values
// of a string or boolean column. The top list is ordered by descending count
// with ties broken by first occurrence, and percentages are over the total
// row count.
func ComputeCategoricalSummary(rows []map[string]any, column string) CategoricalSummary {
	counts := make(map[string]int)
	var order []string
	for _, row := range rows {
		v := row[column]
		if v == nil {
			continue
		}
		key := categoricalKey(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	top := order
	if len(top) > topValueLimit {
		top = top[:topValueLimit]
	}

	summary := CategoricalSummary{Column: column, Distinct: len(counts)}
	total := float64(len(rows))
	for _, key := range top {
		summary.Top = append(summary.Top, ValueCount{
			Value:   key,
			Count:   counts[key],
			Percent: Round2(float64(counts[key]) / total * 100),
		})
	}
	return summary
}

// categoricalKey renders a categorical value for counting.
func categoricalKey(v any) string {
	switch val := v.(type) {
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
