package analyze

import (
	"fmt"
	"math"
	"strings"
)

// Focus selects an optional focused section of the report.
type Focus string

// Recognized focus tags. Anything else produces no focused section.
const (
	FocusTrends       Focus = "trends"
	FocusOutliers     Focus = "outliers"
	FocusDistribution Focus = "distribution"
)

// histogramBins is the fixed equal-width bin count for distribution focus.
const histogramBins = 5

// outlierDeviations is the population standard deviation multiple beyond
// which a value counts as an outlier.
const outlierDeviations = 2.0

// focusSection renders the focused section for recognized tags, or "" when
// the tag is unrecognized or absent.
func focusSection(rows []map[string]any, columns []string, types map[string]ColumnType, focus Focus) string {
	switch focus {
	case FocusTrends:
		return trendsSection(rows, columns, types)
	case FocusOutliers:
		return outliersSection(rows, columns, types)
	case FocusDistribution:
		return distributionSection(rows, columns, types)
	default:
		return ""
	}
}

// trendsSection reports the max-min range per numeric column.
func trendsSection(rows []map[string]any, columns []string, types map[string]ColumnType) string {
	var b strings.Builder
	b.WriteString("Focus: trends\n")
	for _, col := range columns {
		if types[col] != TypeNumeric {
			continue
		}
		stats := ComputeNumericStats(rows, col)
		if stats == nil {
			continue
		}
		fmt.Fprintf(&b, "  - %s: range %s (min %s, max %s)\n",
			col, FormatNumber(stats.Max-stats.Min), FormatNumber(stats.Min), FormatNumber(stats.Max))
	}
	return b.String()
}

// outliersSection counts, per numeric column, values whose absolute deviation
// from the mean exceeds two population standard deviations.
func outliersSection(rows []map[string]any, columns []string, types map[string]ColumnType) string {
	var b strings.Builder
	b.WriteString("Focus: outliers\n")
	for _, col := range columns {
		if types[col] != TypeNumeric {
			continue
		}
		values := columnValues(rows, col)
		if len(values) == 0 {
			continue
		}
		mean := 0.0
		for _, v := range values {
			mean += v
		}
		mean /= float64(len(values))

		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		stddev := math.Sqrt(variance / float64(len(values)))

		outliers := 0
		for _, v := range values {
			if math.Abs(v-mean) > outlierDeviations*stddev {
				outliers++
			}
		}
		fmt.Fprintf(&b, "  - %s: %d outlier(s) beyond %s std deviations (mean %s, stddev %s)\n",
			col, outliers, FormatNumber(outlierDeviations), FormatNumber(mean), FormatNumber(stddev))
	}
	return b.String()
}

// distributionSection reports a five-equal-width-bin histogram per numeric
// column. The top edge is clamped into the last bin.
func distributionSection(rows []map[string]any, columns []string, types map[string]ColumnType) string {
	var b strings.Builder
	b.WriteString("Focus: distribution\n")
	for _, col := range columns {
		if types[col] != TypeNumeric {
			continue
		}
		values := columnValues(rows, col)
		if len(values) == 0 {
			continue
		}

		minV, maxV := values[0], values[0]
		for _, v := range values {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		fmt.Fprintf(&b, "  - %s:\n", col)
		width := (maxV - minV) / histogramBins
		if width == 0 {
			fmt.Fprintf(&b, "      [%s, %s]: %d\n", FormatNumber(minV), FormatNumber(maxV), len(values))
			continue
		}

		counts := make([]int, histogramBins)
		for _, v := range values {
			idx := int((v - minV) / width)
			if idx >= histogramBins {
				idx = histogramBins - 1
			}
			counts[idx]++
		}
		for i, count := range counts {
			lo := minV + float64(i)*width
			hi := lo + width
			fmt.Fprintf(&b, "      [%s, %s): %d\n", FormatNumber(lo), FormatNumber(hi), count)
		}
	}
	return b.String()
}
