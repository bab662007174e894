package analyze

import (
	"fmt"
	"strings"
)

// Summarize parses a JSON array of row records and renders the full text
// report: column types, numeric statistics, categorical summaries and an
// optional focused section. Malformed or empty input is a recoverable error.
func Summarize(jsonText string, focus Focus) (string, error) {
	rows, columns, err := ParseRows(jsonText)
	if err != nil {
		return "", err
	}
	return Report(rows, columns, focus), nil
}

// Report renders the analysis of already-parsed rows.
func Report(rows []map[string]any, columns []string, focus Focus) string {
	types := ColumnTypes(rows, columns)

	var b strings.Builder
	fmt.Fprintf(&b, "Data Analysis\n=============\nRows: %d, Columns: %d\n\n", len(rows), len(columns))

	b.WriteString("Column types:\n")
	for _, col := range columns {
		fmt.Fprintf(&b, "  - %s: %s\n", col, types[col])
	}

	writeNumericSection(&b, rows, columns, types)
	writeCategoricalSection(&b, rows, columns, types)

	if section := focusSection(rows, columns, types, focus); section != "" {
		b.WriteString("\n")
		b.WriteString(section)
	}
	return b.String()
}

// writeNumericSection appends statistics for every numeric column.
func writeNumericSection(b *strings.Builder, rows []map[string]any, columns []string, types map[string]ColumnType) {
	var stats []*NumericStats
	for _, col := range columns {
		if types[col] != TypeNumeric {
			continue
		}
		if s := ComputeNumericStats(rows, col); s != nil {
			stats = append(stats, s)
		}
	}
	if len(stats) == 0 {
		return
	}

	b.WriteString("\nNumeric columns:\n")
	for _, s := range stats {
		fmt.Fprintf(b, "  - %s: min=%s, max=%s, mean=%s, median=%s, sum=%s (%d values)\n",
			s.Column, FormatNumber(s.Min), FormatNumber(s.Max), FormatNumber(s.Mean),
			FormatNumber(s.Median), FormatNumber(s.Sum), s.Count)
	}
}

// writeCategoricalSection appends frequency summaries for the first five
// string or boolean columns in column order.
func writeCategoricalSection(b *strings.Builder, rows []map[string]any, columns []string, types map[string]ColumnType) {
	var summaries []CategoricalSummary
	for _, col := range columns {
		if types[col] != TypeString && types[col] != TypeBoolean {
			continue
		}
		summaries = append(summaries, ComputeCategoricalSummary(rows, col))
		if len(summaries) == maxCategoricalColumns {
			break
		}
	}
	if len(summaries) == 0 {
		return
	}

	b.WriteString("\nCategorical columns:\n")
	for _, s := range summaries {
		fmt.Fprintf(b, "  - %s: %d distinct value(s)\n", s.Column, s.Distinct)
		for _, vc := range s.Top {
			fmt.Fprintf(b, "      %s: %d (%s%%)\n", vc.Value, vc.Count, FormatNumber(vc.Percent))
		}
	}
}

// ParseFocus normalizes a raw focus argument. Unrecognized or absent values
// map to the empty focus, which produces no focused section.
func ParseFocus(raw string) Focus {
	switch Focus(strings.ToLower(strings.TrimSpace(raw))) {
	case FocusTrends:
		return FocusTrends
	case FocusOutliers:
		return FocusOutliers
	case FocusDistribution:
		return FocusDistribution
	default:
		return ""
	}
}
