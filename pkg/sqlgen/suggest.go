// Package sqlgen produces templated SQL suggestions from a natural-language
// question and live schema metadata. It is a keyword heuristic, not a
// language model.
package sqlgen

import (
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/txn2/mcp-bigquery/pkg/bigquery"
)

// defaultLimit bounds plain projection suggestions.
const defaultLimit = 100

// groupLimit bounds grouped aggregate suggestions.
const groupLimit = 10

// maxProjectedColumns bounds how many columns a projection suggestion lists.
const maxProjectedColumns = 8

// wordPattern tokenizes questions into comparable words.
var wordPattern = regexp.MustCompile(`[a-z0-9_]+`)

// numericFieldTypes are BigQuery types usable in AVG/SUM aggregates.
var numericFieldTypes = map[string]bool{
	"INTEGER": true, "INT64": true,
	"FLOAT": true, "FLOAT64": true,
	"NUMERIC": true, "BIGNUMERIC": true,
}

// Suggestion is a generated SQL statement plus the schema context it was
// grounded on.
type Suggestion struct {
	SQL     string
	Table   string
	Context string
}

// Suggest picks the table whose name and columns best match the question and
// builds a read-only SELECT for it. schemas must be non-empty.
func Suggest(question, projectID string, schemas []bigquery.TableMetadata) (*Suggestion, error) {
	if len(schemas) == 0 {
		return nil, fmt.Errorf("no tables available to ground a suggestion")
	}

	words := questionWords(question)
	best := schemas[0]
	bestScore := -1
	for _, schema := range schemas {
		if score := scoreTable(schema, words); score > bestScore {
			best = schema
			bestScore = score
		}
	}

	builder, err := buildQuery(question, projectID, best, words)
	if err != nil {
		return nil, err
	}
	sql, _, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building suggestion: %w", err)
	}

	return &Suggestion{
		SQL:     sql,
		Table:   best.FullName(),
		Context: schemaContext(schemas),
	}, nil
}

// questionWords lowercases and tokenizes the question.
func questionWords(question string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(question), -1) {
		words[w] = true
	}
	return words
}

// scoreTable counts question words appearing in the table name or its
// column names.
func scoreTable(schema bigquery.TableMetadata, words map[string]bool) int {
	score := 0
	for _, part := range wordPattern.FindAllString(strings.ToLower(schema.Table), -1) {
		if words[part] {
			score += 2
		}
	}
	for _, f := range schema.Fields {
		if words[strings.ToLower(f.Name)] {
			score++
		}
	}
	return score
}

// buildQuery selects an aggregate or projection shape from question keywords.
func buildQuery(question, projectID string, schema bigquery.TableMetadata, words map[string]bool) (sq.SelectBuilder, error) {
	from := fmt.Sprintf("`%s.%s.%s`", projectID, schema.Dataset, schema.Table)
	lower := strings.ToLower(question)

	switch {
	case words["count"] || strings.Contains(lower, "how many"):
		return sq.Select("COUNT(*) AS total").From(from), nil

	case words["average"] || words["avg"] || words["mean"]:
		col := matchedNumericField(schema, words)
		if col == "" {
			return sq.SelectBuilder{}, fmt.Errorf(
				"no numeric column in %s matches the question; name one of its columns", schema.FullName())
		}
		return sq.Select(fmt.Sprintf("AVG(%s) AS avg_%s", col, col)).From(from), nil

	case words["sum"] || words["total"]:
		col := matchedNumericField(schema, words)
		if col == "" {
			return sq.SelectBuilder{}, fmt.Errorf(
				"no numeric column in %s matches the question; name one of its columns", schema.FullName())
		}
		return sq.Select(fmt.Sprintf("SUM(%s) AS sum_%s", col, col)).From(from), nil

	case words["top"] || words["most"] || words["common"]:
		col := firstGroupableField(schema)
		if col == "" {
			return sq.Select("*").From(from).Limit(defaultLimit), nil
		}
		return sq.Select(col, "COUNT(*) AS total").
			From(from).
			GroupBy(col).
			OrderBy("total DESC").
			Limit(groupLimit), nil

	default:
		cols := projectedColumns(schema)
		return sq.Select(cols...).From(from).Limit(defaultLimit), nil
	}
}

// matchedNumericField returns the first numeric column named in the question,
// else the table's first numeric column.
func matchedNumericField(schema bigquery.TableMetadata, words map[string]bool) string {
	first := ""
	for _, f := range schema.Fields {
		if !numericFieldTypes[strings.ToUpper(f.Type)] {
			continue
		}
		if words[strings.ToLower(f.Name)] {
			return f.Name
		}
		if first == "" {
			first = f.Name
		}
	}
	return first
}

// firstGroupableField returns the table's first string-typed column.
func firstGroupableField(schema bigquery.TableMetadata) string {
	for _, f := range schema.Fields {
		if strings.ToUpper(f.Type) == "STRING" {
			return f.Name
		}
	}
	return ""
}

// projectedColumns lists up to maxProjectedColumns column names, or * when
// the schema has none.
func projectedColumns(schema bigquery.TableMetadata) []string {
	if len(schema.Fields) == 0 {
		return []string{"*"}
	}
	cols := make([]string, 0, maxProjectedColumns)
	for _, f := range schema.Fields {
		cols = append(cols, f.Name)
		if len(cols) == maxProjectedColumns {
			break
		}
	}
	return cols
}

// schemaContext renders the candidate tables and their fields as text.
func schemaContext(schemas []bigquery.TableMetadata) string {
	var b strings.Builder
	b.WriteString("Schema context:\n")
	for _, schema := range schemas {
		fmt.Fprintf(&b, "- %s (%d rows)\n", schema.FullName(), schema.RowCount)
		for _, f := range schema.Fields {
			fmt.Fprintf(&b, "    %s %s", f.Name, f.Type)
			if f.Mode != "" && f.Mode != "NULLABLE" {
				fmt.Fprintf(&b, " %s", f.Mode)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
