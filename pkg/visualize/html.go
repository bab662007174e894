package visualize

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"strings"
)

// maxTableRows bounds the visible data table in the document.
const maxTableRows = 10

// chartScriptURL is the CDN location of the embedded charting library.
const chartScriptURL = "https://cdn.jsdelivr.net/npm/chart.js"

var docTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.ScriptURL}}"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-top: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
th { background: #f0f0f0; }
.chart-wrap { max-width: 840px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="chart-wrap"><canvas id="chart"></canvas></div>
<script>
new Chart(document.getElementById("chart"), {{.Config}});
</script>
<h2>Data (first {{.TableLimit}} rows)</h2>
<table>
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .TableRows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// documentModel is the template input for one chart document.
type documentModel struct {
	Title      string
	ScriptURL  string
	Config     template.JS
	Columns    []string
	TableRows  [][]string
	TableLimit int
}

// RenderDocument produces a single self-contained HTML document embedding
// the chart configuration and a visible table of the first rows.
func RenderDocument(data ChartData, rows []map[string]any, columns []string) (string, error) {
	config, err := chartConfig(data)
	if err != nil {
		return "", err
	}

	title := data.Title
	if title == "" {
		title = "Query Results"
	}

	model := documentModel{
		Title:      title,
		ScriptURL:  chartScriptURL,
		Config:     template.JS(config), // #nosec G203 -- config is marshaled JSON, not user HTML
		Columns:    columns,
		TableRows:  tableRows(rows, columns),
		TableLimit: maxTableRows,
	}

	var b strings.Builder
	if err := docTemplate.Execute(&b, model); err != nil {
		return "", fmt.Errorf("rendering chart document: %w", err)
	}
	return b.String(), nil
}

// chartConfig marshals the Chart.js configuration for the chart data.
// NaN values serialize as null so the affected points stay present as gaps.
func chartConfig(data ChartData) (string, error) {
	title := data.Title
	if title == "" {
		title = string(data.Kind) + " chart"
	}

	var config map[string]any
	if data.Kind == KindScatter {
		points := make([]map[string]any, 0, len(data.Points))
		for _, p := range data.Points {
			points = append(points, map[string]any{
				"x": jsonNumber(p.X),
				"y": jsonNumber(p.Y),
			})
		}
		config = map[string]any{
			"type": "scatter",
			"data": map[string]any{
				"datasets": []map[string]any{{
					"label": title,
					"data":  points,
				}},
			},
		}
	} else {
		values := make([]any, 0, len(data.Values))
		for _, v := range data.Values {
			values = append(values, jsonNumber(v))
		}
		config = map[string]any{
			"type": string(data.Kind),
			"data": map[string]any{
				"labels": data.Labels,
				"datasets": []map[string]any{{
					"label": title,
					"data":  values,
				}},
			},
		}
	}

	config["options"] = map[string]any{
		"responsive": true,
		"plugins": map[string]any{
			"title": map[string]any{"display": true, "text": title},
		},
	}

	out, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("marshaling chart config: %w", err)
	}
	return string(out), nil
}

// jsonNumber maps NaN to nil for JSON embedding.
func jsonNumber(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

// tableRows renders the first rows as display strings in column order.
func tableRows(rows []map[string]any, columns []string) [][]string {
	if len(rows) > maxTableRows {
		rows = rows[:maxTableRows]
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, labelOf(row[col]))
		}
		out = append(out, cells)
	}
	return out
}
