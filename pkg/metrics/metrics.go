// Package metrics exposes Prometheus instrumentation for tool invocations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCallsTotal counts tool invocations by tool name and outcome.
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcp_bigquery_tool_calls_total",
		Help: "Total number of MCP tool calls by tool and status.",
	}, []string{"tool", "status"})

	// ToolCallDuration observes tool handler latency in seconds.
	ToolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mcp_bigquery_tool_call_duration_seconds",
		Help:    "Duration of MCP tool calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"tool"})

	// QueryBytesBilledCap observes the billing caps requested on query calls.
	QueryBytesBilledCap = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mcp_bigquery_query_bytes_billed_cap",
		Help:    "Distribution of maximum-bytes-billed caps on query calls.",
		Buckets: prometheus.ExponentialBuckets(1<<20, 4, 8),
	})
)
