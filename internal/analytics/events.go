// Package analytics collects query events from the service handlers,
// aggregates them in-process, and optionally publishes them to Kafka for
// external consumers.
package analytics

import "time"

// EventType classifies a tracked event.
type EventType string

const (
	EventSearch  EventType = "search"
	EventSuggest EventType = "suggest"
	EventIndex   EventType = "index"
)

// Event is one tracked operation.
type Event struct {
	Type      EventType `json:"type"`
	Query     string    `json:"query,omitempty"`
	Results   int       `json:"results"`
	LatencyMs int64     `json:"latency_ms"`
	CacheHit  bool      `json:"cache_hit"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// QueryCount pairs a query string with how often it was seen.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// AggregatedStats is the in-process roll-up served by the analytics endpoint.
type AggregatedStats struct {
	TotalSearches     int64        `json:"total_searches"`
	TotalSuggests     int64        `json:"total_suggests"`
	TotalDocsIndexed  int64        `json:"total_docs_indexed"`
	CacheHits         int64        `json:"cache_hits"`
	CacheMisses       int64        `json:"cache_misses"`
	ZeroResultCount   int64        `json:"zero_result_count"`
	AvgLatencyMs      float64      `json:"avg_latency_ms"`
	P50LatencyMs      int64        `json:"p50_latency_ms"`
	P95LatencyMs      int64        `json:"p95_latency_ms"`
	TopQueries        []QueryCount `json:"top_queries"`
	ZeroResultQueries []QueryCount `json:"zero_result_queries"`
	QueriesPerMinute  float64      `json:"queries_per_minute"`
}
