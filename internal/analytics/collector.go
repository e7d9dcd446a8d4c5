package analytics

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"minisearch/pkg/kafka"
)

// Collector receives events on a buffered channel, folds them into in-process
// aggregates, and forwards them to Kafka when a producer is configured. Track
// never blocks the request path: events are dropped (with a warning) when the
// buffer is full.
type Collector struct {
	producer *kafka.Producer // nil disables publishing
	eventCh  chan Event
	done     chan struct{}
	logger   *slog.Logger

	mu                sync.RWMutex
	totalSearches     int64
	totalSuggests     int64
	totalDocsIndexed  int64
	cacheHits         int64
	cacheMisses       int64
	zeroResults       int64
	latencies         []int64
	queryCounts       map[string]int64
	zeroResultQueries map[string]int64
	topN              int
	startTime         time.Time
}

// NewCollector creates a Collector. producer may be nil, in which case events
// are only aggregated locally.
func NewCollector(producer *kafka.Producer, bufferSize, topN int) *Collector {
	if bufferSize <= 0 {
		bufferSize = 1024
	}
	if topN <= 0 {
		topN = 10
	}
	return &Collector{
		producer:          producer,
		eventCh:           make(chan Event, bufferSize),
		done:              make(chan struct{}),
		logger:            slog.Default().With("component", "analytics"),
		latencies:         make([]int64, 0, 4096),
		queryCounts:       make(map[string]int64),
		zeroResultQueries: make(map[string]int64),
		topN:              topN,
		startTime:         time.Now(),
	}
}

// Start launches the consuming goroutine. It runs until Close is called or
// ctx is cancelled.
func (c *Collector) Start(ctx context.Context) {
	go func() {
		defer close(c.done)
		for {
			select {
			case event, ok := <-c.eventCh:
				if !ok {
					return
				}
				c.consume(ctx, event)
			case <-ctx.Done():
				c.drainRemaining()
				return
			}
		}
	}()
	c.logger.Info("analytics collector started",
		"buffer_size", cap(c.eventCh),
		"kafka_enabled", c.producer != nil,
	)
}

// Track enqueues an event without blocking.
func (c *Collector) Track(event Event) {
	select {
	case c.eventCh <- event:
	default:
		c.logger.Warn("analytics event dropped (buffer full)")
	}
}

// Close stops the consuming goroutine after draining queued events.
func (c *Collector) Close() {
	close(c.eventCh)
	<-c.done
}

// Stats returns a snapshot of the aggregates.
func (c *Collector) Stats() AggregatedStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := AggregatedStats{
		TotalSearches:    c.totalSearches,
		TotalSuggests:    c.totalSuggests,
		TotalDocsIndexed: c.totalDocsIndexed,
		CacheHits:        c.cacheHits,
		CacheMisses:      c.cacheMisses,
		ZeroResultCount:  c.zeroResults,
	}
	if len(c.latencies) > 0 {
		sorted := make([]int64, len(c.latencies))
		copy(sorted, c.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum int64
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = float64(sum) / float64(len(sorted))
		stats.P50LatencyMs = percentile(sorted, 50)
		stats.P95LatencyMs = percentile(sorted, 95)
	}
	stats.TopQueries = topN(c.queryCounts, c.topN)
	stats.ZeroResultQueries = topN(c.zeroResultQueries, c.topN)
	elapsed := time.Since(c.startTime).Minutes()
	if elapsed > 0 {
		stats.QueriesPerMinute = float64(stats.TotalSearches) / elapsed
	}
	return stats
}

func (c *Collector) consume(ctx context.Context, event Event) {
	c.aggregate(event)
	if c.producer == nil {
		return
	}
	if err := c.producer.Publish(ctx, kafka.Event{
		Key:   string(event.Type),
		Value: event,
	}); err != nil {
		c.logger.Error("failed to publish analytics event", "error", err)
	}
}

func (c *Collector) aggregate(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch event.Type {
	case EventIndex:
		c.totalDocsIndexed++
		return
	case EventSuggest:
		c.totalSuggests++
	case EventSearch:
		c.totalSearches++
		if event.CacheHit {
			c.cacheHits++
		} else {
			c.cacheMisses++
		}
		if event.Results == 0 {
			c.zeroResults++
			c.zeroResultQueries[event.Query]++
		}
		c.queryCounts[event.Query]++
	}
	c.latencies = append(c.latencies, event.LatencyMs)
}

func (c *Collector) drainRemaining() {
	for {
		select {
		case event, ok := <-c.eventCh:
			if !ok {
				return
			}
			c.consume(context.Background(), event)
		default:
			return
		}
	}
}

func percentile(sorted []int64, pct int) int64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func topN(counts map[string]int64, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
