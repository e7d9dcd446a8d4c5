package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCollectorAggregatesEvents(t *testing.T) {
	c := NewCollector(nil, 16, 5)
	c.Start(context.Background())

	c.Track(Event{Type: EventSearch, Query: "python", Results: 3, LatencyMs: 2, Timestamp: time.Now()})
	c.Track(Event{Type: EventSearch, Query: "python", Results: 3, LatencyMs: 4, CacheHit: true, Timestamp: time.Now()})
	c.Track(Event{Type: EventSearch, Query: "nothing", Results: 0, LatencyMs: 1, Timestamp: time.Now()})
	c.Track(Event{Type: EventSuggest, Query: "py", Results: 2, LatencyMs: 1, Timestamp: time.Now()})
	c.Track(Event{Type: EventIndex, Query: "doc1", Timestamp: time.Now()})
	c.Close()

	stats := c.Stats()
	assert.Equal(t, int64(3), stats.TotalSearches)
	assert.Equal(t, int64(1), stats.TotalSuggests)
	assert.Equal(t, int64(1), stats.TotalDocsIndexed)
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(2), stats.CacheMisses)
	assert.Equal(t, int64(1), stats.ZeroResultCount)

	assert.NotEmpty(t, stats.TopQueries)
	assert.Equal(t, "python", stats.TopQueries[0].Query)
	assert.Equal(t, int64(2), stats.TopQueries[0].Count)

	assert.Len(t, stats.ZeroResultQueries, 1)
	assert.Equal(t, "nothing", stats.ZeroResultQueries[0].Query)
}

func TestCollectorTrackNeverBlocks(t *testing.T) {
	// not started: the buffer fills and further events are dropped
	c := NewCollector(nil, 2, 5)
	for i := 0; i < 10; i++ {
		c.Track(Event{Type: EventSearch, Query: "q"})
	}
}

func TestCollectorStatsEmpty(t *testing.T) {
	c := NewCollector(nil, 16, 5)
	stats := c.Stats()
	assert.Zero(t, stats.TotalSearches)
	assert.Zero(t, stats.AvgLatencyMs)
	assert.Empty(t, stats.TopQueries)
}

func TestTopNOrdering(t *testing.T) {
	counts := map[string]int64{"a": 1, "b": 3, "c": 2, "d": 3}
	got := topN(counts, 3)

	assert.Len(t, got, 3)
	assert.Equal(t, QueryCount{Query: "b", Count: 3}, got[0], "ties break alphabetically")
	assert.Equal(t, QueryCount{Query: "d", Count: 3}, got[1])
	assert.Equal(t, QueryCount{Query: "c", Count: 2}, got[2])
}
