package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "minisearch/pkg/errors"
)

func TestIndexerCatSatOnTheMat(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "the cat sat on the mat"))

	got := ix.Search("the")
	require.Len(t, got, 1)
	assert.Equal(t, Posting{DocID: "doc1", Frequency: 2}, got[0])

	assert.Empty(t, ix.Search("dog"))
	assert.Equal(t, []string{"cat"}, ix.Suggest("ca", 0))
	assert.ElementsMatch(t, []string{"the", "cat", "sat", "on", "mat"}, ix.Suggest("", 0))
}

func TestIndexerInsertionOrderAcrossDocuments(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "python code"))
	require.NoError(t, ix.IndexDocument("doc2", "python data"))

	got := ix.Search("python")
	require.Len(t, got, 2)
	assert.Equal(t, Posting{DocID: "doc1", Frequency: 1}, got[0])
	assert.Equal(t, Posting{DocID: "doc2", Frequency: 1}, got[1])
}

func TestIndexerRoundTrip(t *testing.T) {
	ix := NewIndexer()
	text := "search engines use search indexes to make search fast"
	require.NoError(t, ix.IndexDocument("doc1", text))

	wantCounts := map[string]int{
		"search": 3, "engines": 1, "use": 1, "indexes": 1,
		"to": 1, "make": 1, "fast": 1,
	}
	for word, count := range wantCounts {
		got := ix.Search(word)
		require.Len(t, got, 1, "word %q", word)
		assert.Equal(t, count, got[0].Frequency, "word %q", word)
	}
}

func TestIndexerEmptyDocIDFailsBeforeMutation(t *testing.T) {
	ix := NewIndexer()
	err := ix.IndexDocument("", "some text")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	assert.Equal(t, 0, ix.DocumentCount(), "a rejected call must not touch the index")
	assert.Empty(t, ix.Search("some"))
	assert.Empty(t, ix.Suggest("", 0))
}

func TestIndexerEmptyTextIndexesNothing(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", ""))
	require.NoError(t, ix.IndexDocument("doc2", "  ...  "))

	stats := ix.Stats()
	assert.Equal(t, 2, stats.DocumentCount)
	assert.Equal(t, 0, stats.VocabularySize)
}

func TestIndexerSearchNormalizesQuery(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "Hello World"))

	got := ix.Search("HELLO")
	require.Len(t, got, 1)
	assert.Equal(t, "doc1", got[0].DocID)

	assert.Empty(t, ix.Search(""))
	assert.Empty(t, ix.Search("..."))
}

func TestIndexerFrequencyVector(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "go go go"))
	require.NoError(t, ix.IndexDocument("doc2", "no go"))

	entries := ix.FrequencyVector("go")
	require.Len(t, entries, 2)
	// doc keys are assigned sequentially in ingestion order
	assert.Equal(t, SparseEntry{Key: 0, Count: 3}, entries[0])
	assert.Equal(t, SparseEntry{Key: 1, Count: 1}, entries[1])

	assert.Empty(t, ix.FrequencyVector("missing"))
}

func TestIndexerDistinctKeysPerDocument(t *testing.T) {
	ix := NewIndexer()
	for i := 0; i < 50; i++ {
		docID := fmt.Sprintf("doc_%d", i)
		require.NoError(t, ix.IndexDocument(docID, "shared word"))
	}

	entries := ix.FrequencyVector("shared")
	require.Len(t, entries, 50, "every document must occupy its own vector key")
	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Key], "duplicate key %d", e.Key)
		seen[e.Key] = true
	}
}

func TestIndexerReindexSameIDAccumulates(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "word word"))
	require.NoError(t, ix.IndexDocument("doc1", "word"))

	got := ix.Search("word")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Frequency, "re-indexing the same ID adds occurrences")
	assert.Equal(t, 1, ix.DocumentCount())

	entries := ix.FrequencyVector("word")
	require.Len(t, entries, 1)
	assert.Equal(t, 3, entries[0].Count, "the doc keeps its original vector key")
}

func TestIndexerStats(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "alpha beta"))
	require.NoError(t, ix.IndexDocument("doc2", "alpha gamma"))

	stats := ix.Stats()
	assert.Equal(t, 2, stats.DocumentCount)
	assert.Equal(t, 3, stats.VocabularySize)
	assert.Equal(t, 3, stats.SparseVectors)
	// alpha is in 2/2 docs, beta and gamma in 1/2 each: mean = (1 + 0.5 + 0.5) / 3
	assert.InDelta(t, 2.0/3.0, stats.AverageDensity, 1e-9)
}

func TestIndexerStatsEmpty(t *testing.T) {
	ix := NewIndexer()
	stats := ix.Stats()
	assert.Zero(t, stats.DocumentCount)
	assert.Zero(t, stats.VocabularySize)
	assert.Zero(t, stats.AverageDensity)
}

func TestIndexerConcurrentReads(t *testing.T) {
	ix := NewIndexer()
	require.NoError(t, ix.IndexDocument("doc1", "concurrent reads are allowed"))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = ix.Search("concurrent")
				_ = ix.Suggest("re", 0)
				_ = ix.Stats()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
