// Package query executes exact-word searches against the index and enriches
// the postings with document previews from the docstore.
package query

import (
	"log/slog"

	"minisearch/internal/docstore"
	"minisearch/internal/index"
)

// Hit is one document match for a searched word.
type Hit struct {
	DocID   string `json:"doc_id"`
	Count   int    `json:"count"`
	Preview string `json:"preview,omitempty"`
}

// SearchResult is the full answer to an exact-word search.
type SearchResult struct {
	Word      string `json:"word"`
	TotalDocs int    `json:"total_docs"`
	Hits      []Hit  `json:"hits"`
}

// Executor turns index posting lists into SearchResults.
type Executor struct {
	idx        *index.Indexer
	docs       *docstore.Store
	previewLen int
	logger     *slog.Logger
}

// NewExecutor creates an Executor. docs may be nil when previews are not
// wanted.
func NewExecutor(idx *index.Indexer, docs *docstore.Store, previewLen int) *Executor {
	return &Executor{
		idx:        idx,
		docs:       docs,
		previewLen: previewLen,
		logger:     slog.Default().With("component", "query-executor"),
	}
}

// Execute looks up word and builds a SearchResult with previews. An unknown
// word yields an empty (zero-hit) result, not an error.
func (e *Executor) Execute(word string) *SearchResult {
	postings := e.idx.Search(word)
	result := &SearchResult{
		Word:      word,
		TotalDocs: len(postings),
		Hits:      make([]Hit, 0, len(postings)),
	}
	for _, p := range postings {
		hit := Hit{DocID: p.DocID, Count: p.Frequency}
		if e.docs != nil {
			hit.Preview = e.docs.Preview(p.DocID, e.previewLen)
		}
		result.Hits = append(result.Hits, hit)
	}
	e.logger.Debug("search executed", "word", word, "hits", len(result.Hits))
	return result
}
