// Package index implements the in-memory search index: a prefix tree over the
// vocabulary, an inverted index from words to documents, and per-word sparse
// frequency vectors, combined by the Indexer orchestrator.
package index

import (
	"log/slog"
	"sync"

	"minisearch/internal/tokenizer"
	apperrors "minisearch/pkg/errors"
)

// Stats summarises the index for reporting.
type Stats struct {
	DocumentCount  int     `json:"document_count"`
	VocabularySize int     `json:"vocabulary_size"`
	SparseVectors  int     `json:"sparse_vectors"`
	AverageDensity float64 `json:"average_density"`
}

// Indexer owns the three index structures and is the single entry point for
// ingestion and queries. The structures themselves are unsynchronised
// accumulators (insert-only for the process lifetime), so the Indexer holds a
// RWMutex: ingestion takes the write lock, queries the read lock.
//
// Sparse-vector keys are sequential integers assigned per distinct document
// ID at first ingestion. Hashing document IDs to keys would only be
// probabilistically collision-free; sequential assignment makes key
// uniqueness structural.
type Indexer struct {
	mu       sync.RWMutex
	trie     *Trie
	inverted *InvertedIndex
	vectors  map[string]*SparseVector
	docKeys  map[string]int
	nextKey  int
	logger   *slog.Logger
}

// NewIndexer returns an empty Indexer.
func NewIndexer() *Indexer {
	return &Indexer{
		trie:     NewTrie(),
		inverted: NewInvertedIndex(),
		vectors:  make(map[string]*SparseVector),
		docKeys:  make(map[string]int),
		logger:   slog.Default().With("component", "indexer"),
	}
}

// IndexDocument tokenizes text and records every word occurrence in the trie,
// the inverted index, and the word's sparse vector. Empty text indexes
// nothing and is not an error; an empty docID is a contract violation and
// fails before any structure is touched. Indexing the same docID again adds
// further occurrences on top of the existing ones — there is no document
// update or removal.
func (ix *Indexer) IndexDocument(docID, text string) error {
	if docID == "" {
		return apperrors.New(apperrors.ErrInvalidInput, 400, "document ID must not be empty")
	}
	words := tokenizer.Tokenize(text)

	ix.mu.Lock()
	defer ix.mu.Unlock()

	key, known := ix.docKeys[docID]
	if !known {
		key = ix.nextKey
		ix.docKeys[docID] = key
		ix.nextKey++
	}

	for _, word := range words {
		ix.trie.Insert(word)
		ix.inverted.Record(word, docID)
		vec, ok := ix.vectors[word]
		if !ok {
			vec = NewSparseVector()
			ix.vectors[word] = vec
		}
		// delta is the constant 1, which cannot violate Increment's contract
		_ = vec.Increment(key, 1)
	}

	ix.logger.Debug("document indexed",
		"doc_id", docID,
		"doc_key", key,
		"tokens", len(words),
		"vocabulary", ix.inverted.VocabularySize(),
	)
	return nil
}

// Search returns the posting list for an exact word, empty when the word is
// not in the index. The trie answers membership before the inverted index is
// consulted.
func (ix *Indexer) Search(word string) PostingList {
	normalized := tokenizer.NormalizeWord(word)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if normalized == "" || !ix.trie.Contains(normalized) {
		return PostingList{}
	}
	return ix.inverted.Lookup(normalized)
}

// Suggest returns up to limit indexed words starting with prefix, in
// lexicographic order. limit <= 0 means unbounded.
func (ix *Indexer) Suggest(prefix string, limit int) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.trie.Autocomplete(prefix, limit)
}

// FrequencyVector returns the sparse frequency vector entries for word,
// sorted by document key. Unknown words yield an empty slice.
func (ix *Indexer) FrequencyVector(word string) []SparseEntry {
	normalized := tokenizer.NormalizeWord(word)
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	vec, ok := ix.vectors[normalized]
	if !ok {
		return []SparseEntry{}
	}
	return vec.Items()
}

// DocumentCount returns the number of distinct documents indexed.
func (ix *Indexer) DocumentCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docKeys)
}

// Stats reports document count, vocabulary size, and the mean density of the
// sparse vectors measured against the document count.
func (ix *Indexer) Stats() Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	s := Stats{
		DocumentCount:  len(ix.docKeys),
		VocabularySize: ix.inverted.VocabularySize(),
		SparseVectors:  len(ix.vectors),
	}
	if len(ix.vectors) > 0 && s.DocumentCount > 0 {
		total := 0
		for _, vec := range ix.vectors {
			total += vec.Len()
		}
		s.AverageDensity = float64(total) / float64(len(ix.vectors)*s.DocumentCount)
	}
	return s
}
