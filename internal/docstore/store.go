// Package docstore keeps the raw text of ingested documents in memory so the
// service can list documents and show previews next to search results. The
// index itself never stores document text.
package docstore

import (
	"strings"
	"sync"
)

// Store holds document text keyed by document ID, remembering insertion
// order for listings.
type Store struct {
	mu    sync.RWMutex
	docs  map[string]string
	order []string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{docs: make(map[string]string)}
}

// Put stores (or replaces) the text for docID.
func (s *Store) Put(docID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[docID]; !exists {
		s.order = append(s.order, docID)
	}
	s.docs[docID] = text
}

// Get returns the text for docID and whether it exists.
func (s *Store) Get(docID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[docID]
	return text, ok
}

// List returns the document IDs in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Preview returns the first line of the document, truncated to n runes with
// an ellipsis when longer. Unknown documents yield the empty string.
func (s *Store) Preview(docID string, n int) string {
	text, ok := s.Get(docID)
	if !ok || n <= 0 {
		return ""
	}
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	runes := []rune(line)
	if len(runes) <= n {
		return line
	}
	return string(runes[:n]) + "..."
}
