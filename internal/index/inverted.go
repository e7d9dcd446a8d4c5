package index

import "strings"

// Posting records how often a word occurs in one document.
type Posting struct {
	DocID     string `json:"doc_id"`
	Frequency int    `json:"frequency"`
}

// PostingList holds a word's postings in the order the documents were first
// recorded. The first document to contain a word stays first.
type PostingList []Posting

// InvertedIndex maps each distinct word to its posting list. There is at most
// one posting per (word, document) pair; recording the same pair again
// increments the existing posting instead of appending a duplicate.
//
// InvertedIndex is not safe for concurrent use; the owning Indexer serialises
// access.
type InvertedIndex struct {
	postings map[string]PostingList
	// position of each docID within a word's posting list, so repeated
	// records stay O(1) instead of scanning the list
	slots map[string]map[string]int
}

// NewInvertedIndex returns an empty InvertedIndex.
func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		postings: make(map[string]PostingList),
		slots:    make(map[string]map[string]int),
	}
}

// Record notes one occurrence of word in the document docID. The word is
// lower-cased first.
func (ix *InvertedIndex) Record(word, docID string) {
	word = strings.ToLower(word)
	slot, ok := ix.slots[word]
	if !ok {
		slot = make(map[string]int)
		ix.slots[word] = slot
	}
	if pos, exists := slot[docID]; exists {
		ix.postings[word][pos].Frequency++
		return
	}
	slot[docID] = len(ix.postings[word])
	ix.postings[word] = append(ix.postings[word], Posting{DocID: docID, Frequency: 1})
}

// Lookup returns a copy of the posting list for word, empty (never nil) when
// the word was not recorded. Absence is a valid, queryable state, not an
// error.
func (ix *InvertedIndex) Lookup(word string) PostingList {
	word = strings.ToLower(word)
	list, ok := ix.postings[word]
	if !ok {
		return PostingList{}
	}
	out := make(PostingList, len(list))
	copy(out, list)
	return out
}

// VocabularySize returns the number of distinct words recorded.
func (ix *InvertedIndex) VocabularySize() int {
	return len(ix.postings)
}
