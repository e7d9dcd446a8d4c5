package index

import (
	"sort"
	"strings"
)

// trieNode maps a single rune to its child. Children use a map rather than a
// fixed array because the tokenizer passes through any Unicode letter or
// digit, so the alphabet is open.
type trieNode struct {
	children  map[rune]*trieNode
	endOfWord bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is a prefix tree over the indexed vocabulary. Words are stored
// lower-cased, one rune per level. Nodes are created lazily on insert and
// never removed.
//
// Trie is not safe for concurrent use; the owning Indexer serialises access.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie returns an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds word to the trie, lower-casing it first. Inserting a word that
// is already present leaves the trie unchanged. The empty string is a no-op:
// the tokenizer never produces empty terms, so the root is never a word.
func (t *Trie) Insert(word string) {
	if word == "" {
		return
	}
	node := t.root
	for _, r := range strings.ToLower(word) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	if !node.endOfWord {
		node.endOfWord = true
		t.size++
	}
}

// Contains reports whether word was inserted as a complete word. A strict
// prefix of an inserted word is not itself a match.
func (t *Trie) Contains(word string) bool {
	node := t.descend(strings.ToLower(word))
	return node != nil && node.endOfWord
}

// HasPrefix reports whether any inserted word starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	return t.descend(strings.ToLower(prefix)) != nil
}

// Autocomplete returns every inserted word starting with prefix, in
// lexicographic order (depth-first traversal with children visited in
// ascending rune order, which keeps results reproducible). An empty prefix
// enumerates the whole vocabulary. limit bounds the result count; limit <= 0
// means unbounded.
func (t *Trie) Autocomplete(prefix string, limit int) []string {
	prefix = strings.ToLower(prefix)
	node := t.descend(prefix)
	if node == nil {
		return []string{}
	}
	results := make([]string, 0)
	collectWords(node, prefix, &results, limit)
	return results
}

// Size returns the number of distinct words inserted.
func (t *Trie) Size() int {
	return t.size
}

// descend walks the path spelled by s and returns the final node, or nil if
// the path does not fully exist.
func (t *Trie) descend(s string) *trieNode {
	node := t.root
	for _, r := range s {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func collectWords(node *trieNode, current string, results *[]string, limit int) {
	if limit > 0 && len(*results) >= limit {
		return
	}
	if node.endOfWord {
		*results = append(*results, current)
	}
	if len(node.children) == 0 {
		return
	}
	runes := make([]rune, 0, len(node.children))
	for r := range node.children {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	for _, r := range runes {
		collectWords(node.children[r], current+string(r), results, limit)
	}
}
