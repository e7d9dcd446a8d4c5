// Package tokenizer normalises raw document text into index terms.
//
// The rule is fixed: input is lower-cased and split on runs of characters
// that are neither letters nor digits. Nothing else is done — no stop-word
// removal and no stemming, because search results must report the true
// per-document occurrence count of every word as it was written.
package tokenizer

import (
	"strings"
	"unicode"
)

// Tokenize returns the normalised words of text in order of appearance.
// Duplicates are preserved; callers that need per-word frequencies count them.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Frequencies returns the distinct words of text with their occurrence
// counts, plus the order in which each word first appeared. The order slice
// makes downstream structures insertion-order deterministic.
func Frequencies(text string) (counts map[string]int, order []string) {
	words := Tokenize(text)
	counts = make(map[string]int, len(words))
	order = make([]string, 0, len(words))
	for _, w := range words {
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}
	return counts, order
}

// NormalizeWord applies the same normalisation to a single query word. It
// returns the empty string when the input contains no letters or digits.
func NormalizeWord(word string) string {
	tokens := Tokenize(word)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}
