// Package corpus holds the document data model and corpus loading.
//
// A document is one line of input text. Tokenization is a plain whitespace
// split: case-sensitive, punctuation-sensitive, no normalization of any
// kind, so "cat", "Cat" and "cat." are three distinct terms.
package corpus

import "strings"

// Document is a single corpus entry, identified by a non-negative ID
// assigned in corpus scan order (0..N-1). Immutable after construction.
type Document struct {
	ID int
	// Tokens is the ordered token sequence of the original line. The
	// vocabulary's enumeration order depends on it, so it is retained
	// alongside the frequency map.
	Tokens []string
	// Freq maps each term to its occurrence count within this document.
	Freq map[string]int
}

// Tokenize splits text on whitespace into terms.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// NewDocument tokenizes one line of text and builds its term-frequency map
// in a single pass.
func NewDocument(id int, text string) Document {
	tokens := Tokenize(text)
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return Document{
		ID:     id,
		Tokens: tokens,
		Freq:   freq,
	}
}

// Contains reports whether the document holds term with count > 0. This is
// exact term membership, never substring containment.
func (d Document) Contains(term string) bool {
	return d.Freq[term] > 0
}
