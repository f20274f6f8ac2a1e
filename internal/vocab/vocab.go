// Package vocab builds the corpus-wide vocabulary and fixes its canonical
// enumeration order.
//
// The order is load-bearing: it is the dimension ordering for every
// term-frequency vector built later, so it is materialized once here as an
// explicit slice plus position map rather than left implicit in any map's
// iteration order.
package vocab

import "docsearch/internal/corpus"

// Vocabulary is the set of distinct corpus terms in first-seen order:
// documents scanned in ID order, tokens within a document in occurrence
// order. Read-only once built.
type Vocabulary struct {
	terms    []string
	position map[string]int
	freq     map[string]int
}

// Build scans the corpus and returns its vocabulary. Deterministic for a
// given document order.
func Build(c *corpus.Corpus) *Vocabulary {
	v := &Vocabulary{
		position: make(map[string]int),
		freq:     make(map[string]int),
	}
	for _, doc := range c.Docs {
		for _, tok := range doc.Tokens {
			if _, seen := v.position[tok]; !seen {
				v.position[tok] = len(v.terms)
				v.terms = append(v.terms, tok)
			}
			v.freq[tok]++
		}
	}
	return v
}

// Size returns the number of distinct terms, which is also the length of
// every term-frequency vector.
func (v *Vocabulary) Size() int {
	return len(v.terms)
}

// Terms returns the terms in canonical order. Callers must not mutate the
// returned slice.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

// Position returns the vector dimension assigned to term.
func (v *Vocabulary) Position(term string) (int, bool) {
	pos, ok := v.position[term]
	return pos, ok
}

// Frequency returns the total occurrence count of term across the corpus.
// Diagnostic only; ranking never consumes it.
func (v *Vocabulary) Frequency(term string) int {
	return v.freq[term]
}
