// Package index holds the inverted index and its concurrent builder.
package index

// Inverted maps each vocabulary term to its postings list: the ascending,
// duplicate-free document IDs containing that term. Built once per corpus
// and read-only afterward; query processing never mutates it.
type Inverted struct {
	postings map[string][]int
}

// Lookup returns the postings list for term. A term absent from the index
// yields nil, which callers treat as an empty postings list — ordinary
// control flow, never an error.
func (idx *Inverted) Lookup(term string) []int {
	return idx.postings[term]
}

// TermCount returns the number of indexed terms.
func (idx *Inverted) TermCount() int {
	return len(idx.postings)
}
