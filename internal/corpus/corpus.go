package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Corpus is the ordered document sequence, indexed 0..N-1.
type Corpus struct {
	Docs []Document
}

// FromText splits text into lines, one document per line, and assigns
// sequential IDs in line order.
func FromText(text string) *Corpus {
	if text == "" {
		return &Corpus{}
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	docs := make([]Document, 0, len(lines))
	for i, line := range lines {
		docs = append(docs, NewDocument(i, line))
	}
	return &Corpus{Docs: docs}
}

// FromReader reads newline-delimited documents from r.
func FromReader(r io.Reader) (*Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	docs := make([]Document, 0)
	for scanner.Scan() {
		docs = append(docs, NewDocument(len(docs), scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return &Corpus{Docs: docs}, nil
}

// LoadFile reads a corpus from a newline-delimited text file.
func LoadFile(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f)
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.Docs)
}

// IDs returns every document ID in ascending order.
func (c *Corpus) IDs() []int {
	ids := make([]int, len(c.Docs))
	for i := range c.Docs {
		ids[i] = c.Docs[i].ID
	}
	return ids
}
