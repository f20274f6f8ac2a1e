// Package e2e runs the whole pipeline — corpus load, vocabulary, index
// build, query processing, report output — through the public APIs only.
package e2e

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"docsearch/internal/corpus"
	"docsearch/internal/index"
	"docsearch/internal/search"
	"docsearch/internal/vocab"
)

func TestPipelineGoldenOutput(t *testing.T) {
	corpusText := "the cat sat\nthe dog ran\ncats and dogs\n"
	queryText := "cat\nthe dog\nzebra\n"

	c, err := corpus.FromReader(strings.NewReader(corpusText))
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}
	v := vocab.Build(c)
	idx, err := index.NewBuilder(index.WithWorkers(4)).Build(context.Background(), c, v)
	if err != nil {
		t.Fatalf("building index: %v", err)
	}
	queries, err := search.ReadQueries(strings.NewReader(queryText))
	if err != nil {
		t.Fatalf("loading queries: %v", err)
	}

	engine := search.NewEngine(idx, c, v, search.WithWorkers(4))
	defer engine.Close()

	var out bytes.Buffer
	if err := engine.RunAll(context.Background(), queries, &out); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	// "cat" matches only doc 0 ("the cat sat"): cos = 1/sqrt(3).
	// "the dog" matches only doc 1 ("the dog ran"): cos = 2/sqrt(6).
	// "zebra" is unseen, so its candidate set is empty.
	want := "Query: cat\n" +
		"0\n" +
		"0 54.73561\n" +
		"Query: the dog\n" +
		"1\n" +
		"1 35.26439\n" +
		"Query: zebra\n" +
		"\n"
	if out.String() != want {
		t.Errorf("pipeline output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestPipelineStableAcrossWorkerCounts(t *testing.T) {
	corpusText := "a b c d e\nb c d\na a c\nd e e b\nc\na b c d e f g"
	queryText := "c d\nb\na b c\nmissing"

	var outputs []string
	for _, workers := range []int{1, 2, 4, 8} {
		c := corpus.FromText(corpusText)
		v := vocab.Build(c)
		idx, err := index.NewBuilder(index.WithWorkers(workers)).Build(context.Background(), c, v)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		queries, err := search.ReadQueries(strings.NewReader(queryText))
		if err != nil {
			t.Fatal(err)
		}
		engine := search.NewEngine(idx, c, v, search.WithWorkers(workers))
		var out bytes.Buffer
		if err := engine.RunAll(context.Background(), queries, &out); err != nil {
			engine.Close()
			t.Fatalf("workers=%d: %v", workers, err)
		}
		engine.Close()
		outputs = append(outputs, out.String())
	}
	for i := 1; i < len(outputs); i++ {
		if outputs[i] != outputs[0] {
			t.Errorf("output differs between worker counts:\n%s\nvs\n%s", outputs[0], outputs[i])
		}
	}
}
