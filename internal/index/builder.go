package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"docsearch/internal/corpus"
	"docsearch/internal/partition"
	"docsearch/internal/vocab"
	pkgerrors "docsearch/pkg/errors"
	"docsearch/pkg/metrics"
)

// Builder constructs an inverted index by partitioning the vocabulary into
// contiguous chunks, one per worker. Each worker scans every document for
// its own terms only, so the partial maps have disjoint key sets and the
// final merge is a plain union.
type Builder struct {
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers overrides the worker count. Zero or negative keeps the
// default (runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithMetrics attaches Prometheus collectors to the build.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// NewBuilder returns a Builder sized to the hardware by default.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		workers: runtime.NumCPU(),
		logger:  slog.Default().With("component", "index-builder"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build constructs the complete inverted index for the corpus. Any worker
// error fails the whole build; no partial index is returned. The result is
// identical for any worker count.
func (b *Builder) Build(ctx context.Context, c *corpus.Corpus, v *vocab.Vocabulary) (*Inverted, error) {
	if c.Len() == 0 {
		return nil, pkgerrors.ErrEmptyCorpus
	}
	start := time.Now()
	terms := v.Terms()
	chunks := partition.Bounds(len(terms), b.workers)
	partials := make([]map[string][]int, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			part, err := buildChunk(ctx, terms[chunk.Start:chunk.End], c.Docs)
			if err != nil {
				return fmt.Errorf("worker %d (terms %d..%d): %w", i, chunk.Start, chunk.End, err)
			}
			partials[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: index build: %w", pkgerrors.ErrWorkerFailure, err)
	}

	// Chunk key sets are disjoint by construction, so the union never has
	// to resolve a conflict.
	merged := make(map[string][]int, len(terms))
	for _, part := range partials {
		for term, ids := range part {
			merged[term] = ids
		}
	}

	elapsed := time.Since(start)
	if b.metrics != nil {
		b.metrics.DocsIndexedTotal.Add(float64(c.Len()))
		b.metrics.VocabularyTerms.Set(float64(v.Size()))
		b.metrics.IndexBuildDuration.Observe(elapsed.Seconds())
	}
	b.logger.Info("index built",
		"documents", c.Len(),
		"terms", len(merged),
		"workers", len(chunks),
		"elapsed", elapsed,
	)
	return &Inverted{postings: merged}, nil
}

// buildChunk scans every document once per term in the chunk. Documents are
// visited in ID order, so each postings list is ascending and
// duplicate-free by construction.
func buildChunk(ctx context.Context, terms []string, docs []corpus.Document) (map[string][]int, error) {
	part := make(map[string][]int, len(terms))
	for _, term := range terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids := []int{}
		for _, doc := range docs {
			if doc.Contains(term) {
				ids = append(ids, doc.ID)
			}
		}
		part[term] = ids
	}
	return part, nil
}
