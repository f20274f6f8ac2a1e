// Package search evaluates free-text queries against a built inverted
// index: boolean AND filtering over postings lists, then parallel cosine
// ranking of the surviving candidates.
package search

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"docsearch/internal/corpus"
	"docsearch/internal/index"
	"docsearch/internal/partition"
	"docsearch/internal/pool"
	"docsearch/internal/vector"
	"docsearch/internal/vocab"
	"docsearch/pkg/logger"
	"docsearch/pkg/metrics"
	"docsearch/pkg/resilience"
)

// Result is the answer to a single query.
type Result struct {
	// Query is the literal query text.
	Query string `json:"query"`
	// Candidates are the document IDs passing the AND filter, ascending.
	Candidates []int `json:"candidates"`
	// Ranked holds one entry per rankable candidate in ascending-angle
	// order, ties broken by ascending document ID. Candidates with a
	// degenerate (zero-norm) vector are excluded.
	Ranked []DocAngle `json:"ranked"`
}

// Engine answers queries against one immutable index. Queries run strictly
// one at a time; the intra-query ranking fan-out reuses a single worker
// pool across all queries in the run.
type Engine struct {
	idx     *index.Inverted
	corpus  *corpus.Corpus
	vocab   *vocab.Vocabulary
	pool    *pool.Pool
	cache   *Cache
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the ranking pool size. Zero or negative keeps the
// default (runtime.NumCPU()).
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pool = pool.New(n)
		}
	}
}

// WithCache attaches an optional query-result cache.
func WithCache(c *Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithQueryTimeout caps a single query's execution. Zero disables the cap.
func WithQueryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// NewEngine creates an Engine over a built index. The caller owns the
// engine's lifetime and must Close it to release the worker pool.
func NewEngine(idx *index.Inverted, c *corpus.Corpus, v *vocab.Vocabulary, opts ...Option) *Engine {
	e := &Engine{
		idx:    idx,
		corpus: c,
		vocab:  v,
		logger: slog.Default().With("component", "search-engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pool == nil {
		e.pool = pool.New(runtime.NumCPU())
	}
	return e
}

// Close releases the worker pool. The index itself stays valid.
func (e *Engine) Close() {
	e.pool.Close()
}

// Execute answers one query. A query failure leaves the shared index and
// the pool intact; the engine remains usable for subsequent queries.
func (e *Engine) Execute(ctx context.Context, queryText string) (*Result, error) {
	start := time.Now()
	res, err := e.executeCached(ctx, queryText)
	if err == nil {
		e.logger.Info("query executed",
			"query", queryText,
			"candidates", len(res.Candidates),
			"ranked", len(res.Ranked),
			"elapsed", time.Since(start),
		)
	}
	if e.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		e.metrics.QueriesTotal.WithLabelValues(status).Inc()
		e.metrics.QueryLatency.Observe(time.Since(start).Seconds())
		if res != nil {
			e.metrics.CandidatesPerQuery.Observe(float64(len(res.Candidates)))
		}
	}
	return res, err
}

func (e *Engine) executeCached(ctx context.Context, queryText string) (*Result, error) {
	if e.cache != nil {
		return e.cache.GetOrCompute(ctx, queryText, func() (*Result, error) {
			return e.execute(ctx, queryText)
		})
	}
	return e.execute(ctx, queryText)
}

func (e *Engine) execute(ctx context.Context, queryText string) (*Result, error) {
	log := logger.FromContext(ctx).With("component", "search-engine")
	res := &Result{
		Query:      queryText,
		Candidates: []int{},
		Ranked:     []DocAngle{},
	}
	terms := corpus.Tokenize(queryText)

	candidates := e.filterCandidates(terms)
	res.Candidates = candidates
	log.Debug("candidates filtered",
		"query", queryText,
		"terms", len(terms),
		"candidates", len(candidates),
	)
	if len(candidates) == 0 {
		return res, nil
	}

	queryFreq := make(map[string]int, len(terms))
	for _, t := range terms {
		queryFreq[t]++
	}
	queryVec := vector.Build(queryFreq, e.vocab)
	if vector.Norm(queryVec) == 0 {
		// No recognized terms in the query: every angle is undefined, so
		// the candidate list stands alone with nothing ranked.
		return res, nil
	}

	err := resilience.WithTimeout(ctx, e.timeout, "rank", func(ctx context.Context) error {
		ranked, err := e.rank(ctx, candidates, queryVec)
		if err != nil {
			return err
		}
		res.Ranked = ranked
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug("query ranked", "query", queryText, "ranked", len(res.Ranked))
	return res, nil
}

// filterCandidates applies AND semantics: the running candidate set starts
// as every document and is intersected with each distinct term's postings
// list. A term absent from the index has an empty postings list, which
// collapses the set — a query with any unseen term matches nothing.
func (e *Engine) filterCandidates(terms []string) []int {
	candidates := e.corpus.IDs()
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		candidates = intersect(candidates, e.idx.Lookup(term))
		if len(candidates) == 0 {
			return []int{}
		}
	}
	return candidates
}

// intersect merges two ascending ID lists, keeping IDs present in both.
func intersect(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// rank fans the candidate set out over the pool in contiguous chunks, each
// worker computing the query-to-document angle for its slice, then merges
// and orders the partial results. The join is synchronous: every chunk
// completes (or the whole ranking fails) before anything is merged.
func (e *Engine) rank(ctx context.Context, candidates []int, queryVec []float64) ([]DocAngle, error) {
	chunks := partition.Bounds(len(candidates), e.pool.Workers())
	partials := make([][]DocAngle, len(chunks))
	tasks := make([]pool.Task, len(chunks))
	for i, chunk := range chunks {
		i, chunk := i, chunk
		tasks[i] = func() error {
			part := make([]DocAngle, 0, chunk.Len())
			for _, docID := range candidates[chunk.Start:chunk.End] {
				doc := e.corpus.Docs[docID]
				docVec := vector.Build(doc.Freq, e.vocab)
				angle, err := vector.AngleDegrees(docVec, queryVec)
				if err != nil {
					// Degenerate vector: excluded from ranking, not an
					// arithmetic fault.
					continue
				}
				part = append(part, DocAngle{DocID: docID, Angle: angle})
			}
			partials[i] = part
			return nil
		}
	}
	if err := e.pool.Run(ctx, tasks); err != nil {
		return nil, err
	}
	return mergeRanked(partials), nil
}
