package search

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	pkgerrors "docsearch/pkg/errors"
	"docsearch/pkg/logger"
)

// ReadQueries reads one query per line from r, preserving file order.
// Blank lines are kept: an empty query is still a query.
func ReadQueries(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	queries := make([]string, 0)
	for scanner.Scan() {
		queries = append(queries, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading queries: %w", err)
	}
	return queries, nil
}

// LoadQueries reads a newline-delimited query file.
func LoadQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening query file %s: %w", path, err)
	}
	defer f.Close()
	return ReadQueries(f)
}

// RunAll processes queries strictly sequentially in the given order,
// writing each report to w before the next query starts. A failed query is
// logged and skipped — the shared index stays valid and later queries still
// run — and the per-query errors are joined into the return value. A write
// failure on w aborts the run.
func (e *Engine) RunAll(ctx context.Context, queries []string, w io.Writer) error {
	if len(queries) == 0 {
		return pkgerrors.ErrEmptyQuerySet
	}
	var queryErrs []error
	for i, q := range queries {
		qctx := logger.WithQueryID(ctx, i)
		res, err := e.Execute(qctx, q)
		if err != nil {
			logger.FromContext(qctx).Error("query failed", "query", q, "error", err)
			queryErrs = append(queryErrs, fmt.Errorf("query %d %q: %w", i, q, err))
			continue
		}
		if err := WriteResult(w, res); err != nil {
			return fmt.Errorf("query %d: %w", i, err)
		}
	}
	return errors.Join(queryErrs...)
}
