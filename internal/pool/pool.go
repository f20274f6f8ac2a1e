// Package pool implements the fixed-size worker pool shared by all queries
// in a run. Workers are started once and reused; each ranking phase is a
// dispatch followed by a synchronous join, so no partial results are ever
// consumed.
package pool

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "docsearch/pkg/errors"
)

// Task is one unit of fan-out work. A non-nil return fails the whole batch.
type Task func() error

type job struct {
	task Task
	done chan<- error
}

// Pool is a fixed set of worker goroutines fed from a single task channel.
type Pool struct {
	workers int
	jobs    chan job

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool of the given size. Size must be >= 1.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan job),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done <- j.task()
	}
}

// Workers returns the pool size.
func (p *Pool) Workers() int {
	return p.workers
}

// Run dispatches the tasks over the pool and blocks until every dispatched
// task has finished (the join barrier). The first task error is returned
// after the barrier; a cancelled ctx stops further dispatch but already
// dispatched tasks are still drained. Run must not be called concurrently
// with Close.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return pkgerrors.ErrPoolClosed
	}
	p.mu.Unlock()

	done := make(chan error, len(tasks))
	dispatched := 0
	var dispatchErr error
dispatch:
	for _, t := range tasks {
		if err := ctx.Err(); err != nil {
			dispatchErr = fmt.Errorf("dispatch aborted: %w", err)
			break dispatch
		}
		select {
		case p.jobs <- job{task: t, done: done}:
			dispatched++
		case <-ctx.Done():
			dispatchErr = fmt.Errorf("dispatch aborted: %w", ctx.Err())
			break dispatch
		}
	}

	var firstErr error
	for i := 0; i < dispatched; i++ {
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if dispatchErr != nil {
		return dispatchErr
	}
	if firstErr != nil {
		return fmt.Errorf("%w: %w", pkgerrors.ErrWorkerFailure, firstErr)
	}
	return nil
}

// Close releases the pool and waits for the workers to exit. Safe to call
// more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
