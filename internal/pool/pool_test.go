package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	pkgerrors "docsearch/pkg/errors"
)

func TestRunExecutesAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	var ran atomic.Int64
	tasks := make([]Task, 17)
	for i := range tasks {
		tasks[i] = func() error {
			ran.Add(1)
			return nil
		}
	}
	if err := p.Run(context.Background(), tasks); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ran.Load() != 17 {
		t.Errorf("ran %d tasks, want 17", ran.Load())
	}
}

func TestRunPropagatesWorkerFailure(t *testing.T) {
	p := New(2)
	defer p.Close()

	boom := errors.New("boom")
	var ran atomic.Int64
	tasks := []Task{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return boom },
		func() error { ran.Add(1); return nil },
	}
	err := p.Run(context.Background(), tasks)
	if !errors.Is(err, pkgerrors.ErrWorkerFailure) {
		t.Fatalf("err = %v, want ErrWorkerFailure", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped cause", err)
	}
	// The join barrier drains everything that was dispatched.
	if ran.Load() != 3 {
		t.Errorf("ran %d tasks, want 3", ran.Load())
	}
}

func TestPoolReusedAcrossBatches(t *testing.T) {
	p := New(3)
	defer p.Close()

	for batch := 0; batch < 5; batch++ {
		var ran atomic.Int64
		tasks := make([]Task, 7)
		for i := range tasks {
			tasks[i] = func() error { ran.Add(1); return nil }
		}
		if err := p.Run(context.Background(), tasks); err != nil {
			t.Fatalf("batch %d: %v", batch, err)
		}
		if ran.Load() != 7 {
			t.Fatalf("batch %d: ran %d, want 7", batch, ran.Load())
		}
	}
}

func TestRunAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	err := p.Run(context.Background(), []Task{func() error { return nil }})
	if !errors.Is(err, pkgerrors.ErrPoolClosed) {
		t.Errorf("err = %v, want ErrPoolClosed", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	p := New(1)
	p.Close()
	p.Close()
}

func TestRunWithCancelledContext(t *testing.T) {
	p := New(2)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int64
	tasks := []Task{
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return nil },
	}
	err := p.Run(ctx, tasks)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if ran.Load() != 0 {
		t.Errorf("ran %d tasks after cancellation, want 0", ran.Load())
	}
}

func TestWorkersFloor(t *testing.T) {
	p := New(0)
	defer p.Close()
	if p.Workers() != 1 {
		t.Errorf("Workers() = %d, want 1", p.Workers())
	}
}
