package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var ran int32
	for i := 0; i < 10; i++ {
		i := i
		pool.Submit(func(ctx context.Context) Outcome {
			atomic.AddInt32(&ran, 1)
			return Outcome{Path: "file", Conflicts: i}
		})
	}

	outcomes := pool.Wait()

	if atomic.LoadInt32(&ran) != 10 {
		t.Errorf("Expected 10 tasks to run, got %d", ran)
	}
	if len(outcomes) != 10 {
		t.Errorf("Expected 10 outcomes, got %d", len(outcomes))
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(func(ctx context.Context) Outcome {
		return Outcome{Path: "good.yaml", Conflicts: 2, Critical: 1}
	})
	pool.Submit(func(ctx context.Context) Outcome {
		return Outcome{Path: "bad.yaml", Err: errors.New("boom")}
	})

	outcomes := pool.Wait()
	if len(outcomes) != 2 {
		t.Fatalf("Expected 2 outcomes, got %d", len(outcomes))
	}

	var failed int
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("Expected 1 failed outcome, got %d", failed)
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	pool.Submit(func(ctx context.Context) Outcome {
		return Outcome{Path: "x"}
	})

	outcomes := pool.Wait()
	if len(outcomes) != 1 {
		t.Errorf("Expected 1 outcome, got %d", len(outcomes))
	}
}

func TestPool_ShutdownCancelsContext(t *testing.T) {
	pool := NewPool(1)
	pool.Start()

	started := make(chan struct{})
	pool.Submit(func(ctx context.Context) Outcome {
		close(started)
		select {
		case <-ctx.Done():
			return Outcome{Path: "cancelled", Err: ctx.Err()}
		case <-time.After(5 * time.Second):
			return Outcome{Path: "timeout"}
		}
	})

	<-started
	pool.Shutdown()
}
