package inference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

func newTestPool(t *testing.T, size int) *Pool {
	t.Helper()
	if _, err := os.Stat(testModel); err != nil {
		t.Skipf("model not available at %s", testModel)
	}
	p, err := NewPool(testModel, size)
	if err != nil {
		if ortUnavailable(err) {
			t.Skipf("ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestNewPool_SizeFloor(t *testing.T) {
	for _, size := range []int{0, -3} {
		p := newTestPool(t, size)
		if p.Size() != 1 {
			t.Errorf("Size() = %d for requested %d, want 1", p.Size(), size)
		}
	}
}

func TestNewPool_ModelMissing(t *testing.T) {
	if _, err := NewPool("../testdata/missing.onnx", 2); err == nil {
		t.Fatal("NewPool succeeded with a missing model")
	}
}

func TestPool_Infer_RowPerToken(t *testing.T) {
	p := newTestPool(t, 2)

	logits, err := p.Infer(context.Background(), testTokenIDs, maskOf(testTokenIDs))
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if len(logits) != len(testTokenIDs) {
		t.Fatalf("rows = %d, want one per token (%d)", len(logits), len(testTokenIDs))
	}
}

func TestPool_Infer_Concurrent(t *testing.T) {
	p := newTestPool(t, 2)

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logits, err := p.Infer(context.Background(), testTokenIDs, maskOf(testTokenIDs))
			if err != nil {
				errs <- err
				return
			}
			if len(logits) != len(testTokenIDs) {
				errs <- fmt.Errorf("rows = %d, want %d", len(logits), len(testTokenIDs))
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Infer: %v", err)
	}
}

func TestPool_Infer_CancelledContext(t *testing.T) {
	p := newTestPool(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Infer(ctx, testTokenIDs, maskOf(testTokenIDs))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPool_InferAfterClose(t *testing.T) {
	p := newTestPool(t, 2)

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	_, err := p.Infer(context.Background(), testTokenIDs, maskOf(testTokenIDs))
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("err = %v, want ErrPoolClosed", err)
	}
}

func TestPool_CloseWaitsForBorrowedSession(t *testing.T) {
	p := newTestPool(t, 1)

	// Take the only session out, the way an in-flight Infer holds one.
	s := <-p.free

	done := make(chan error, 1)
	go func() { done <- p.Close() }()

	select {
	case err := <-done:
		t.Fatalf("Close returned while a session was borrowed: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	p.free <- s
	if err := <-done; err != nil {
		t.Errorf("Close: %v", err)
	}
}
