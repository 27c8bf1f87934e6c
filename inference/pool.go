package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool runs token-classification inference over a fixed set of Sessions, so
// concurrent recognizer calls never contend on a single ONNX session. All
// sessions load the same model; a request borrows whichever is free.
type Pool struct {
	free     chan *Session
	sessions []*Session
	done     chan struct{}
	closing  sync.Once
	closeErr error
}

// NewPool loads the model into size sessions. A size below 1 is treated
// as 1.
func NewPool(modelPath string, size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}

	p := &Pool{
		free: make(chan *Session, size),
		done: make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		s, err := NewSession(modelPath)
		if err != nil {
			for _, open := range p.sessions {
				_ = open.Close()
			}
			return nil, fmt.Errorf("loading session %d of %d: %w", i+1, size, err)
		}
		p.sessions = append(p.sessions, s)
		p.free <- s
	}
	return p, nil
}

// Infer borrows a free session, runs it on the tokenized input, and returns
// one label-logit vector per token. It blocks while every session is busy,
// honoring ctx; after Close it fails with ErrPoolClosed.
func (p *Pool) Infer(ctx context.Context, inputIDs, attentionMask []int64) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case s := <-p.free:
		defer func() { p.free <- s }()
		return s.Infer(ctx, inputIDs, attentionMask)
	case <-p.done:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Size returns the number of sessions the pool owns.
func (p *Pool) Size() int {
	return len(p.sessions)
}

// Close waits for borrowed sessions to come back, then releases every
// session. Further Infer calls fail with ErrPoolClosed; repeat calls are
// no-ops returning the first result.
func (p *Pool) Close() error {
	p.closing.Do(func() {
		close(p.done)
		var errs []error
		for range p.sessions {
			s := <-p.free
			if err := s.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		p.closeErr = errors.Join(errs...)
	})
	return p.closeErr
}
