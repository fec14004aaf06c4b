package pipeline

import (
	"context"
	"sync"
)

// Barrier is a one-shot gate. Release opens it for every current and
// future Wait. Releasing more than once has no effect.
type Barrier struct {
	once sync.Once
	done chan struct{}
}

// NewBarrier returns a closed gate.
func NewBarrier() *Barrier {
	return &Barrier{done: make(chan struct{})}
}

// Release opens the gate.
func (b *Barrier) Release() {
	b.once.Do(func() { close(b.done) })
}

// Wait blocks until the gate is opened or the context is done.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Released reports whether Release was called.
func (b *Barrier) Released() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
