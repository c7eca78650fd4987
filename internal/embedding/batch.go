package embedding

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Batcher embeds many texts concurrently on a bounded worker pool.
// Items never share state, so order is restored simply by writing each
// result into its own slot.
type Batcher struct {
	embedder Embedder
	pool     *ants.Pool
}

// BatchOption configures a Batcher.
type BatchOption func(*Batcher) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BatchOption {
	return func(b *Batcher) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// NewBatcher creates a Batcher over embedder.
func NewBatcher(embedder Embedder, opts ...BatchOption) (*Batcher, error) {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	b := &Batcher{embedder: embedder, pool: pool}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			b.Release()
			return nil, err
		}
	}
	return b, nil
}

// Embedder returns the underlying embedder.
func (b *Batcher) Embedder() Embedder {
	return b.embedder
}

// EmbedBatch embeds every text independently and returns the vectors in input order.
// The first error cancels the remaining work and is returned.
func (b *Batcher) EmbedBatch(ctx context.Context, texts []string) ([]Vector, error) {
	vectors := make([]Vector, len(texts))
	if len(texts) == 0 {
		return vectors, nil
	}

	parent := ctx
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i, text := range texts {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		i, text := i, text
		err := b.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			vector, err := b.embedder.EmbedText(ctx, text)
			if err != nil {
				fail(err)
				return
			}
			vectors[i] = vector
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Release stops the worker pool.
func (b *Batcher) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}
