// Package embedding holds the embedder decorators owned by the service
// composition root.
package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

// Lazy defers construction of the underlying embedder until first use and
// guarantees the factory runs at most once, even under concurrent first-use.
// A failed construction is permanent: every subsequent call returns the same
// initialization error, since no query can proceed without embedding.
type Lazy struct {
	once    sync.Once
	factory func() (domain.Embedder, error)
	inner   domain.Embedder
	initErr error
}

// NewLazy wraps an embedder factory in a single-initialization guard.
func NewLazy(factory func() (domain.Embedder, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) init() {
	l.once.Do(func() {
		l.inner, l.initErr = l.factory()
	})
}

// Embed initializes the underlying embedder on first call and delegates.
func (l *Lazy) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	l.init()
	if l.initErr != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("init embedder: %w", l.initErr)
	}
	return l.inner.Embed(ctx, text)
}

// HealthCheck forces initialization and delegates when the underlying
// embedder supports health checks.
func (l *Lazy) HealthCheck(ctx context.Context) error {
	l.init()
	if l.initErr != nil {
		return fmt.Errorf("init embedder: %w", l.initErr)
	}
	if hc, ok := l.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}
