package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

type stubEmbedder struct {
	result domain.EmbeddingResult
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return s.result, s.err
}

func TestLazy_FactoryRunsOnce(t *testing.T) {
	var constructed int32
	lazy := NewLazy(func() (domain.Embedder, error) {
		atomic.AddInt32(&constructed, 1)
		return &stubEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}, nil
	})

	for i := 0; i < 3; i++ {
		if _, err := lazy.Embed(context.Background(), "q"); err != nil {
			t.Fatalf("Embed: %v", err)
		}
	}

	if got := atomic.LoadInt32(&constructed); got != 1 {
		t.Errorf("factory ran %d times, want 1", got)
	}
}

func TestLazy_ConcurrentFirstUse(t *testing.T) {
	var constructed int32
	lazy := NewLazy(func() (domain.Embedder, error) {
		atomic.AddInt32(&constructed, 1)
		return &stubEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = lazy.Embed(context.Background(), "q")
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&constructed); got != 1 {
		t.Errorf("factory ran %d times under concurrency, want 1", got)
	}
}

func TestLazy_InitFailureIsPermanent(t *testing.T) {
	initErr := errors.New("model load failed")
	var attempts int32
	lazy := NewLazy(func() (domain.Embedder, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, initErr
	})

	for i := 0; i < 2; i++ {
		_, err := lazy.Embed(context.Background(), "q")
		if !errors.Is(err, initErr) {
			t.Fatalf("expected init error, got %v", err)
		}
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("factory retried %d times, want exactly 1 attempt", got)
	}
}

func TestLazy_HealthCheckTriggersInit(t *testing.T) {
	initErr := errors.New("no credentials")
	lazy := NewLazy(func() (domain.Embedder, error) { return nil, initErr })

	if err := lazy.HealthCheck(context.Background()); !errors.Is(err, initErr) {
		t.Fatalf("expected init error from HealthCheck, got %v", err)
	}
}
