package domain

import "errors"

// Sentinel errors shared across layers.
var (
	// ErrEmptyQuery signals an empty or whitespace-only question. It is the
	// only error surfaced to callers as a validation failure rather than a
	// server fault.
	ErrEmptyQuery = errors.New("empty query")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a single generation provider failure.
	// The synthesis chain recovers it by moving to the next provider.
	ErrGenerationProviderError = errors.New("generation provider error")
	// ErrIndexNotLoaded signals that the vector index or its metadata is
	// missing at startup.
	ErrIndexNotLoaded = errors.New("vector index not loaded")
)
