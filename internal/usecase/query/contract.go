package query

import (
	"context"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

// Embedder vectorizes the question for nearest-neighbor search.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Searcher is the nearest-neighbor oracle over the corpus index. Results are
// ordered ascending by distance; ids may exceed the metadata bounds and must
// be filtered by the caller.
type Searcher interface {
	Search(vector []float32, k int) ([]domain.Candidate, error)
}

// DocumentResolver maps candidate ids to document records. ok is false for
// ids outside the metadata range.
type DocumentResolver interface {
	Resolve(id int) (domain.Document, bool)
}

// Fetcher retrieves the cleaned live text of a documentation page. Failures
// surface as an empty string, never an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) string
}

// Synthesizer produces the final answer; it never returns an empty string.
type Synthesizer interface {
	Synthesize(ctx context.Context, query, contextText string) string
}
