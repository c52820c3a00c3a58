// Package query orchestrates the end-to-end question resolution pipeline:
// embed, rank, fetch, assemble, synthesize.
package query

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
	"github.com/YogeshRao005/capillary-chatbot/internal/logger"
	"github.com/YogeshRao005/capillary-chatbot/internal/usecase/synthesis"
)

// AnswerNoResults is returned when no ranked candidate survives the
// metadata bound check.
const AnswerNoResults = "No relevant documentation found. Try rephrasing your query."

// Service composes the pipeline stages. All dependencies are read-only or
// internally synchronized, so one Service serves concurrent queries.
type Service struct {
	embedder Embedder
	searcher Searcher
	docs     DocumentResolver
	fetcher  Fetcher
	synth    Synthesizer
	topK     int
}

// New creates the query pipeline service.
func New(
	embedder Embedder,
	searcher Searcher,
	docs DocumentResolver,
	fetcher Fetcher,
	synth Synthesizer,
	topK int,
) *Service {
	if topK <= 0 {
		topK = 3
	}
	return &Service{
		embedder: embedder,
		searcher: searcher,
		docs:     docs,
		fetcher:  fetcher,
		synth:    synth,
		topK:     topK,
	}
}

// Answer resolves a question into an answer plus source citations.
//
// An empty or whitespace-only question returns domain.ErrEmptyQuery before
// any embedding or search work. Any other error means the pipeline itself
// failed (embedding or index); per-document fetch failures and provider
// failures never surface here.
func (s *Service) Answer(ctx context.Context, question string) (domain.QueryResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.QueryResult{}, domain.ErrEmptyQuery
	}

	log := logger.FromContext(ctx)

	emb, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("embed query: %w", err)
	}

	candidates, err := s.searcher.Search(emb.Embedding, s.topK)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("search index: %w", err)
	}

	// Out-of-range ids from the oracle are silently dropped.
	var resolved []domain.Document
	for _, c := range candidates {
		doc, ok := s.docs.Resolve(c.ID)
		if !ok {
			log.Debug("dropping out-of-range candidate", zap.Int("id", c.ID))
			continue
		}
		resolved = append(resolved, doc)
	}

	if len(resolved) == 0 {
		return domain.QueryResult{
			Answer:  AnswerNoResults,
			Sources: []domain.Source{},
		}, nil
	}

	titles := make([]string, len(resolved))
	sources := make([]domain.Source, len(resolved))
	for i, doc := range resolved {
		titles[i] = doc.Title
		sources[i] = domain.Source{Title: doc.Title, URL: doc.URL}
	}

	contents := s.fetchAll(ctx, resolved)

	contextText := s.assembleAndLog(log, question, titles, contents)
	answer := s.synth.Synthesize(ctx, question, contextText)

	return domain.QueryResult{Answer: answer, Sources: sources}, nil
}

// fetchAll retrieves contents for every resolved document concurrently.
// Fan-out is bounded by top-k (small); result order matches ranking order.
func (s *Service) fetchAll(ctx context.Context, docs []domain.Document) []string {
	contents := make([]string, len(docs))

	g, fetchCtx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			contents[i] = s.fetcher.Fetch(fetchCtx, doc.URL)
			return nil
		})
	}
	// Fetch failures are already absorbed into empty strings.
	_ = g.Wait()

	return contents
}

func (s *Service) assembleAndLog(log *zap.Logger, question string, titles, contents []string) string {
	contextText := synthesis.AssembleContext(titles, contents)

	preview := contextText
	if len(preview) > 500 {
		preview = preview[:500]
	}
	log.Debug("assembled context",
		zap.String("question", question),
		zap.Int("context_len", len(contextText)),
		zap.String("context_preview", preview),
	)
	return contextText
}
