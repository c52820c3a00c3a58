package synthesis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
	"github.com/YogeshRao005/capillary-chatbot/internal/metrics"
)

// Canned answers returned without invoking any generation provider.
const (
	AnswerEmployment = "This query relates to employment at CapillaryTech. " +
		"For details on careers, visit the official CapillaryTech careers page."
	AnswerNoMatch = "This query does not match CapillaryTech documentation content. " +
		"Please ask about APIs, parameters, or product usage for a detailed response."
)

// Service runs the answer synthesis chain.
type Service struct {
	generator   Generator
	models      []string
	maxTokens   int
	temperature float32
	logger      *zap.Logger
}

// New creates a synthesis service. models are tried in order; the first
// successful completion wins verbatim.
func New(generator Generator, models []string, maxTokens int, temperature float32, logger *zap.Logger) *Service {
	return &Service{
		generator:   generator,
		models:      models,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Synthesize produces the final answer for query given the assembled
// context. It never returns an empty string and never fails: provider
// errors degrade to the deterministic fallback.
func (s *Service) Synthesize(ctx context.Context, query, contextText string) string {
	if IsEmploymentQuery(query) {
		metrics.AnswersTotal.WithLabelValues("offtopic").Inc()
		return AnswerEmployment
	}

	if !IsRelevantContext(contextText) {
		metrics.AnswersTotal.WithLabelValues("no_match").Inc()
		return AnswerNoMatch
	}

	truncated := TruncateContext(contextText)
	prompt := buildPrompt(query, truncated)

	for _, model := range s.models {
		answer, err := s.generator.Generate(ctx, model, domain.GenerationRequest{
			Prompt:      prompt,
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
		})
		if err != nil {
			// Move to the next model; a provider is never retried.
			s.logger.Warn("generation provider failed, trying next",
				zap.String("model", model),
				zap.Error(err),
			)
			continue
		}
		metrics.AnswersTotal.WithLabelValues("provider").Inc()
		return answer
	}

	s.logger.Warn("all generation providers failed, using deterministic fallback",
		zap.Int("models_tried", len(s.models)),
	)
	metrics.AnswersTotal.WithLabelValues("fallback").Inc()
	return FallbackAnswer(query, truncated)
}

// buildPrompt carries the query and truncated context with a structured
// response instruction. The chain treats the prompt as opaque.
func buildPrompt(query, contextText string) string {
	return fmt.Sprintf(
		"Answer the query '%s' using only the provided CapillaryTech documentation context. "+
			"Return a concise, structured response with numbered points (e.g., 1. Step..., 2. Step...). "+
			"If the context lacks specific details, provide a general explanation based on the context. "+
			"Context: %s",
		query, contextText,
	)
}
