package domain

import "context"

// GenerationRequest is a single answer-generation attempt against one model.
type GenerationRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Generator produces text from a prompt. One Generator may serve several
// named models; the synthesis chain addresses them by model name.
type Generator interface {
	Generate(ctx context.Context, model string, req GenerationRequest) (string, error)
}
