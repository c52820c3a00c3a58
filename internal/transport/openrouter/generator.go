// Package openrouter provides answer generation over the OpenRouter
// chat-completions API (OpenAI-compatible wire format).
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
	"github.com/YogeshRao005/capillary-chatbot/internal/metrics"
)

// DefaultBaseURL is the public OpenRouter endpoint.
const DefaultBaseURL = "https://openrouter.ai/api/v1"

// Generator calls OpenRouter chat completions. One Generator serves all
// configured models; the synthesis chain picks the model per attempt.
type Generator struct {
	client  *openai.Client
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration // per-request bound, default 5s
	Logger  *zap.Logger
}

var _ domain.Generator = (*Generator)(nil)

// New creates an OpenRouter generation provider.
func New(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		timeout: timeout,
		logger:  logger,
	}
}

// Generate implements domain.Generator. Each call is bounded by the
// configured per-request timeout; failures are wrapped with
// domain.ErrGenerationProviderError so the chain can recover locally.
func (g *Generator) Generate(ctx context.Context, model string, req domain.GenerationRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})

	duration := time.Since(start)

	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(model, "error").Inc()
		g.logger.Warn("generation request failed",
			zap.String("model", model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", wrapProviderError(model, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.GenerationRequestsTotal.WithLabelValues(model, "error").Inc()
		return "", fmt.Errorf("model %s returned empty completion: %w",
			model, domain.ErrGenerationProviderError)
	}

	metrics.GenerationRequestsTotal.WithLabelValues(model, "success").Inc()
	g.logger.Debug("generation request completed",
		zap.String("model", model),
		zap.Duration("duration", duration),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

func wrapProviderError(model string, err error) error {
	wrap := domain.ErrGenerationProviderError

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("model %s API error %d: %s: %w",
			model, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("model %s API error %d: %s: %w",
			model, reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	return fmt.Errorf("model %s request failed: %v: %w", model, err, wrap)
}
