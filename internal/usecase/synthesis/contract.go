package synthesis

import (
	"context"

	"github.com/YogeshRao005/capillary-chatbot/internal/domain"
)

// Generator is the consumer interface for one generation transport serving
// multiple named models.
type Generator interface {
	Generate(ctx context.Context, model string, req domain.GenerationRequest) (string, error)
}
