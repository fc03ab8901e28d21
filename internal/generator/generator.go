package generator

import (
	"context"
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
)

// Client drafts the campaign document for a brief.
type Client interface {
	GenerateCampaign(ctx context.Context, brief models.Brief) (string, error)
	Close() error
}

// New builds the text generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.TextConfig) (Client, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderVertex:
		return NewVertexClient(ctx, cfg.VertexProject, cfg.VertexRegion, cfg.VertexModel)
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown text provider %q", cfg.Provider)
	}
}
