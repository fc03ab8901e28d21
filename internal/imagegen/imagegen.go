package imagegen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
)

// Image is a generated creative.
type Image struct {
	Data        []byte
	ContentType string
}

// Extension maps the content type to a file extension for storage.
func (i *Image) Extension() string {
	switch i.ContentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}

// StatusError is returned when the provider answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image generation failed with status %d: %s", e.StatusCode, e.Body)
}

// Prompt builds the creative prompt for a product and its audience.
func Prompt(product, audience string) string {
	return fmt.Sprintf("Ad creative for %s targeting %s", product, audience)
}

func New(cfg config.ImageConfig, timeout time.Duration) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderHuggingFace:
		return NewHuggingFace(cfg.HFURL, cfg.HFToken, &http.Client{Timeout: timeout}), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Provider)
	}
}
