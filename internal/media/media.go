package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"go.uber.org/zap"
)

var ErrInvalidName = errors.New("invalid media name")

// Store keeps generated image and audio bytes and returns a URL for them.
type Store interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// New builds the media store selected by cfg.Backend. The returned close
// function releases any client the store holds.
func New(ctx context.Context, cfg config.MediaConfig, logger *zap.Logger) (Store, func() error, error) {
	switch cfg.Backend {
	case config.MediaLocal:
		store, err := NewLocalStore(cfg.Dir, cfg.BaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	case config.MediaGCS:
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return NewGCSStore(client, cfg.GCSBucket, cfg.GCSPublic, logger), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
	}
}

// cleanName rejects absolute paths and parent references so names stay
// inside the store root.
func cleanName(name string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(name))[1:]
	if cleaned == "" || cleaned != strings.TrimSpace(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return cleaned, nil
}
