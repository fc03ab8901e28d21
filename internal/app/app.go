package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/campaign"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/generator"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/imagegen"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/media"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/speech"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/store"
	"go.uber.org/zap"
)

// App holds the collaborators built from a Config.
type App struct {
	Service   *campaign.Service
	Store     store.Store
	Extractor extractor.Extractor
	// MediaDir is set when media is written to a local directory.
	MediaDir string

	closers []func() error
}

// New builds every collaborator named in cfg. On error anything already
// opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	mode, err := extractor.ParseMode(cfg.ExtractorMode)
	if err != nil {
		return nil, err
	}
	a.Extractor = extractor.New(mode)

	lang, err := speech.NormalizeLanguage(cfg.Speech.Lang)
	if err != nil {
		return nil, err
	}

	text, err := generator.New(ctx, cfg.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	a.closers = append(a.closers, text.Close)

	images, err := imagegen.New(cfg.Image, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create image generator: %w", err)
	}

	synth, err := speech.New(cfg.Speech, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech synthesizer: %w", err)
	}

	mediaStore, closeMedia, err := media.New(ctx, cfg.Media, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create media store: %w", err)
	}
	a.closers = append(a.closers, closeMedia)
	if local, ok := mediaStore.(*media.LocalStore); ok {
		a.MediaDir = local.Dir()
	}

	db, err := store.New(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.DB.Type, err)
	}
	a.Store = db
	a.closers = append(a.closers, db.Close)

	a.Service = campaign.NewService(text, images, synth, mediaStore, db, campaign.Options{
		Extractor:  a.Extractor,
		SpeechLang: lang,
	}, logger)

	logger.Info("campaign pipeline ready",
		zap.String("text_provider", cfg.Text.Provider),
		zap.String("image_provider", cfg.Image.Provider),
		zap.String("speech_provider", cfg.Speech.Provider),
		zap.String("media_backend", cfg.Media.Backend),
		zap.String("db_type", cfg.DB.Type),
		zap.String("extractor_mode", string(mode)),
	)
	return a, nil
}

// Close releases collaborators in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
