package campaign

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/extractor"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/imagegen"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceholderImage stands in for the creative when image generation fails.
const PlaceholderImage = "/static/placeholder.svg"

var ErrInvalidBrief = errors.New("invalid brief")

type TextGenerator interface {
	GenerateCampaign(ctx context.Context, brief models.Brief) (string, error)
}

type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*imagegen.Image, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type MediaStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

type Store interface {
	SaveCampaign(ctx context.Context, c *models.Campaign) error
}

// Options tune the pipeline. Zero values are usable.
type Options struct {
	Extractor  extractor.Extractor
	SpeechLang string
	Now        func() time.Time
	NewID      func() string
}

// Service runs one submission through text, image, audio and persistence.
// Every external call is made once, in order. Only a text failure aborts the
// run; the other stages degrade and record a notice.
type Service struct {
	text   TextGenerator
	images ImageGenerator
	speech SpeechSynthesizer
	media  MediaStore
	store  Store
	opts   Options
	logger *zap.Logger
}

func NewService(text TextGenerator, images ImageGenerator, speech SpeechSynthesizer,
	media MediaStore, store Store, opts Options, logger *zap.Logger) *Service {
	if opts.SpeechLang == "" {
		opts.SpeechLang = "en"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Service{
		text:   text,
		images: images,
		speech: speech,
		media:  media,
		store:  store,
		opts:   opts,
		logger: logger.Named("campaign"),
	}
}

func (s *Service) Generate(ctx context.Context, brief models.Brief) (*models.Campaign, error) {
	if err := brief.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBrief, err)
	}

	c := &models.Campaign{
		ID:        s.opts.NewID(),
		Product:   brief.Product,
		Audience:  brief.Audience,
		CreatedAt: s.opts.Now().UTC(),
	}
	log := s.logger.With(zap.String("campaign_id", c.ID))
	log.Info("generating campaign", zap.String("product", c.Product))

	document, err := s.text.GenerateCampaign(ctx, brief)
	if err != nil {
		log.Error("text generation failed", zap.Error(err))
		return nil, fmt.Errorf("failed to generate campaign text: %w", err)
	}
	c.Document = document

	sections := s.opts.Extractor.ExtractAll(document)
	c.AdCopy = sections.AdCopy
	c.Email = sections.Email
	c.Social = sections.Social
	c.RadioScript = sections.RadioScript
	c.AudioBrief = sections.AudioBrief
	log.Debug("extracted sections",
		zap.Bool("ad_copy", c.AdCopy != ""),
		zap.Bool("email", c.Email != ""),
		zap.Bool("social", c.Social != ""),
		zap.Bool("radio_script", c.RadioScript != ""),
		zap.Bool("audio_brief", c.AudioBrief != ""),
	)

	s.attachImage(ctx, c, log)
	s.attachAudio(ctx, c, log)

	if err := s.store.SaveCampaign(ctx, c); err != nil {
		log.Error("failed to persist campaign", zap.Error(err))
		c.AddNotice(models.StagePersist, fmt.Sprintf("The campaign could not be saved: %v", err))
	}

	log.Info("campaign ready", zap.Int("notices", len(c.Notices)))
	return c, nil
}

func (s *Service) attachImage(ctx context.Context, c *models.Campaign, log *zap.Logger) {
	placeholder := func(msg string) {
		c.ImageURL = PlaceholderImage
		c.ImagePlaceholder = true
		c.AddNotice(models.StageImage, msg)
	}

	img, err := s.images.Generate(ctx, imagegen.Prompt(c.Product, c.Audience))
	if err != nil {
		log.Warn("image generation failed", zap.Error(err))
		placeholder(fmt.Sprintf("Image generation failed: %v", err))
		return
	}

	url, err := s.media.Save(ctx, c.ID+"/creative"+img.Extension(), img.ContentType, img.Data)
	if err != nil {
		log.Warn("failed to store image", zap.Error(err))
		placeholder(fmt.Sprintf("The generated image could not be stored: %v", err))
		return
	}
	c.ImageURL = url
}

func (s *Service) attachAudio(ctx context.Context, c *models.Campaign, log *zap.Logger) {
	script := SpeechInput(c)
	if script == "" {
		c.AddNotice(models.StageAudio, "No text was available for the audio ad.")
		return
	}

	audio, err := s.speech.Synthesize(ctx, script, s.opts.SpeechLang)
	if err != nil {
		log.Warn("speech synthesis failed", zap.Error(err))
		c.AddNotice(models.StageAudio, fmt.Sprintf("Audio generation failed: %v", err))
		return
	}

	url, err := s.media.Save(ctx, c.ID+"/audio.mp3", "audio/mpeg", audio)
	if err != nil {
		log.Warn("failed to store audio", zap.Error(err))
		c.AddNotice(models.StageAudio, fmt.Sprintf("The generated audio could not be stored: %v", err))
		return
	}
	c.AudioURL = url
}

// SpeechInput picks the text read aloud: the audio brief, then the radio
// script, then the ad copy, then the first non-blank line of the document.
func SpeechInput(c *models.Campaign) string {
	for _, candidate := range []string{c.AudioBrief, c.RadioScript, c.AdCopy} {
		if candidate = strings.TrimSpace(candidate); candidate != "" {
			return candidate
		}
	}
	for _, line := range strings.Split(c.Document, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
