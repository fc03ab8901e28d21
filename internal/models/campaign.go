package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxBriefFieldLength = 1000

var (
	ErrMissingProduct  = errors.New("product details are required")
	ErrMissingAudience = errors.New("target audience is required")
	ErrFieldTooLong    = errors.New("brief field is too long")
)

// Brief is what the user submits through the form.
type Brief struct {
	Product  string `json:"product" form:"product"`
	Audience string `json:"audience" form:"audience"`
}

// Normalize trims both fields and reports the first validation problem.
func (b *Brief) Normalize() error {
	b.Product = strings.TrimSpace(b.Product)
	b.Audience = strings.TrimSpace(b.Audience)

	switch {
	case b.Product == "":
		return ErrMissingProduct
	case b.Audience == "":
		return ErrMissingAudience
	case utf8.RuneCountInString(b.Product) > MaxBriefFieldLength,
		utf8.RuneCountInString(b.Audience) > MaxBriefFieldLength:
		return ErrFieldTooLong
	}
	return nil
}

// Campaign is the flat record produced by one submission.
type Campaign struct {
	ID               string    `json:"id" db:"id" firestore:"id"`
	Product          string    `json:"product" db:"product" firestore:"product"`
	Audience         string    `json:"audience" db:"audience" firestore:"audience"`
	Document         string    `json:"document" db:"document" firestore:"document"`
	AdCopy           string    `json:"ad_copy" db:"ad_copy" firestore:"ad_copy"`
	Email            string    `json:"email" db:"email_campaign" firestore:"email"`
	Social           string    `json:"social" db:"social_posts" firestore:"social"`
	RadioScript      string    `json:"radio_script" db:"radio_script" firestore:"radio_script"`
	AudioBrief       string    `json:"audio_brief" db:"audio_brief" firestore:"audio_brief"`
	ImageURL         string    `json:"image" db:"image_url" firestore:"image"`
	ImagePlaceholder bool      `json:"image_placeholder" db:"image_placeholder" firestore:"image_placeholder"`
	AudioURL         string    `json:"audio" db:"audio_url" firestore:"audio"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" firestore:"created_at"`

	Notices []Notice `json:"notices,omitempty" db:"-" firestore:"-"`
}

// Stages a Notice can refer to.
const (
	StageImage   = "image"
	StageAudio   = "audio"
	StagePersist = "persist"
)

// Notice tells the user that a stage degraded instead of failing the run.
type Notice struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (c *Campaign) AddNotice(stage, message string) {
	c.Notices = append(c.Notices, Notice{Stage: stage, Message: message})
}
