package extractor

import (
	"fmt"
	"strings"
)

// Section labels the campaign prompt asks the model to use as headers.
const (
	AdCopy      = "Ad Copy"
	EmailCopy   = "Email Marketing Copy"
	SocialPosts = "Social Media Posts"
	RadioScript = "Radio Script"
	AudioBrief  = "Audio Brief"
)

// Labels lists every known section label in the order the prompt requests them.
var Labels = []string{AdCopy, EmailCopy, SocialPosts, RadioScript, AudioBrief}

// Fallback is shown in place of a section that could not be located.
// Extraction itself never returns it.
const Fallback = "Not available."

type Mode string

const (
	ModeLines   Mode = "lines"
	ModePattern Mode = "pattern"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLines:
		return ModeLines, nil
	case ModePattern:
		return ModePattern, nil
	default:
		return "", fmt.Errorf("unknown extractor mode %q (want %q or %q)", s, ModeLines, ModePattern)
	}
}

// Sections holds the extracted body of every known label. Missing sections are empty.
type Sections struct {
	AdCopy      string `json:"ad_copy"`
	Email       string `json:"email"`
	Social      string `json:"social"`
	RadioScript string `json:"radio_script"`
	AudioBrief  string `json:"audio_brief"`
}

// Extractor locates labeled sections in a generated campaign document.
// The zero value uses the line-based heuristic.
type Extractor struct {
	Mode Mode
}

func New(mode Mode) Extractor {
	return Extractor{Mode: mode}
}

// Extract returns the content of label within document, or "" when the label
// cannot be found.
func (e Extractor) Extract(document, label string) string {
	if e.Mode == ModePattern {
		return Pattern(document, label)
	}
	return Lines(document, label)
}

func (e Extractor) ExtractAll(document string) Sections {
	return Sections{
		AdCopy:      e.Extract(document, AdCopy),
		Email:       e.Extract(document, EmailCopy),
		Social:      e.Extract(document, SocialPosts),
		RadioScript: e.Extract(document, RadioScript),
		AudioBrief:  e.Extract(document, AudioBrief),
	}
}
