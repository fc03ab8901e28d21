package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BerylCAtieno/campaign-generator-agent/internal/config"
	"golang.org/x/text/language"
)

var (
	ErrEmptyText           = errors.New("nothing to synthesize")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

// StatusError is returned when the speech endpoint answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("speech synthesis failed with status %d: %s", e.StatusCode, e.Body)
}

func New(cfg config.SpeechConfig, timeout time.Duration) (Synthesizer, error) {
	switch cfg.Provider {
	case config.ProviderGTTS:
		return NewGTTS(cfg.GTTSURL, &http.Client{Timeout: timeout}), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIVoice), nil
	default:
		return nil, fmt.Errorf("unknown speech provider %q", cfg.Provider)
	}
}

// NormalizeLanguage validates a BCP 47 tag such as "en" or "pt-BR".
func NormalizeLanguage(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return "en", nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrUnsupportedLanguage, lang, err)
	}
	return tag.String(), nil
}

// BaseLanguage validates lang and reduces it to its base language, so
// "pt-BR" becomes "pt".
func BaseLanguage(lang string) (string, error) {
	normalized, err := NormalizeLanguage(lang)
	if err != nil {
		return "", err
	}
	base, _ := language.Make(normalized).Base()
	return base.String(), nil
}

// chunkText splits text on word boundaries into pieces of at most max runes.
// Words longer than max are split mid-word.
func chunkText(text string, max int) []string {
	var (
		chunks  []string
		current strings.Builder
	)
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, current.String())
			current.Reset()
		}
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			flush()
			runes := []rune(word)
			chunks = append(chunks, string(runes[:max]))
			word = string(runes[max:])
		}

		n := utf8.RuneCountInString(current.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > max {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()
	return chunks
}
