package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// gttsMaxChars is the longest input the translate TTS endpoint accepts per request.
const gttsMaxChars = 100

// GTTS speaks text through the Google Translate text-to-speech endpoint.
type GTTS struct {
	endpoint string
	client   *http.Client
}

func NewGTTS(endpoint string, client *http.Client) *GTTS {
	if client == nil {
		client = http.DefaultClient
	}
	return &GTTS{endpoint: endpoint, client: client}
}

func (g *GTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := chunkText(text, gttsMaxChars)
	if len(chunks) == 0 {
		return nil, ErrEmptyText
	}
	tl, err := BaseLanguage(lang)
	if err != nil {
		return nil, err
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		data, err := g.fetch(ctx, chunk, tl, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		audio.Write(data)
	}
	return audio.Bytes(), nil
}

func (g *GTTS) fetch(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("client", "tw-ob")
	query.Set("tl", lang)
	query.Set("q", chunk)
	query.Set("idx", strconv.Itoa(idx))
	query.Set("total", strconv.Itoa(total))
	query.Set("textlen", strconv.Itoa(len([]rune(chunk))))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > 256 {
			msg = msg[:256]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	return body, nil
}
