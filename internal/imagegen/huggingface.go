package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody bounds how much of an error response is kept for display.
const maxErrorBody = 512

// HuggingFace calls a hosted text-to-image inference endpoint.
type HuggingFace struct {
	url    string
	token  string
	client *http.Client
}

func NewHuggingFace(url, token string, client *http.Client) *HuggingFace {
	if client == nil {
		client = http.DefaultClient
	}
	return &HuggingFace{url: url, token: token, client: client}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

func (h *HuggingFace) Generate(ctx context.Context, prompt string) (*Image, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("image response was empty")
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(body)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}

	return &Image{Data: body, ContentType: contentType}, nil
}
