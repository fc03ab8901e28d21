package generator

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/BerylCAtieno/campaign-generator-agent/internal/models"
)

// VertexClient talks to Gemini through Vertex AI using application default credentials.
type VertexClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewVertexClient(ctx context.Context, projectID, region, modelName string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(2048)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	return &VertexClient{client: client, model: model}, nil
}

func (v *VertexClient) Close() error {
	return v.client.Close()
}

func (v *VertexClient) GenerateCampaign(ctx context.Context, brief models.Brief) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(BuildPrompt(brief)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content from vertex: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}

	text := cleanResponse(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
