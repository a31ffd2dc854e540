package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiPlanClient implements PlanGenerationClient using Google's Gemini models
type GeminiPlanClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlanClient(apiKey, model string) (PlanGenerationClient, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlanClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlanClient) GenerateJSON(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	m := c.client.GenerativeModel(c.model)
	// JSON-only output; the parser still strips fences in case the model ignores it.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.7)
	m.SetTopP(0.9)
	m.SetMaxOutputTokens(int32(maxTokens))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text parts")
	}

	return CleanJSONResponse(sb.String()), nil
}

func (c *GeminiPlanClient) Close() error {
	return c.client.Close()
}
