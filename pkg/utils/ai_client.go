package utils

import (
	"context"
	"fmt"
	"strings"
)

// PlanGenerationClient turns a prompt into raw JSON text. Callers own the deadline.
type PlanGenerationClient interface {
	GenerateJSON(ctx context.Context, prompt string, maxTokens int) (string, error)
	Close() error
}

// NewPlanGenerationClient picks the OpenAI or Gemini implementation by provider name.
func NewPlanGenerationClient(provider, apiKey, model, baseURL string) (PlanGenerationClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrProviderDisabled)
	}
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAIPlanClient(apiKey, model, baseURL), nil
	case "gemini", "":
		return NewGeminiPlanClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
