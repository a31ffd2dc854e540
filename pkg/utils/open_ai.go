package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const tripPlannerSystemPrompt = "You are a meticulous travel planner. Reply with a single JSON object and nothing else."

type OpenAIPlanClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIPlanClient(apiKey, model, baseURL string) *OpenAIPlanClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIPlanClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenAIPlanClient) GenerateJSON(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tripPlannerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned by OpenAI")
	}

	return CleanJSONResponse(resp.Choices[0].Message.Content), nil
}

func (c *OpenAIPlanClient) Close() error { return nil }
