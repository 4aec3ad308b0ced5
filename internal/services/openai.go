package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"excelinterviewer/mock-interviewer/internal/config"
)

const graderSystemPrompt = "You are a strict Excel interviewer. Reply with a single JSON object only."

type openAIService struct {
	client *openai.Client
	model  string
}

// NewOpenAIService talks to OpenAI or any compatible API set by OPENAI_BASE_URL.
func NewOpenAIService(cfg config.LLMConfig) (TextGenerator, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &openAIService{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
	}, nil
}

// GenerateText implements TextGenerator using JSON-object mode.
func (o *openAIService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: graderSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &ErrProviderUnavailable{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("no choices in OpenAI response")}
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateTextWithRetry implements TextGenerator.
func (o *openAIService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return generateWithRetry(ctx, o.GenerateText, prompt, temperature, maxRetries)
}
