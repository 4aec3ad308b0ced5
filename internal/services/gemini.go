package services

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"

	"excelinterviewer/mock-interviewer/internal/config"
)

// GeminiService grades free-text answers and embeds reference-guide chunks.
type GeminiService interface {
	TextGenerator
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(ctx context.Context, cfg config.LLMConfig) (GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  cfg.GeminiModel,
		embedModel: cfg.EmbeddingModel,
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// ~10k tokens is the embedding input limit
	if len(text) > 40000 {
		text = text[:40000]
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements TextGenerator. Replies are requested as JSON since
// the only caller is the rubric grader.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  1024,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", &ErrProviderUnavailable{Provider: "gemini", Err: err}
	}
	if resp == nil {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("nil response")}
	}

	text := resp.Text()
	if text == "" {
		return "", &ErrInvalidResponse{Err: fmt.Errorf("no text content in response")}
	}

	return text, nil
}

// GenerateTextWithRetry implements TextGenerator.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return generateWithRetry(ctx, g.GenerateText, prompt, temperature, maxRetries)
}
