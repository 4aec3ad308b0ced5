package services

import (
	"context"
	"fmt"
	"log"

	"excelinterviewer/mock-interviewer/internal/config"
)

// TextGenerator is the slice of an LLM provider the rubric grader needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error)
}

// NewTextGenerator picks the grading provider named by LLM_PROVIDER. An empty
// provider or "none" returns nil, leaving free-text answers to keyword scoring.
func NewTextGenerator(cfg config.LLMConfig, gemini GeminiService) (TextGenerator, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "gemini":
		if gemini == nil {
			return nil, fmt.Errorf("gemini provider selected but GEMINI_API_KEY is not set")
		}
		return gemini, nil
	case "openai":
		return NewOpenAIService(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

type generateFunc func(ctx context.Context, prompt string, temperature float32) (string, error)

func generateWithRetry(ctx context.Context, generate generateFunc, prompt string, temperature float32, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := generate(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️  LLM attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
