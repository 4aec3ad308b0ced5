package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"excelinterviewer/mock-interviewer/internal/grading"
	"excelinterviewer/mock-interviewer/internal/models"
)

const (
	gradingTemperature = 0.2
	referenceLimit     = 3
	verdictSchemaURL   = "schema://rubric_verdict.json"
)

var verdictSchema = map[string]any{
	"type":     "object",
	"required": []any{"score"},
	"properties": map[string]any{
		"score":   map[string]any{"type": "number"},
		"reasons": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"tags":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
}

var (
	compiledVerdictOnce sync.Once
	compiledVerdict     *jsonschema.Schema
	compiledVerdictErr  error
)

type rubricVerdict struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
	Tags    []string `json:"tags"`
}

type rubricGrader struct {
	llm        TextGenerator
	retriever  ReferenceRetriever
	prompts    *PromptBuilder
	maxRetries int
}

// NewRubricGrader grades free-text answers with an LLM. retriever may be nil,
// in which case no reference material is added to the prompt.
func NewRubricGrader(llm TextGenerator, retriever ReferenceRetriever, maxRetries int) grading.RubricGrader {
	return &rubricGrader{
		llm:        llm,
		retriever:  retriever,
		prompts:    NewPromptBuilder(),
		maxRetries: maxRetries,
	}
}

func (g *rubricGrader) GradeRubric(ctx context.Context, q models.Question, answer string) (float64, error) {
	var reference string
	if g.retriever != nil {
		var err error
		reference, err = g.retriever.Retrieve(ctx, g.prompts.BuildRetrievalQuery(q), referenceLimit)
		if err != nil {
			log.Printf("⚠️  Reference retrieval failed for %s: %v\n", q.ID, err)
			reference = ""
		}
	}

	prompt := g.prompts.BuildRubricGradingPrompt(q, answer, reference)
	response, err := g.llm.GenerateTextWithRetry(ctx, prompt, gradingTemperature, g.maxRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to grade answer: %w", err)
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		return 0, err
	}

	log.Printf("📊 Rubric grade for %s: %.2f %v\n", q.ID, verdict.Score, verdict.Tags)
	return verdict.Score, nil
}

func parseVerdict(response string) (*rubricVerdict, error) {
	raw := extractJSON(response)

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: response, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := verdictValidator()
	if err != nil {
		return nil, &ErrInvalidResponse{Content: response, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ErrInvalidResponse{Content: response, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var verdict rubricVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return nil, &ErrInvalidResponse{Content: response, Err: err}
	}
	return &verdict, nil
}

func verdictValidator() (*jsonschema.Schema, error) {
	compiledVerdictOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(verdictSchemaURL, verdictSchema); err != nil {
			compiledVerdictErr = err
			return
		}
		compiledVerdict, compiledVerdictErr = c.Compile(verdictSchemaURL)
	})
	return compiledVerdict, compiledVerdictErr
}

// extractJSON strips markdown fences and surrounding prose from an LLM reply.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}
