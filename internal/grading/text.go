package grading

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"excelinterviewer/mock-interviewer/internal/models"
)

// passRatio is the share of max score a free-text answer needs to pass.
const passRatio = 0.6

var defaultKeywords = []string{"absolute", "$", "anchor", "table", "structured reference", "named range"}

// RubricGrader scores a free-text answer against the question rubric,
// typically by asking a language model.
type RubricGrader interface {
	GradeRubric(ctx context.Context, q models.Question, answer string) (float64, error)
}

type textEvaluator struct {
	grader  RubricGrader
	timeout time.Duration
}

func NewTextEvaluator(grader RubricGrader, timeout time.Duration) Evaluator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &textEvaluator{grader: grader, timeout: timeout}
}

func (e *textEvaluator) Evaluate(ctx context.Context, q models.Question, answer Answer) (Result, error) {
	if e.grader == nil {
		return keywordScore(q, answer.Text, "no LLM configured"), nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	score, err := e.grader.GradeRubric(ctx, q, answer.Text)
	if err != nil {
		return keywordScore(q, answer.Text, fmt.Sprintf("LLM error: %v", err)), nil
	}

	score = math.Max(0, math.Min(score, q.MaxScore))
	return Result{
		Score:    score,
		Feedback: "LLM-graded.",
		Passed:   score >= q.MaxScore*passRatio,
	}, nil
}

// keywordScore awards one point plus one per rubric keyword found.
func keywordScore(q models.Question, text, note string) Result {
	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			hits++
		}
	}

	score := math.Min(q.MaxScore, 1.0+float64(hits))
	return Result{
		Score:    score,
		Feedback: fmt.Sprintf("Rule-based scoring (%s).", note),
		Passed:   score >= q.MaxScore*passRatio,
	}
}
