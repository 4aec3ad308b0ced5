// Package grading holds one answer evaluator per question kind.
package grading

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"excelinterviewer/mock-interviewer/internal/models"
)

var ErrUnknownKind = errors.New("unknown question kind")

// partialCredit is awarded for a well-formed but incorrect answer.
const partialCredit = 2.0

type Answer struct {
	Text  string
	Table []map[string]any
}

type Result struct {
	Score    float64
	Feedback string
	Passed   bool
}

type Evaluator interface {
	Evaluate(ctx context.Context, q models.Question, answer Answer) (Result, error)
}

// Set dispatches to the evaluator for each question kind.
type Set struct {
	Formula Evaluator
	Value   Evaluator
	Table   Evaluator
	Text    Evaluator
}

// NewSet wires the standard evaluators. grader may be nil, in which case
// free-text answers are scored by the keyword rule only.
func NewSet(dataset *Dataset, grader RubricGrader, llmTimeout time.Duration) *Set {
	return &Set{
		Formula: NewFormulaEvaluator(),
		Value:   NewValueEvaluator(dataset),
		Table:   NewTableEvaluator(dataset),
		Text:    NewTextEvaluator(grader, llmTimeout),
	}
}

func (s *Set) For(kind models.QuestionKind) (Evaluator, error) {
	var ev Evaluator
	switch kind {
	case models.KindFormula:
		ev = s.Formula
	case models.KindValue:
		ev = s.Value
	case models.KindTable:
		ev = s.Table
	case models.KindText:
		ev = s.Text
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if ev == nil {
		return nil, fmt.Errorf("no evaluator configured for %s questions", kind)
	}
	return ev, nil
}

// DetectKind guesses which kind of answer was submitted: a table payload wins,
// then a leading "=" means a formula, then anything numeric is a value.
func DetectKind(answer Answer) models.QuestionKind {
	if answer.Table != nil {
		return models.KindTable
	}

	t := strings.TrimSpace(answer.Text)
	if strings.HasPrefix(t, "=") {
		return models.KindFormula
	}
	if _, err := strconv.ParseFloat(t, 64); err == nil {
		return models.KindValue
	}
	return models.KindText
}
