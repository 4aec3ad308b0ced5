package grading

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"excelinterviewer/mock-interviewer/internal/models"
)

const valueTolerance = 1e-6

type valueEvaluator struct {
	dataset *Dataset
}

func NewValueEvaluator(dataset *Dataset) Evaluator {
	return &valueEvaluator{dataset: dataset}
}

func (e *valueEvaluator) Evaluate(_ context.Context, q models.Question, answer Answer) (Result, error) {
	expected, err := e.dataset.Value(q.EvalKey)
	if err != nil {
		return Result{}, fmt.Errorf("failed to compute expected value: %w", err)
	}

	got, err := strconv.ParseFloat(strings.TrimSpace(answer.Text), 64)
	if err != nil {
		return Result{Score: 0, Feedback: "Answer must be a numeric value."}, nil
	}

	if math.Abs(got-expected) <= valueTolerance {
		return Result{Score: q.MaxScore, Feedback: "Correct numeric result.", Passed: true}, nil
	}

	return Result{
		Score:    math.Min(partialCredit, q.MaxScore),
		Feedback: fmt.Sprintf("Expected %s, got %s.", formatNumber(expected), formatNumber(got)),
	}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
