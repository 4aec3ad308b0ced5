package grading

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"

	"excelinterviewer/mock-interviewer/internal/models"
)

type formulaEvaluator struct {
	patterns sync.Map // map[string]*regexp.Regexp
}

func NewFormulaEvaluator() Evaluator {
	return &formulaEvaluator{}
}

func (e *formulaEvaluator) Evaluate(_ context.Context, q models.Question, answer Answer) (Result, error) {
	f := strings.TrimSpace(answer.Text)
	if !strings.HasPrefix(f, "=") {
		return Result{Score: 0, Feedback: "Provide a valid Excel formula starting with '='."}, nil
	}

	for _, p := range q.Accepted {
		re, err := e.compile(p.Pattern)
		if err != nil {
			return Result{}, err
		}
		if !re.MatchString(f) {
			continue
		}

		feedback := "Formula accepted."
		if p.Deduction > 0 && p.Note != "" {
			feedback += " " + p.Note
		}
		return Result{
			Score:    math.Max(0, q.MaxScore-p.Deduction),
			Feedback: feedback,
			Passed:   true,
		}, nil
	}

	return Result{
		Score:    math.Min(partialCredit, q.MaxScore),
		Feedback: "Formula not recognized as correct for this task. Recheck ranges/criteria.",
	}, nil
}

func (e *formulaEvaluator) compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := e.patterns.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid formula pattern %q: %w", pattern, err)
	}
	e.patterns.Store(pattern, re)
	return re, nil
}
