package services

import (
	"fmt"
	"math"
)

// FinalScore applies the hint penalty: max(0, raw - penalty*hints).
func FinalScore(raw, penalty float64, hints int) float64 {
	if hints <= 0 {
		return math.Max(0, raw)
	}
	return math.Max(0, raw-penalty*float64(hints))
}

// AnnotateFeedback appends the hint deduction to the evaluator feedback.
func AnnotateFeedback(feedback string, penalty float64, hints int) string {
	if hints <= 0 {
		return feedback
	}
	noun := "hint"
	if hints > 1 {
		noun = "hints"
	}
	return fmt.Sprintf("%s (-%.1f for %d %s)", feedback, penalty*float64(hints), hints, noun)
}

// clampScore bounds an evaluator score to [0, max]. NaN counts as zero.
func clampScore(score, maxScore float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(score, maxScore))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
