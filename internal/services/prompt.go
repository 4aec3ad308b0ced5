package services

import (
	"fmt"
	"strings"

	"excelinterviewer/mock-interviewer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildRubricGradingPrompt asks for a {score, reasons, tags} verdict on a
// free-text answer. referenceContext may be empty.
func (pb *PromptBuilder) BuildRubricGradingPrompt(q models.Question, answer, referenceContext string) string {
	rubric := "- Accuracy and completeness of the explanation"
	if len(q.Rubric) > 0 {
		lines := make([]string, len(q.Rubric))
		for i, r := range q.Rubric {
			lines[i] = "- " + r
		}
		rubric = strings.Join(lines, "\n")
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are grading a candidate's answer in a spreadsheet skills interview.

QUESTION (skill: %s):
%s

RUBRIC:
%s
`, q.Skill, q.Prompt, rubric)

	if referenceContext != "" {
		fmt.Fprintf(&b, `
REFERENCE MATERIAL:
%s
`, referenceContext)
	}

	fmt.Fprintf(&b, `
CANDIDATE ANSWER:
%s

Score the answer from 0 to %s against the rubric.

Return your response in the following JSON format:
{
  "score": <number between 0 and %s>,
  "reasons": ["<short reason>", ...],
  "tags": ["<skill tag>", ...]
}`, answer, formatScore(q.MaxScore), formatScore(q.MaxScore))

	return b.String()
}

// BuildRetrievalQuery creates the reference-guide search query for a question.
func (pb *PromptBuilder) BuildRetrievalQuery(q models.Question) string {
	return fmt.Sprintf("Excel %s guidance: %s", q.Skill, q.Prompt)
}

// FormatRAGContext joins retrieved chunks into one prompt section.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func formatScore(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
