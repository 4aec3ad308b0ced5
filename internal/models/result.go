package models

type StartRequest struct {
	CandidateEmail *string `json:"candidate_email" validate:"omitempty,email"`
}

type HintRequest struct {
	InterviewID string `json:"interview_id" validate:"required,uuid"`
	QuestionID  string `json:"question_id" validate:"required"`
}

type AnswerRequest struct {
	InterviewID string           `json:"interview_id" validate:"required,uuid"`
	QuestionID  string           `json:"question_id" validate:"required"`
	AnswerText  *string          `json:"answer_text"`
	AnswerTable []map[string]any `json:"answer_table"`
	WantHint    bool             `json:"want_hint"`
}

// QuestionView is what the candidate sees. Hint text is withheld so that
// every hint goes through the penalised hint endpoint.
type QuestionView struct {
	ID         string       `json:"id"`
	Prompt     string       `json:"prompt"`
	Kind       QuestionKind `json:"kind"`
	Skill      string       `json:"skill"`
	Difficulty Difficulty   `json:"difficulty"`
	MaxScore   float64      `json:"max_score"`
	HasHint    bool         `json:"has_hint"`
}

func NewQuestionView(q *Question) *QuestionView {
	if q == nil {
		return nil
	}
	return &QuestionView{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Kind:       q.Kind,
		Skill:      q.Skill,
		Difficulty: q.Difficulty,
		MaxScore:   q.MaxScore,
		HasHint:    q.Hint != "",
	}
}

type StartResponse struct {
	InterviewID string        `json:"interview_id"`
	Question    *QuestionView `json:"question"`
}

type HintResponse struct {
	Hint      string `json:"hint"`
	HintsUsed int    `json:"hints_used"`
}

type AnswerResponse struct {
	Score            float64       `json:"score"`
	RawScore         float64       `json:"raw_score"`
	Feedback         string        `json:"feedback"`
	Passed           bool          `json:"passed"`
	Done             bool          `json:"done"`
	NextQuestion     *QuestionView `json:"next_question"`
	Summary          *Report       `json:"summary,omitempty"`
	PersistenceError *string       `json:"persistence_error,omitempty"`
}

type MetricsResponse struct {
	TotalAnswers int64              `json:"total_answers"`
	AvgScore     float64            `json:"avg_score"`
	PerSkillAvg  map[string]float64 `json:"per_skill_avg"`
}
