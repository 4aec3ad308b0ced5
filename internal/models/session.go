package models

import "time"

type AnswerRecord struct {
	QuestionID  string           `json:"qid"`
	AnswerText  string           `json:"answer_text,omitempty"`
	AnswerTable []map[string]any `json:"answer_table,omitempty"`
}

type ScoreRecord struct {
	QuestionID string  `json:"qid"`
	RawScore   float64 `json:"raw_score"`
	FinalScore float64 `json:"final_score"`
	Feedback   string  `json:"feedback"`
}

// Session is the live, in-memory state of one candidate's interview.
type Session struct {
	ID             string
	CandidateEmail *string
	CreatedAt      time.Time

	// QuestionIDs is the catalog order captured when the session started.
	QuestionIDs []string
	Asked       []string
	Hints       map[string]int
	Answers     []AnswerRecord
	Scores      []ScoreRecord
}

// Clone returns a deep copy safe to hand out of the session store.
func (s *Session) Clone() *Session {
	c := &Session{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		QuestionIDs: append([]string(nil), s.QuestionIDs...),
		Asked:       append([]string(nil), s.Asked...),
		Hints:       make(map[string]int, len(s.Hints)),
		Answers:     append([]AnswerRecord(nil), s.Answers...),
		Scores:      append([]ScoreRecord(nil), s.Scores...),
	}
	if s.CandidateEmail != nil {
		email := *s.CandidateEmail
		c.CandidateEmail = &email
	}
	for k, v := range s.Hints {
		c.Hints[k] = v
	}
	return c
}

func (s *Session) HasAsked(questionID string) bool {
	for _, id := range s.Asked {
		if id == questionID {
			return true
		}
	}
	return false
}
