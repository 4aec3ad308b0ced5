package models

import (
	"time"

	"github.com/google/uuid"
)

type Interview struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CandidateEmail *string   `gorm:"type:text" json:"candidate_email,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Interview) TableName() string {
	return "interviews"
}

// Answer is the durable mirror of one graded submission. Score holds the
// final (hint-penalised) score, never the raw evaluator output.
type Answer struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	InterviewID     uuid.UUID `gorm:"type:uuid;index;not null" json:"interview_id"`
	QuestionID      string    `gorm:"type:text;index;not null" json:"question_id"`
	Score           float64   `gorm:"default:0" json:"score"`
	Feedback        string    `gorm:"type:text" json:"feedback"`
	AnswerText      string    `gorm:"type:text" json:"answer_text"`
	AnswerTableJSON *string   `gorm:"type:text" json:"answer_table_json,omitempty"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Answer) TableName() string {
	return "answers"
}
