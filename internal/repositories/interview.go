package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"excelinterviewer/mock-interviewer/internal/models"
)

// InterviewRepository is the durable mirror of interviews and graded answers.
// The live interview never reads it back; only admin metrics do.
type InterviewRepository interface {
	CreateInterview(ctx context.Context, interview *models.Interview) error
	CreateAnswer(ctx context.Context, answer *models.Answer) error
	AnswerStats(ctx context.Context) (*AnswerStats, error)
}

type AnswerStats struct {
	TotalAnswers int64
	AverageScore float64
	// ScoresByQuestion holds every persisted final score keyed by question id.
	ScoresByQuestion map[string][]float64
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) CreateInterview(ctx context.Context, interview *models.Interview) error {
	if err := r.db.WithContext(ctx).Create(interview).Error; err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

func (r *interviewRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	if err := r.db.WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (r *interviewRepository) AnswerStats(ctx context.Context) (*AnswerStats, error) {
	db := r.db.WithContext(ctx)
	stats := &AnswerStats{ScoresByQuestion: make(map[string][]float64)}

	if err := db.Model(&models.Answer{}).Count(&stats.TotalAnswers).Error; err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}
	if stats.TotalAnswers == 0 {
		return stats, nil
	}

	var avg float64
	if err := db.Model(&models.Answer{}).Select("COALESCE(AVG(score), 0)").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("failed to average scores: %w", err)
	}
	stats.AverageScore = avg

	var rows []struct {
		QuestionID string
		Score      float64
	}
	if err := db.Model(&models.Answer{}).Select("question_id, score").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load answer scores: %w", err)
	}
	for _, row := range rows {
		stats.ScoresByQuestion[row.QuestionID] = append(stats.ScoresByQuestion[row.QuestionID], row.Score)
	}

	return stats, nil
}
