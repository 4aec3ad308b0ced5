package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"excelinterviewer/mock-interviewer/internal/models"
)

type memoryInterviewRepository struct {
	mu         sync.Mutex
	interviews map[string]models.Interview
	answers    []models.Answer
	nextID     uint
}

// NewMemoryInterviewRepository keeps rows for the life of the process. It backs
// the service when DB_ENABLED=false and stands in for Postgres in tests.
func NewMemoryInterviewRepository() InterviewRepository {
	return &memoryInterviewRepository{interviews: make(map[string]models.Interview)}
}

func (r *memoryInterviewRepository) CreateInterview(ctx context.Context, interview *models.Interview) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := interview.ID.String()
	if _, exists := r.interviews[key]; exists {
		return fmt.Errorf("failed to create interview: duplicate id %s", key)
	}
	if interview.CreatedAt.IsZero() {
		interview.CreatedAt = time.Now()
	}
	r.interviews[key] = *interview
	return nil
}

func (r *memoryInterviewRepository) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if answer.ID == 0 {
		r.nextID++
		answer.ID = r.nextID
	}
	if answer.CreatedAt.IsZero() {
		answer.CreatedAt = time.Now()
	}
	r.answers = append(r.answers, *answer)
	return nil
}

func (r *memoryInterviewRepository) AnswerStats(ctx context.Context) (*AnswerStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to load answer stats: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats := &AnswerStats{
		TotalAnswers:     int64(len(r.answers)),
		ScoresByQuestion: make(map[string][]float64),
	}
	var sum float64
	for _, a := range r.answers {
		sum += a.Score
		stats.ScoresByQuestion[a.QuestionID] = append(stats.ScoresByQuestion[a.QuestionID], a.Score)
	}
	if stats.TotalAnswers > 0 {
		stats.AverageScore = sum / float64(stats.TotalAnswers)
	}
	return stats, nil
}
