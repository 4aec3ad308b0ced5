package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/grading"
	"excelinterviewer/mock-interviewer/internal/models"
	"excelinterviewer/mock-interviewer/internal/repositories"
)

func question(id string, kind models.QuestionKind, skill string, difficulty models.Difficulty) models.Question {
	return models.Question{
		ID:         id,
		Prompt:     "prompt for " + id,
		Kind:       kind,
		Skill:      skill,
		Difficulty: difficulty,
		MaxScore:   5,
	}
}

func newCatalog(t *testing.T, questions ...models.Question) catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(questions)
	require.NoError(t, err)
	return cat
}

func bankCatalog(t *testing.T) catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	return cat
}

func defaultEvaluators(t *testing.T) *grading.Set {
	t.Helper()
	ds, err := grading.LoadDataset()
	require.NoError(t, err)
	return grading.NewSet(ds, nil, time.Second)
}

// stubRepo wraps the memory repository and can be told to fail writes.
type stubRepo struct {
	repositories.InterviewRepository
	mu           sync.Mutex
	interviewErr error
	answerErr    error
	answerCalls  int
}

func newStubRepo() *stubRepo {
	return &stubRepo{InterviewRepository: repositories.NewMemoryInterviewRepository()}
}

func (r *stubRepo) CreateInterview(ctx context.Context, interview *models.Interview) error {
	if r.interviewErr != nil {
		return r.interviewErr
	}
	return r.InterviewRepository.CreateInterview(ctx, interview)
}

func (r *stubRepo) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	r.mu.Lock()
	r.answerCalls++
	err := r.answerErr
	r.mu.Unlock()
	if err != nil {
		return err
	}
	return r.InterviewRepository.CreateAnswer(ctx, answer)
}

func (r *stubRepo) setAnswerErr(err error) {
	r.mu.Lock()
	r.answerErr = err
	r.mu.Unlock()
}

func (r *stubRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.answerCalls
}

type recordingMirror struct {
	mu      sync.Mutex
	answers []*models.Answer
}

func (m *recordingMirror) Start(context.Context) {}
func (m *recordingMirror) Stop()                 {}

func (m *recordingMirror) Enqueue(answer *models.Answer) {
	m.mu.Lock()
	m.answers = append(m.answers, answer)
	m.mu.Unlock()
}

type evaluatorFunc func(ctx context.Context, q models.Question, answer grading.Answer) (grading.Result, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, q models.Question, answer grading.Answer) (grading.Result, error) {
	return f(ctx, q, answer)
}
