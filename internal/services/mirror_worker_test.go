package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterviewer/mock-interviewer/internal/models"
)

// flakyRepo fails the first n answer writes.
type flakyRepo struct {
	*stubRepo
	failures int
}

func (r *flakyRepo) CreateAnswer(ctx context.Context, answer *models.Answer) error {
	r.mu.Lock()
	r.answerCalls++
	fail := r.answerCalls <= r.failures
	r.mu.Unlock()
	if fail {
		return errors.New("temporarily unavailable")
	}
	return r.stubRepo.InterviewRepository.CreateAnswer(ctx, answer)
}

func fastMirrorConfig(attempts int) MirrorWorkerConfig {
	return MirrorWorkerConfig{
		Concurrency:       1,
		QueueSize:         4,
		RetryMaxAttempts:  attempts,
		RetryInitialDelay: time.Millisecond,
		WriteTimeout:      time.Second,
	}
}

func TestMirrorWorker_RetriesUntilStored(t *testing.T) {
	repo := &flakyRepo{stubRepo: newStubRepo(), failures: 2}
	w := NewMirrorWorker(repo, fastMirrorConfig(3))
	w.Start(context.Background())
	defer w.Stop()

	w.Enqueue(&models.Answer{InterviewID: uuid.New(), QuestionID: "q1", Score: 4})

	assert.Eventually(t, func() bool {
		stats, err := repo.AnswerStats(context.Background())
		return err == nil && stats.TotalAnswers == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, repo.calls())
}

func TestMirrorWorker_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := &flakyRepo{stubRepo: newStubRepo(), failures: 100}
	w := NewMirrorWorker(repo, fastMirrorConfig(2))
	w.Start(context.Background())

	w.Enqueue(&models.Answer{InterviewID: uuid.New(), QuestionID: "q1"})

	assert.Eventually(t, func() bool { return repo.calls() == 2 }, time.Second, 5*time.Millisecond)
	w.Stop()

	stats, err := repo.AnswerStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAnswers)
	assert.Equal(t, 2, repo.calls())
}

func TestMirrorWorker_EnqueueNeverBlocks(t *testing.T) {
	cfg := fastMirrorConfig(1)
	cfg.QueueSize = 1
	w := NewMirrorWorker(newStubRepo(), cfg)

	done := make(chan struct{})
	go func() {
		w.Enqueue(&models.Answer{QuestionID: "q1"})
		w.Enqueue(&models.Answer{QuestionID: "q2"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Len(t, w.(*mirrorWorker).queue, 1)
}

func TestMirrorWorker_StopIsIdempotent(t *testing.T) {
	w := NewMirrorWorker(newStubRepo(), fastMirrorConfig(1))
	w.Start(context.Background())

	w.Stop()
	w.Stop()

	w.Enqueue(&models.Answer{QuestionID: "late"})
	assert.Empty(t, w.(*mirrorWorker).queue)
}
