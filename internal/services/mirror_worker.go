package services

import (
	"context"
	"log"
	"sync"
	"time"

	"excelinterviewer/mock-interviewer/internal/models"
	"excelinterviewer/mock-interviewer/internal/repositories"
)

// MirrorWorker retries answer rows whose first durable write failed.
type MirrorWorker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(answer *models.Answer)
}

type MirrorWorkerConfig struct {
	Concurrency       int
	QueueSize         int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	WriteTimeout      time.Duration
}

type mirrorWorker struct {
	repo     repositories.InterviewRepository
	cfg      MirrorWorkerConfig
	queue    chan *models.Answer
	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewMirrorWorker(repo repositories.InterviewRepository, cfg MirrorWorkerConfig) MirrorWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.RetryMaxAttempts <= 0 {
		cfg.RetryMaxAttempts = 1
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	return &mirrorWorker{
		repo:     repo,
		cfg:      cfg,
		queue:    make(chan *models.Answer, cfg.QueueSize),
		stopChan: make(chan struct{}),
	}
}

// Start implements MirrorWorker.
func (w *mirrorWorker) Start(ctx context.Context) {
	log.Printf("🚀 Starting answer mirror with %d workers\n", w.cfg.Concurrency)

	for i := 0; i < w.cfg.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements MirrorWorker. Rows still queued are dropped with a log line.
func (w *mirrorWorker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping answer mirror...")
		close(w.stopChan)
		w.wg.Wait()
		if n := len(w.queue); n > 0 {
			log.Printf("⚠️  Answer mirror stopped with %d unsaved answers\n", n)
		}
		log.Println("✅ Answer mirror stopped")
	})
}

// Enqueue implements MirrorWorker. It never blocks the request path.
func (w *mirrorWorker) Enqueue(answer *models.Answer) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Answer mirror stopped, dropping answer for %s/%s\n", answer.InterviewID, answer.QuestionID)
		return
	default:
	}

	select {
	case w.queue <- answer:
		log.Printf("📥 Answer for %s/%s queued for retry\n", answer.InterviewID, answer.QuestionID)
	default:
		log.Printf("⚠️  Answer mirror queue full, dropping answer for %s/%s\n", answer.InterviewID, answer.QuestionID)
	}
}

func (w *mirrorWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case answer := <-w.queue:
			if err := w.persist(ctx, answer); err != nil {
				log.Printf("❌ Mirror #%d gave up on answer %s/%s: %v\n", workerID, answer.InterviewID, answer.QuestionID, err)
			} else {
				log.Printf("✅ Mirror #%d saved answer %s/%s\n", workerID, answer.InterviewID, answer.QuestionID)
			}
		}
	}
}

// persist retries with exponential backoff starting at RetryInitialDelay.
func (w *mirrorWorker) persist(ctx context.Context, answer *models.Answer) error {
	delay := w.cfg.RetryInitialDelay
	var lastErr error

	for attempt := 1; attempt <= w.cfg.RetryMaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(delay):
				delay *= 2
			case <-w.stopChan:
				return lastErr
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		writeCtx, cancel := context.WithTimeout(ctx, w.cfg.WriteTimeout)
		lastErr = w.repo.CreateAnswer(writeCtx, answer)
		cancel()
		if lastErr == nil {
			return nil
		}
	}

	return lastErr
}
