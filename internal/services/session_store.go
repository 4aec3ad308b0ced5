package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/models"
	"excelinterviewer/mock-interviewer/internal/repositories"
)

type SessionStoreConfig struct {
	MaxQuestions int
	HintPenalty  float64
	WriteTimeout time.Duration
}

// SessionStore owns every live interview for the life of the process. Memory
// is the source of truth; the repository is a write-only mirror.
type SessionStore struct {
	catalog catalog.Catalog
	repo    repositories.InterviewRepository
	mirror  MirrorWorker
	cfg     SessionStoreConfig

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	mu      sync.Mutex
	session *models.Session
}

// NewSessionStore builds an empty store. mirror may be nil, in which case
// failed answer writes are only reported.
func NewSessionStore(cat catalog.Catalog, repo repositories.InterviewRepository, mirror MirrorWorker, cfg SessionStoreConfig) *SessionStore {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &SessionStore{
		catalog:  cat,
		repo:     repo,
		mirror:   mirror,
		cfg:      cfg,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create starts a session and writes its interview header. The session is
// only registered once the header is stored.
func (s *SessionStore) Create(ctx context.Context, candidateEmail *string) (*models.Session, error) {
	id := uuid.New()
	session := &models.Session{
		ID:             id.String(),
		CandidateEmail: candidateEmail,
		CreatedAt:      time.Now().UTC(),
		QuestionIDs:    s.catalog.IDs(),
		Asked:          []string{},
		Hints:          make(map[string]int),
		Answers:        []models.AnswerRecord{},
		Scores:         []models.ScoreRecord{},
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()
	if err := s.repo.CreateInterview(writeCtx, &models.Interview{
		ID:             id,
		CandidateEmail: candidateEmail,
		CreatedAt:      session.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.mu.Lock()
	s.sessions[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	return session.Clone(), nil
}

// Get returns a snapshot of the session.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.session.Clone(), nil
}

// RecordHint adds one hint for the question and returns the new count.
// Hints accumulate without a cap.
func (s *SessionStore) RecordHint(id, questionID string) (int, error) {
	if _, ok := s.catalog.ByID(questionID); !ok {
		return 0, fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}
	entry, err := s.entry(id)
	if err != nil {
		return 0, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.session.Hints[questionID]++
	return entry.session.Hints[questionID], nil
}

// RecordAnswer applies the hint penalty, appends the answer and score, and
// mirrors the row with the final score. A failed write returns an error
// wrapping ErrPersistence but the in-memory append stands.
func (s *SessionStore) RecordAnswer(ctx context.Context, id string, answer models.AnswerRecord, rawScore float64, feedback string) (models.ScoreRecord, error) {
	entry, err := s.entry(id)
	if err != nil {
		return models.ScoreRecord{}, err
	}

	entry.mu.Lock()
	hints := entry.session.Hints[answer.QuestionID]
	record := models.ScoreRecord{
		QuestionID: answer.QuestionID,
		RawScore:   rawScore,
		FinalScore: FinalScore(rawScore, s.cfg.HintPenalty, hints),
		Feedback:   AnnotateFeedback(feedback, s.cfg.HintPenalty, hints),
	}
	entry.session.Answers = append(entry.session.Answers, answer)
	entry.session.Scores = append(entry.session.Scores, record)
	entry.mu.Unlock()

	row, err := answerRow(id, answer, record)
	if err != nil {
		return record, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
	defer cancel()
	if err := s.repo.CreateAnswer(writeCtx, row); err != nil {
		log.Printf("⚠️  Failed to persist answer %s/%s: %v\n", id, answer.QuestionID, err)
		if s.mirror != nil {
			s.mirror.Enqueue(row)
		}
		return record, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return record, nil
}

// NextQuestion runs the selector and marks the chosen question as asked.
// It returns nil once the interview is over.
func (s *SessionStore) NextQuestion(id string) (*models.Question, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	qid, ok := SelectNext(entry.session, s.catalog, s.cfg.MaxQuestions)
	if !ok {
		return nil, nil
	}
	q, found := s.catalog.ByID(qid)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, qid)
	}
	entry.session.Asked = append(entry.session.Asked, qid)
	return &q, nil
}

func (s *SessionStore) entry(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return entry, nil
}

func answerRow(sessionID string, answer models.AnswerRecord, record models.ScoreRecord) (*models.Answer, error) {
	interviewID, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("invalid interview id: %w", err)
	}

	row := &models.Answer{
		InterviewID: interviewID,
		QuestionID:  answer.QuestionID,
		Score:       record.FinalScore,
		Feedback:    record.Feedback,
		AnswerText:  answer.AnswerText,
		CreatedAt:   time.Now().UTC(),
	}
	if answer.AnswerTable != nil {
		data, err := json.Marshal(answer.AnswerTable)
		if err != nil {
			return nil, fmt.Errorf("failed to encode answer table: %w", err)
		}
		table := string(data)
		row.AnswerTableJSON = &table
	}
	return row, nil
}
