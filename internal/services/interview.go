package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"excelinterviewer/mock-interviewer/internal/catalog"
	"excelinterviewer/mock-interviewer/internal/grading"
	"excelinterviewer/mock-interviewer/internal/models"
	"excelinterviewer/mock-interviewer/internal/repositories"
)

// DefaultHint is served for questions that carry no hint of their own.
const DefaultHint = "Try breaking the task into smaller parts."

type InterviewService interface {
	Start(ctx context.Context, candidateEmail *string) (*models.StartResponse, error)
	Hint(ctx context.Context, interviewID, questionID string) (*models.HintResponse, error)
	SubmitAnswer(ctx context.Context, req *models.AnswerRequest) (*models.AnswerResponse, error)
	Report(ctx context.Context, interviewID string) (*models.Report, error)
	Metrics(ctx context.Context) (*models.MetricsResponse, error)
}

type interviewService struct {
	store      *SessionStore
	catalog    catalog.Catalog
	evaluators *grading.Set
	repo       repositories.InterviewRepository
}

func NewInterviewService(
	store *SessionStore,
	cat catalog.Catalog,
	evaluators *grading.Set,
	repo repositories.InterviewRepository,
) InterviewService {
	return &interviewService{
		store:      store,
		catalog:    cat,
		evaluators: evaluators,
		repo:       repo,
	}
}

// Start implements InterviewService.
func (s *interviewService) Start(ctx context.Context, candidateEmail *string) (*models.StartResponse, error) {
	session, err := s.store.Create(ctx, candidateEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to start interview: %w", err)
	}

	q, err := s.store.NextQuestion(session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to select first question: %w", err)
	}

	log.Printf("🎬 Interview %s started\n", session.ID)
	return &models.StartResponse{
		InterviewID: session.ID,
		Question:    models.NewQuestionView(q),
	}, nil
}

// Hint implements InterviewService. Every call costs the hint penalty.
func (s *interviewService) Hint(_ context.Context, interviewID, questionID string) (*models.HintResponse, error) {
	count, err := s.store.RecordHint(interviewID, questionID)
	if err != nil {
		return nil, err
	}

	q, _ := s.catalog.ByID(questionID)
	hint := q.Hint
	if hint == "" {
		hint = DefaultHint
	}
	return &models.HintResponse{Hint: hint, HintsUsed: count}, nil
}

// SubmitAnswer implements InterviewService. An answer whose shape does not
// match the question kind is bounced without touching the session.
func (s *interviewService) SubmitAnswer(ctx context.Context, req *models.AnswerRequest) (*models.AnswerResponse, error) {
	if _, err := s.store.Get(req.InterviewID); err != nil {
		return nil, err
	}
	q, ok := s.catalog.ByID(req.QuestionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, req.QuestionID)
	}

	answer := grading.Answer{Table: req.AnswerTable}
	if req.AnswerText != nil {
		answer.Text = *req.AnswerText
	}

	if detected := grading.DetectKind(answer); detected != q.Kind {
		return &models.AnswerResponse{
			Score:        0,
			Feedback:     fmt.Sprintf("This question expects **%s**, but you entered **%s**. Please answer in the expected format.", q.Kind, detected),
			Passed:       false,
			Done:         false,
			NextQuestion: models.NewQuestionView(&q),
		}, nil
	}

	result := s.evaluate(ctx, q, answer)

	record, err := s.store.RecordAnswer(ctx, req.InterviewID, models.AnswerRecord{
		QuestionID:  q.ID,
		AnswerText:  answer.Text,
		AnswerTable: answer.Table,
	}, result.Score, result.Feedback)

	var persistenceErr *string
	if err != nil {
		if !errors.Is(err, ErrPersistence) {
			return nil, err
		}
		msg := err.Error()
		persistenceErr = &msg
	}

	next, err := s.store.NextQuestion(req.InterviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to select next question: %w", err)
	}

	resp := &models.AnswerResponse{
		Score:            record.FinalScore,
		RawScore:         record.RawScore,
		Feedback:         record.Feedback,
		Passed:           result.Passed,
		Done:             next == nil,
		NextQuestion:     models.NewQuestionView(next),
		PersistenceError: persistenceErr,
	}

	if resp.Done {
		session, err := s.store.Get(req.InterviewID)
		if err != nil {
			return nil, err
		}
		resp.Summary = GenerateReport(session, s.catalog)
		log.Printf("🏁 Interview %s finished: %.1f%% (%s)\n", req.InterviewID, resp.Summary.OverallPercent, resp.Summary.Band)
	}

	return resp, nil
}

// evaluate runs the evaluator for the question kind once. Errors and panics
// become a zero score so one bad grade never aborts the interview.
func (s *interviewService) evaluate(ctx context.Context, q models.Question, answer grading.Answer) (result grading.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Evaluator panic on %s: %v\n", q.ID, r)
			result = grading.Result{Feedback: fmt.Sprintf("Evaluation error: %v", r)}
		}
	}()

	ev, err := s.evaluators.For(q.Kind)
	if err != nil {
		return grading.Result{Feedback: fmt.Sprintf("Evaluation error: %v", err)}
	}

	result, err = ev.Evaluate(ctx, q, answer)
	if err != nil {
		log.Printf("❌ Evaluation failed on %s: %v\n", q.ID, err)
		return grading.Result{Feedback: fmt.Sprintf("Evaluation error: %v", err)}
	}

	result.Score = clampScore(result.Score, q.MaxScore)
	return result
}

// Report implements InterviewService.
func (s *interviewService) Report(_ context.Context, interviewID string) (*models.Report, error) {
	session, err := s.store.Get(interviewID)
	if err != nil {
		return nil, err
	}
	return GenerateReport(session, s.catalog), nil
}

// Metrics implements InterviewService. It reads the durable mirror, so it
// covers every interview the repository has seen.
func (s *interviewService) Metrics(ctx context.Context) (*models.MetricsResponse, error) {
	stats, err := s.repo.AnswerStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer stats: %w", err)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for qid, scores := range stats.ScoresByQuestion {
		skill := "unknown"
		if q, ok := s.catalog.ByID(qid); ok {
			skill = q.Skill
		}
		for _, score := range scores {
			sums[skill] += score
			counts[skill]++
		}
	}

	perSkill := make(map[string]float64, len(sums))
	for skill, sum := range sums {
		perSkill[skill] = round(sum/float64(counts[skill]), 2)
	}

	return &models.MetricsResponse{
		TotalAnswers: stats.TotalAnswers,
		AvgScore:     round(stats.AverageScore, 2),
		PerSkillAvg:  perSkill,
	}, nil
}
