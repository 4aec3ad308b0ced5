package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"excelinterviewer/mock-interviewer/internal/grading"
	"excelinterviewer/mock-interviewer/internal/models"
)

func newBankService(t *testing.T, repo *stubRepo, evaluators *grading.Set) InterviewService {
	t.Helper()
	cat := bankCatalog(t)
	store := NewSessionStore(cat, repo, nil, SessionStoreConfig{MaxQuestions: 6, HintPenalty: 0.5})
	return NewInterviewService(store, cat, evaluators, repo)
}

func text(s string) *string { return &s }

// validAnswer returns an answer of the right shape for the question kind.
func validAnswer(interviewID string, q *models.QuestionView) *models.AnswerRequest {
	req := &models.AnswerRequest{InterviewID: interviewID, QuestionID: q.ID}
	switch q.Kind {
	case models.KindFormula:
		req.AnswerText = text("=SUM(A1:A3)")
	case models.KindValue:
		req.AnswerText = text("42")
	case models.KindTable:
		req.AnswerTable = []map[string]any{{"Region": "East", "Sales": 1.0}}
	default:
		req.AnswerText = text("Use absolute references with $ signs.")
	}
	return req
}

func TestInterviewService_StartServesMediumFirst(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))

	resp, err := svc.Start(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.InterviewID)
	require.NotNil(t, resp.Question)
	assert.Equal(t, "q_sumifs_east_pencil", resp.Question.ID)
	assert.Equal(t, models.DifficultyMedium, resp.Question.Difficulty)
	assert.True(t, resp.Question.HasHint)
}

func TestInterviewService_StartFailsOnPersistence(t *testing.T) {
	repo := newStubRepo()
	repo.interviewErr = errors.New("db down")
	svc := newBankService(t, repo, defaultEvaluators(t))

	_, err := svc.Start(context.Background(), nil)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestInterviewService_TypeMismatchDoesNotAdvance(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, models.KindFormula, start.Question.Kind)

	resp, err := svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  start.Question.ID,
		AnswerTable: []map[string]any{{"Region": "East", "Sales": 1.0}},
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Score)
	assert.False(t, resp.Passed)
	assert.False(t, resp.Done)
	assert.Equal(t, start.Question.ID, resp.NextQuestion.ID)
	assert.Contains(t, resp.Feedback, "expects **formula**")
	assert.Contains(t, resp.Feedback, "entered **table**")

	report, err := svc.Report(ctx, start.InterviewID)
	require.NoError(t, err)
	assert.Empty(t, report.Scores)
	assert.Empty(t, report.Answers)

	svcImpl := svc.(*interviewService)
	session, err := svcImpl.store.Get(start.InterviewID)
	require.NoError(t, err)
	assert.Equal(t, []string{start.Question.ID}, session.Asked)
}

func TestInterviewService_AdaptiveFlowWithHint(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)

	resp, err := svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  "q_sumifs_east_pencil",
		AnswerText:  text(`=SUMIFS(D2:D23,A2:A23,"East",C2:C23,"Pencil")`),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.Score)
	assert.True(t, resp.Passed)
	require.NotNil(t, resp.NextQuestion)
	assert.Equal(t, "q_unitprice_kivell_binder", resp.NextQuestion.ID)
	assert.False(t, resp.NextQuestion.HasHint)

	hint, err := svc.Hint(ctx, start.InterviewID, "q_unitprice_kivell_binder")
	require.NoError(t, err)
	assert.Equal(t, DefaultHint, hint.Hint)
	assert.Equal(t, 1, hint.HintsUsed)

	resp, err = svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  "q_unitprice_kivell_binder",
		AnswerText:  text("19.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.RawScore)
	assert.Equal(t, 4.5, resp.Score)
	assert.Equal(t, "Correct numeric result. (-0.5 for 1 hint)", resp.Feedback)
	require.NotNil(t, resp.NextQuestion)
	assert.Equal(t, models.DifficultyHard, resp.NextQuestion.Difficulty)
	assert.Equal(t, "q_lookup_rep_item_price", resp.NextQuestion.ID)
}

func TestInterviewService_RunsToCompletion(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)

	var submitted []string
	current := start.Question
	var last *models.AnswerResponse
	for i := 0; i < 10 && current != nil; i++ {
		req := validAnswer(start.InterviewID, current)
		submitted = append(submitted, req.QuestionID)

		last, err = svc.SubmitAnswer(ctx, req)
		require.NoError(t, err)
		current = last.NextQuestion
	}

	require.NotNil(t, last)
	assert.True(t, last.Done)
	assert.Len(t, submitted, 6)
	require.NotNil(t, last.Summary)
	assert.Len(t, last.Summary.Scores, 6)

	report, err := svc.Report(ctx, start.InterviewID)
	require.NoError(t, err)
	require.Len(t, report.Answers, len(submitted))
	for i, id := range submitted {
		assert.Equal(t, id, report.Answers[i].QuestionID)
	}
}

func TestInterviewService_EvaluationFailuresScoreZero(t *testing.T) {
	tests := []struct {
		name string
		eval evaluatorFunc
		want string
	}{
		{
			name: "error",
			eval: func(context.Context, models.Question, grading.Answer) (grading.Result, error) {
				return grading.Result{}, errors.New("regex blew up")
			},
			want: "Evaluation error: regex blew up",
		},
		{
			name: "panic",
			eval: func(context.Context, models.Question, grading.Answer) (grading.Result, error) {
				panic("nil dataset")
			},
			want: "Evaluation error: nil dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := defaultEvaluators(t)
			set.Formula = tt.eval
			svc := newBankService(t, newStubRepo(), set)
			ctx := context.Background()
			start, err := svc.Start(ctx, nil)
			require.NoError(t, err)

			resp, err := svc.SubmitAnswer(ctx, &models.AnswerRequest{
				InterviewID: start.InterviewID,
				QuestionID:  start.Question.ID,
				AnswerText:  text("=SUMIFS(D:D)"),
			})
			require.NoError(t, err)
			assert.Zero(t, resp.Score)
			assert.False(t, resp.Passed)
			assert.Equal(t, tt.want, resp.Feedback)
			assert.False(t, resp.Done)
			assert.NotNil(t, resp.NextQuestion, "session still advances")
		})
	}
}

func TestInterviewService_ClampsEvaluatorScore(t *testing.T) {
	set := defaultEvaluators(t)
	set.Formula = evaluatorFunc(func(context.Context, models.Question, grading.Answer) (grading.Result, error) {
		return grading.Result{Score: 11, Feedback: "generous", Passed: true}, nil
	})
	svc := newBankService(t, newStubRepo(), set)
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)

	resp, err := svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  start.Question.ID,
		AnswerText:  text("=A1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, resp.RawScore)
}

func TestInterviewService_PersistenceFailureIsSurfaced(t *testing.T) {
	repo := newStubRepo()
	svc := newBankService(t, repo, defaultEvaluators(t))
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)

	repo.setAnswerErr(errors.New("write timeout"))
	resp, err := svc.SubmitAnswer(ctx, validAnswer(start.InterviewID, start.Question))
	require.NoError(t, err)
	require.NotNil(t, resp.PersistenceError)
	assert.True(t, strings.Contains(*resp.PersistenceError, "write timeout"))
	assert.NotNil(t, resp.NextQuestion)

	report, err := svc.Report(ctx, start.InterviewID)
	require.NoError(t, err)
	assert.Len(t, report.Scores, 1)
}

func TestInterviewService_NotFound(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))
	ctx := context.Background()
	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, &models.AnswerRequest{InterviewID: "00000000-0000-0000-0000-000000000000", QuestionID: start.Question.ID, AnswerText: text("=A1")})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SubmitAnswer(ctx, &models.AnswerRequest{InterviewID: start.InterviewID, QuestionID: "q_missing", AnswerText: text("=A1")})
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.Hint(ctx, start.InterviewID, "q_missing")
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	_, err = svc.Report(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInterviewService_Metrics(t *testing.T) {
	svc := newBankService(t, newStubRepo(), defaultEvaluators(t))
	ctx := context.Background()

	metrics, err := svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalAnswers)
	assert.Empty(t, metrics.PerSkillAvg)

	start, err := svc.Start(ctx, nil)
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  "q_sumifs_east_pencil",
		AnswerText:  text(`=SUMIFS(D:D,A:A,"East",C:C,"Pencil")`),
	})
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(ctx, &models.AnswerRequest{
		InterviewID: start.InterviewID,
		QuestionID:  "q_unitprice_kivell_binder",
		AnswerText:  text("20"),
	})
	require.NoError(t, err)

	metrics, err = svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), metrics.TotalAnswers)
	assert.Equal(t, 3.5, metrics.AvgScore)
	assert.Equal(t, map[string]float64{"aggregation": 5, "lookup": 2}, metrics.PerSkillAvg)
}
