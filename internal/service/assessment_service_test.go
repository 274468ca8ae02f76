package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"pathgenius_backend/internal/repository"
	"pathgenius_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssessmentService(baseURL string) (*AssessmentService, *repository.SessionRepository) {
	sessions := repository.NewSessionRepository()
	cfg := testOllamaConfig(baseURL)
	svc := NewAssessmentService(sessions, NewOllamaService(cfg), NewFallbackService(), NewCoordinator(), cfg)
	return svc, sessions
}

func TestGenerateAssessmentFromModel(t *testing.T) {
	srv := stubOllama(t, `[
		{"id":1,"question":"Q1?"},{"id":2,"question":"Q2?"},{"id":3,"question":"Q3?"},
		{"id":4,"question":"Q4?"},{"id":5,"question":"Q5?"}
	]`, nil)
	defer srv.Close()

	svc, sessions := newAssessmentService(srv.URL)
	resp, err := svc.GenerateAssessment(context.Background(), AssessmentRequest{
		LearningGoal:    "go",
		ProfessionLevel: "beginner",
		UserID:          "u1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Questions, util.QuestionCount)
	assert.Equal(t, "Q1?", resp.Questions[0].Question)
	assert.NotEmpty(t, resp.SessionID)

	stored, ok := sessions.Get(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, "u1", stored.UserID)
}

func TestGenerateAssessmentFallsBackWhenUpstreamDown(t *testing.T) {
	var calls int32
	srv := brokenOllama(t, &calls)
	defer srv.Close()

	svc, _ := newAssessmentService(srv.URL)
	resp, err := svc.GenerateAssessment(context.Background(), AssessmentRequest{
		LearningGoal:    "python",
		ProfessionLevel: "beginner",
		UserID:          "u1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Questions, util.QuestionCount)
	assert.Contains(t, resp.Questions[0].Question, "variables")
	// 重试次数耗尽后才走模板
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenerateAssessmentReusesUnansweredSession(t *testing.T) {
	var calls int32
	srv := stubOllama(t, `[{"id":1,"question":"Q1?"}]`, &calls)
	defer srv.Close()

	svc, _ := newAssessmentService(srv.URL)
	req := AssessmentRequest{LearningGoal: "go", ProfessionLevel: "beginner", UserID: "u1"}

	first, err := svc.GenerateAssessment(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.GenerateAssessment(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerateAssessmentSingleFlight(t *testing.T) {
	var calls int32
	srv := stubOllama(t, `[{"id":1,"question":"Q1?"}]`, &calls)
	defer srv.Close()

	svc, _ := newAssessmentService(srv.URL)
	req := AssessmentRequest{LearningGoal: "go", ProfessionLevel: "beginner", UserID: "u1"}

	const workers = 10
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := svc.GenerateAssessment(context.Background(), req)
			if assert.NoError(t, err) {
				ids[i] = resp.SessionID
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestEvaluateAssessmentSessionNotFound(t *testing.T) {
	srv := stubOllama(t, `{}`, nil)
	defer srv.Close()

	svc, _ := newAssessmentService(srv.URL)
	_, err := svc.EvaluateAssessment(context.Background(), AssessmentSubmissionRequest{
		SessionID: "missing",
		Answers:   map[string]string{"1": "a"},
	})
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestEvaluateAssessmentKeepsAnswersWhenUpstreamDown(t *testing.T) {
	genSrv := stubOllama(t, `[{"id":1,"question":"Q1?"}]`, nil)
	defer genSrv.Close()

	svc, sessions := newAssessmentService(genSrv.URL)
	resp, err := svc.GenerateAssessment(context.Background(), AssessmentRequest{
		LearningGoal: "go", ProfessionLevel: "beginner", UserID: "u1",
	})
	require.NoError(t, err)

	genSrv.Close() // 之后的评估调用必然失败

	_, err = svc.EvaluateAssessment(context.Background(), AssessmentSubmissionRequest{
		SessionID: resp.SessionID,
		Answers:   map[string]string{"1": "my answer"},
	})
	assert.ErrorIs(t, err, util.ErrUpstreamUnavailable)

	stored, ok := sessions.Get(resp.SessionID)
	require.True(t, ok)
	assert.Equal(t, "my answer", stored.Answers["1"])
}

func TestEvaluateAssessmentFullResult(t *testing.T) {
	srv := stubOllama(t, `{"score": 85, "feedback": "Well done.", "nextSteps": "Keep practicing.",
		"recommendedModules": [{"title": "Concurrency", "topics": ["goroutines"]}]}`, nil)
	defer srv.Close()

	svc, sessions := newAssessmentService(srv.URL)
	resp, err := svc.GenerateAssessment(context.Background(), AssessmentRequest{
		LearningGoal: "go", ProfessionLevel: "beginner", UserID: "u1",
	})
	require.NoError(t, err)

	result, err := svc.EvaluateAssessment(context.Background(), AssessmentSubmissionRequest{
		SessionID: resp.SessionID,
		Answers:   map[string]string{"1": "a", "2": "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(85), result.Score)
	assert.Equal(t, "Well done.", result.Feedback)
	require.Len(t, result.RecommendedModules, 1)

	stored, _ := sessions.Get(resp.SessionID)
	require.NotNil(t, stored.Evaluation)
	assert.Equal(t, float64(85), stored.Evaluation.Score)
}

func TestEvaluateAssessmentDefaultsToCompletionScore(t *testing.T) {
	srv := stubOllama(t, `{"feedback": "Thanks for your answers."}`, nil)
	defer srv.Close()

	svc, _ := newAssessmentService(srv.URL)
	resp, err := svc.GenerateAssessment(context.Background(), AssessmentRequest{
		LearningGoal: "go", ProfessionLevel: "beginner", UserID: "u1",
	})
	require.NoError(t, err)

	// 5 题答 3 题，完成度 60%
	result, err := svc.EvaluateAssessment(context.Background(), AssessmentSubmissionRequest{
		SessionID: resp.SessionID,
		Answers:   map[string]string{"1": "a", "2": "b", "3": "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(60), result.Score)
	assert.NotEmpty(t, result.NextSteps)
}
