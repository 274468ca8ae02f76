package service

import (
	"context"
	"testing"
	"time"

	"pathgenius_backend/internal/model"
	"pathgenius_backend/internal/repository"
	"pathgenius_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(baseURL string) (*QuizService, *repository.QuizRepository, *repository.CourseRepository) {
	quizzes := repository.NewQuizRepository()
	courses := repository.NewCourseRepository()
	cfg := testOllamaConfig(baseURL)
	svc := NewQuizService(quizzes, courses, NewOllamaService(cfg), NewFallbackService(), NewCoordinator(), cfg)
	return svc, quizzes, courses
}

func seedCourse(courses *repository.CourseRepository) *model.CuratedCourse {
	course := &model.CuratedCourse{
		ID:     "c1",
		UserID: "u1",
		Title:  "Personalized Path: go",
		Modules: []model.CourseModule{
			{ID: 1, Title: "Go Basics", Topics: []model.ModuleTopic{{ID: 1, Title: "Syntax"}}},
		},
		CreatedAt: time.Now().Unix(),
	}
	courses.Put(repository.CourseKey{UserID: "u1", LearningGoal: "go", ProfessionLevel: "beginner"}, course)
	return course
}

func TestGenerateModuleQuizCourseChecks(t *testing.T) {
	srv := brokenOllama(t, nil)
	defer srv.Close()

	svc, _, courses := newQuizService(srv.URL)
	_, err := svc.GenerateModuleQuiz(context.Background(), ModuleQuizRequest{
		ModuleID: 1, UserID: "u1", CourseID: "missing",
	})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)

	seedCourse(courses)
	_, err = svc.GenerateModuleQuiz(context.Background(), ModuleQuizRequest{
		ModuleID: 99, UserID: "u1", CourseID: "c1",
	})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestGenerateModuleQuizFallback(t *testing.T) {
	srv := brokenOllama(t, nil)
	defer srv.Close()

	svc, quizzes, courses := newQuizService(srv.URL)
	seedCourse(courses)

	resp, err := svc.GenerateModuleQuiz(context.Background(), ModuleQuizRequest{
		ModuleID: 1, UserID: "u1", CourseID: "c1",
	})
	require.NoError(t, err)
	require.Len(t, resp.Questions, util.QuestionCount)
	assert.Contains(t, resp.Questions[0].Question, "Go Basics")

	stored, ok := quizzes.Get(resp.QuizID)
	require.True(t, ok)
	assert.Equal(t, 1, stored.ModuleID)
}

func TestGenerateModuleQuizReusesUnanswered(t *testing.T) {
	srv := brokenOllama(t, nil)
	defer srv.Close()

	svc, _, courses := newQuizService(srv.URL)
	seedCourse(courses)
	req := ModuleQuizRequest{ModuleID: 1, UserID: "u1", CourseID: "c1"}

	first, err := svc.GenerateModuleQuiz(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.GenerateModuleQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.QuizID, second.QuizID)

	// 作答之后重新生成得到新测验
	_, err = svc.EvaluateModuleQuiz(QuizSubmissionRequest{
		QuizID:  first.QuizID,
		Answers: map[string]string{"1": "a"},
	})
	require.NoError(t, err)
	third, err := svc.GenerateModuleQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.QuizID, third.QuizID)
}

func TestEvaluateModuleQuizStatuses(t *testing.T) {
	srv := brokenOllama(t, nil)
	defer srv.Close()

	svc, _, courses := newQuizService(srv.URL)
	seedCourse(courses)

	cases := []struct {
		name    string
		answers map[string]string
		score   float64
		status  string
	}{
		{
			name:    "all answered",
			answers: map[string]string{"1": "a", "2": "b", "3": "c", "4": "d", "5": "e"},
			score:   100,
			status:  util.QuizStatusCompleted,
		},
		{
			name:    "partially answered",
			answers: map[string]string{"1": "a", "2": "b"},
			score:   40,
			status:  util.QuizStatusPartial,
		},
		{
			name:    "blank answers ignored",
			answers: map[string]string{"1": "   ", "2": ""},
			score:   0,
			status:  util.QuizStatusIncomplete,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.GenerateModuleQuiz(context.Background(), ModuleQuizRequest{
				ModuleID: 1, UserID: "u-" + tc.name, CourseID: "c1",
			})
			require.NoError(t, err)

			result, err := svc.EvaluateModuleQuiz(QuizSubmissionRequest{
				QuizID:  resp.QuizID,
				Answers: tc.answers,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.score, result.Score)
			assert.Equal(t, tc.status, result.CompletionStatus)
		})
	}
}

func TestEvaluateModuleQuizNotFound(t *testing.T) {
	srv := brokenOllama(t, nil)
	defer srv.Close()

	svc, _, _ := newQuizService(srv.URL)
	_, err := svc.EvaluateModuleQuiz(QuizSubmissionRequest{
		QuizID:  "missing",
		Answers: map[string]string{"1": "a"},
	})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
