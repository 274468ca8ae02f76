package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/internal/extract"
	"pathgenius_backend/internal/model"
	"pathgenius_backend/internal/repository"
	"pathgenius_backend/internal/util"
	"pathgenius_backend/pkg/logger"
	"pathgenius_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuizService 模块测验的生成与判分
type QuizService struct {
	quizzes  *repository.QuizRepository
	courses  *repository.CourseRepository
	ollama   *OllamaService
	fallback *FallbackService
	coord    *Coordinator
	cfg      config.OllamaConfig
}

func NewQuizService(
	quizzes *repository.QuizRepository,
	courses *repository.CourseRepository,
	ollama *OllamaService,
	fallback *FallbackService,
	coord *Coordinator,
	cfg config.OllamaConfig,
) *QuizService {
	return &QuizService{
		quizzes:  quizzes,
		courses:  courses,
		ollama:   ollama,
		fallback: fallback,
		coord:    coord,
		cfg:      cfg,
	}
}

type ModuleQuizRequest struct {
	ModuleID     int    `json:"moduleId" binding:"required"`
	UserID       string `json:"userId" binding:"required"`
	CourseID     string `json:"courseId" binding:"required"`
	TopicContent string `json:"topicContent"`
}

type ModuleQuizResponse struct {
	Questions []model.AssessmentQuestion `json:"questions"`
	QuizID    string                     `json:"quizId"`
}

type QuizSubmissionRequest struct {
	QuizID  string            `json:"quizId" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}

// GenerateModuleQuiz 按 (用户, 课程, 模块) 单飞生成测验，
// 未作答的既有测验直接复用，生成失败落模板题
func (s *QuizService) GenerateModuleQuiz(ctx context.Context, req ModuleQuizRequest) (*ModuleQuizResponse, error) {
	course, ok := s.courses.Get(req.CourseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	mod := course.FindModule(req.ModuleID)
	if mod == nil {
		return nil, util.ErrModuleNotFound
	}

	key := repository.QuizKey{UserID: req.UserID, CourseID: req.CourseID, ModuleID: req.ModuleID}

	v, err, shared := s.coord.Do(key, func() (interface{}, error) {
		if existing, ok := s.quizzes.Latest(key); ok && existing.Answers == nil {
			return existing, nil
		}

		quiz := &model.ModuleQuiz{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			CourseID:  req.CourseID,
			ModuleID:  req.ModuleID,
			Questions: s.generateQuizQuestions(ctx, mod.Title, req.TopicContent),
			CreatedAt: time.Now().Unix(),
		}
		s.quizzes.Put(quiz)
		return quiz, nil
	})
	if err != nil {
		return nil, err
	}

	quiz := v.(*model.ModuleQuiz)
	if shared {
		logger.Log.Debug("Quiz generation deduplicated",
			zap.String("userId", req.UserID),
			zap.String("quizId", quiz.ID))
	}
	return &ModuleQuizResponse{Questions: quiz.Questions, QuizID: quiz.ID}, nil
}

func (s *QuizService) generateQuizQuestions(ctx context.Context, moduleTitle, topicContent string) []model.AssessmentQuestion {
	raw, err := s.ollama.Generate(ctx, "quiz", s.cfg.Model, quizPrompt(moduleTitle, topicContent), s.cfg.GenTimeout)
	if err == nil {
		if questions, err := extract.Questions(raw, moduleTitle); err == nil {
			monitoring.ExtractionOutcomes.WithLabelValues("quiz_questions", "ok").Inc()
			return questions
		}
		monitoring.ExtractionOutcomes.WithLabelValues("quiz_questions", "failed").Inc()
		logger.Log.Warn("Could not extract quiz questions from model output",
			zap.String("module", moduleTitle))
	}
	return s.fallback.QuizQuestions(moduleTitle)
}

// EvaluateModuleQuiz 按作答完成度判分，不调用上游模型
func (s *QuizService) EvaluateModuleQuiz(req QuizSubmissionRequest) (*model.QuizResult, error) {
	quiz, ok := s.quizzes.Get(req.QuizID)
	if !ok {
		return nil, util.ErrQuizNotFound
	}

	answers := make(map[string]string, len(req.Answers))
	for k, v := range req.Answers {
		answers[k] = v
	}

	answered := 0
	for _, q := range quiz.Questions {
		if ans, ok := answers[strconv.Itoa(q.ID)]; ok && strings.TrimSpace(ans) != "" {
			answered++
		}
	}

	score := 0.0
	if len(quiz.Questions) > 0 {
		score = extract.ClampScore(float64(answered) / float64(len(quiz.Questions)) * 100)
	}

	status := util.QuizStatusIncomplete
	switch {
	case score == 100:
		status = util.QuizStatusCompleted
	case score > 0:
		status = util.QuizStatusPartial
	}

	result := &model.QuizResult{
		Score:            score,
		Feedback:         fmt.Sprintf("You answered %d out of %d questions for this module.", answered, len(quiz.Questions)),
		CompletionStatus: status,
	}

	s.quizzes.Update(req.QuizID, func(stored *model.ModuleQuiz) {
		stored.Answers = answers
		stored.Result = result
	})

	return result, nil
}
