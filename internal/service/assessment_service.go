package service

import (
	"context"
	"fmt"
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

// AssessmentService 学前评估的生成与判分
type AssessmentService struct {
	sessions *repository.SessionRepository
	ollama   *OllamaService
	fallback *FallbackService
	coord    *Coordinator
	cfg      config.OllamaConfig
}

func NewAssessmentService(
	sessions *repository.SessionRepository,
	ollama *OllamaService,
	fallback *FallbackService,
	coord *Coordinator,
	cfg config.OllamaConfig,
) *AssessmentService {
	return &AssessmentService{
		sessions: sessions,
		ollama:   ollama,
		fallback: fallback,
		coord:    coord,
		cfg:      cfg,
	}
}

type AssessmentRequest struct {
	LearningGoal    string `json:"learningGoal" binding:"required"`
	ProfessionLevel string `json:"professionLevel" binding:"required"`
	UserID          string `json:"userId" binding:"required"`
}

type AssessmentResponse struct {
	Questions []model.AssessmentQuestion `json:"questions"`
	SessionID string                     `json:"sessionId"`
}

type AssessmentSubmissionRequest struct {
	SessionID string            `json:"sessionId" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// GenerateAssessment 按 (用户, 目标, 水平) 单飞生成评估。
// 同键已有未作答会话时直接复用（幂等重复），生成路径从不报错：
// 上游或提取失败一律落到模板题
func (s *AssessmentService) GenerateAssessment(ctx context.Context, req AssessmentRequest) (*AssessmentResponse, error) {
	key := repository.SessionKey{
		UserID:          req.UserID,
		LearningGoal:    req.LearningGoal,
		ProfessionLevel: req.ProfessionLevel,
	}

	v, err, shared := s.coord.Do(key, func() (interface{}, error) {
		if existing, ok := s.sessions.Latest(key); ok && existing.Answers == nil {
			return existing, nil
		}

		session := &model.AssessmentSession{
			ID:              uuid.NewString(),
			UserID:          req.UserID,
			LearningGoal:    req.LearningGoal,
			ProfessionLevel: req.ProfessionLevel,
			Questions:       s.generateQuestions(ctx, req.LearningGoal, req.ProfessionLevel),
			CreatedAt:       time.Now().Unix(),
		}
		s.sessions.Put(session)
		return session, nil
	})
	if err != nil {
		return nil, err
	}

	session := v.(*model.AssessmentSession)
	if shared {
		logger.Log.Debug("Assessment generation deduplicated",
			zap.String("userId", req.UserID),
			zap.String("sessionId", session.ID))
	}

	return &AssessmentResponse{Questions: session.Questions, SessionID: session.ID}, nil
}

// generateQuestions 重试上游生成与提取，全部失败走模板兜底
func (s *AssessmentService) generateQuestions(ctx context.Context, goal, level string) []model.AssessmentQuestion {
	prompt := assessmentPrompt(goal, level)

	for attempt := 1; attempt <= s.cfg.MaxRetries; attempt++ {
		raw, err := s.ollama.Generate(ctx, "assessment", s.cfg.Model, prompt, s.cfg.GenTimeout)
		if err != nil {
			logger.Log.Warn("Assessment generation attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		questions, err := extract.Questions(raw, goal)
		if err != nil {
			monitoring.ExtractionOutcomes.WithLabelValues("question_list", "failed").Inc()
			logger.Log.Warn("Could not extract questions from model output",
				zap.Int("attempt", attempt),
				zap.Int("rawLen", len(raw)))
			continue
		}

		monitoring.ExtractionOutcomes.WithLabelValues("question_list", "ok").Inc()
		return questions
	}

	logger.Log.Info("Using fallback questions", zap.String("goal", goal))
	return s.fallback.Questions(goal)
}

// EvaluateAssessment 判分。答案先落存储，之后评估失败也不丢用户输入。
// 上游不可用或提取失败会向上抛错，由接入层映射为 502/500
func (s *AssessmentService) EvaluateAssessment(ctx context.Context, req AssessmentSubmissionRequest) (*model.AssessmentResult, error) {
	session, ok := s.sessions.Get(req.SessionID)
	if !ok {
		return nil, util.ErrSessionNotFound
	}

	answers := make(map[string]string, len(req.Answers))
	for k, v := range req.Answers {
		answers[k] = v
	}
	s.sessions.Update(req.SessionID, func(stored *model.AssessmentSession) {
		stored.Answers = answers
	})
	session.Answers = answers

	completion := session.CompletionScore()

	raw, err := s.ollama.Generate(ctx, "evaluation", s.cfg.EvalModel, evaluationPrompt(session), s.cfg.EvalTimeout)
	if err != nil {
		return nil, err
	}

	result, err := extract.Evaluation(raw, completion)
	if err != nil {
		monitoring.ExtractionOutcomes.WithLabelValues("evaluation", "failed").Inc()
		return nil, err
	}
	monitoring.ExtractionOutcomes.WithLabelValues("evaluation", "ok").Inc()

	if result.Feedback == "" {
		result.Feedback = fmt.Sprintf("You've completed %d out of %d questions on %s.",
			session.Answered(), len(session.Questions), session.LearningGoal)
	}
	if result.NextSteps == "" {
		result.NextSteps = defaultNextSteps(session.LearningGoal, result.Score)
	}

	s.sessions.Update(req.SessionID, func(stored *model.AssessmentSession) {
		stored.Evaluation = result
	})

	return result, nil
}

func defaultNextSteps(goal string, score float64) string {
	switch {
	case score == 100:
		return fmt.Sprintf("Great job answering all questions! Based on your responses, we'll create a personalized learning path for %s.", goal)
	case score >= 60:
		return fmt.Sprintf("You've made a good start with %s. We'll use your responses to create a learning path that builds on your knowledge.", goal)
	default:
		return fmt.Sprintf("We'll create a learning plan for %s starting with the fundamentals to help you build a strong foundation.", goal)
	}
}
