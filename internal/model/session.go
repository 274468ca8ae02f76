package model

import (
	"strconv"
	"strings"
)

// AssessmentSession 学前评估会话（仅存于进程内存，不落库）
// swagger:model AssessmentSession
type AssessmentSession struct {
	ID              string               `json:"sessionId"`
	UserID          string               `json:"userId"`
	LearningGoal    string               `json:"learningGoal"`
	ProfessionLevel string               `json:"professionLevel"`
	Questions       []AssessmentQuestion `json:"questions"`
	Answers         map[string]string    `json:"answers,omitempty"`
	Evaluation      *AssessmentResult    `json:"evaluation,omitempty"`
	CreatedAt       int64                `json:"createdAt"` // Unix 秒
}

// AssessmentQuestion 评估题目，返回给前端前统一重编号为 1..5
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// AssessmentResult 评估结果
// swagger:model AssessmentResult
type AssessmentResult struct {
	Score              float64             `json:"score"` // 0-100
	Feedback           string              `json:"feedback"`
	NextSteps          string              `json:"nextSteps"`
	RecommendedModules []RecommendedModule `json:"recommendedModules,omitempty"`
}

// RecommendedModule 评估后推荐的学习模块
type RecommendedModule struct {
	Title  string   `json:"title"`
	Topics []string `json:"topics"`
}

// Answered 统计非空作答数量
func (s *AssessmentSession) Answered() int {
	count := 0
	for _, q := range s.Questions {
		if ans, ok := s.Answers[strconv.Itoa(q.ID)]; ok && strings.TrimSpace(ans) != "" {
			count++
		}
	}
	return count
}

// CompletionScore 作答完成度百分比，题目为空时返回 0
func (s *AssessmentSession) CompletionScore() float64 {
	total := len(s.Questions)
	if total == 0 {
		return 0
	}
	return float64(s.Answered()) / float64(total) * 100
}
