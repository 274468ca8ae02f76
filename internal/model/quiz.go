package model

// ModuleQuiz 模块小测验会话
// swagger:model ModuleQuiz
type ModuleQuiz struct {
	ID        string               `json:"quizId"`
	UserID    string               `json:"userId"`
	CourseID  string               `json:"courseId"`
	ModuleID  int                  `json:"moduleId"`
	Questions []AssessmentQuestion `json:"questions"`
	Answers   map[string]string    `json:"answers,omitempty"`
	Result    *QuizResult          `json:"result,omitempty"`
	CreatedAt int64                `json:"createdAt"`
}

// QuizResult 测验结果
// swagger:model QuizResult
type QuizResult struct {
	Score            float64 `json:"score"` // 0-100
	Feedback         string  `json:"feedback"`
	CompletionStatus string  `json:"completionStatus"` // completed / partial / incomplete
}
