package util

// 内容结构上限，与前端展示约定一致
const (
	QuestionCount    = 5 // 每次评估/测验固定 5 题
	MaxCourseModules = 5
	MaxModuleTopics  = 3
)

const (
	QuizStatusCompleted  = "completed"
	QuizStatusPartial    = "partial"
	QuizStatusIncomplete = "incomplete"
)
