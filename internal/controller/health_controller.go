package controller

import (
	"time"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/internal/repository"
	"pathgenius_backend/internal/util"
	"pathgenius_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthController 健康检查时顺带清理过期会话与课程
type HealthController struct {
	Sessions *repository.SessionRepository
	Courses  *repository.CourseRepository
	Quizzes  *repository.QuizRepository
	Config   config.SessionConfig
}

func NewHealthController(sessions *repository.SessionRepository, courses *repository.CourseRepository, quizzes *repository.QuizRepository, cfg config.SessionConfig) *HealthController {
	return &HealthController{
		Sessions: sessions,
		Courses:  courses,
		Quizzes:  quizzes,
		Config:   cfg,
	}
}

// @Summary 健康检查
// @Description 返回服务状态并触发过期数据清理
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	removedSessions := c.Sessions.Sweep(c.Config.SessionTTL)
	removedQuizzes := c.Quizzes.Sweep(c.Config.SessionTTL)
	removedCourses := c.Courses.Sweep(c.Config.CourseTTL)
	if removedSessions+removedQuizzes+removedCourses > 0 {
		logger.Log.Info("Swept expired records",
			zap.Int("sessions", removedSessions),
			zap.Int("quizzes", removedQuizzes),
			zap.Int("courses", removedCourses))
	}

	util.Success(ctx, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}
