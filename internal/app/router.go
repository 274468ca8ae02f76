package app

import (
	"pathgenius_backend/docs"
	"pathgenius_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.Health)

		// 评估
		api.POST("/generate-assessment", c.assessment.GenerateAssessment)
		api.POST("/evaluate-assessment", c.assessment.EvaluateAssessment)

		// 课程
		api.POST("/curate-course", c.course.CurateCourse)
		api.GET("/course/:courseId", c.course.GetCourse)
		api.POST("/generate-module-content", c.course.GenerateModuleContent)

		// 测验
		api.POST("/generate-module-quiz", c.quiz.GenerateModuleQuiz)
		api.POST("/evaluate-module-quiz", c.quiz.EvaluateModuleQuiz)
	}
}
