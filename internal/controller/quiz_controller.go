package controller

import (
	"errors"

	"pathgenius_backend/internal/service"
	"pathgenius_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// @Summary 生成模块测验
// @Description 基于模块讲义生成 5 道测验题，上游失败时返回模板题
// @Tags 测验
// @Accept json
// @Produce json
// @Param body body service.ModuleQuizRequest true "测验请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/generate-module-quiz [post]
func (c *QuizController) GenerateModuleQuiz(ctx *gin.Context) {
	var req service.ModuleQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.GenerateModuleQuiz(ctx.Request.Context(), req)
	switch {
	case err == nil:
		util.Success(ctx, resp)
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrModuleNotFound):
		util.NotFound(ctx, "Module not found")
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 提交测验答案
// @Description 按作答完成度计分，返回分数、反馈与完成状态
// @Tags 测验
// @Accept json
// @Produce json
// @Param body body service.QuizSubmissionRequest true "测验答案"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/evaluate-module-quiz [post]
func (c *QuizController) EvaluateModuleQuiz(ctx *gin.Context) {
	var req service.QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.EvaluateModuleQuiz(req)
	switch {
	case err == nil:
		util.Success(ctx, result)
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, "Quiz not found")
	default:
		util.LogInternalError(ctx, err)
	}
}
