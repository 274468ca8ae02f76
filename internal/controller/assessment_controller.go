package controller

import (
	"errors"
	"net/http"

	"pathgenius_backend/internal/service"
	"pathgenius_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 生成学前评估
// @Description 根据学习目标与水平生成 5 道简答题，上游失败时返回模板题
// @Tags 评估
// @Accept json
// @Produce json
// @Param body body service.AssessmentRequest true "评估请求"
// @Success 200 {object} util.Response
// @Router /api/generate-assessment [post]
func (c *AssessmentController) GenerateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.GenerateAssessment(ctx.Request.Context(), req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// @Summary 提交评估答案并判分
// @Description 保存答案后调用模型判分，返回分数、反馈与推荐模块
// @Tags 评估
// @Accept json
// @Produce json
// @Param body body service.AssessmentSubmissionRequest true "答案信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/evaluate-assessment [post]
func (c *AssessmentController) EvaluateAssessment(ctx *gin.Context) {
	var req service.AssessmentSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.EvaluateAssessment(ctx.Request.Context(), req)
	switch {
	case err == nil:
		util.Success(ctx, result)
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "Assessment session not found")
	case errors.Is(err, util.ErrUpstreamUnavailable):
		util.BadGateway(ctx, "Evaluation model unavailable")
	case errors.Is(err, util.ErrExtractionFailed):
		util.Error(ctx, http.StatusInternalServerError, "Could not evaluate assessment")
	default:
		util.LogInternalError(ctx, err)
	}
}
