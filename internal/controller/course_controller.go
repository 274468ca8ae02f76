package controller

import (
	"errors"

	"pathgenius_backend/internal/service"
	"pathgenius_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary 策展个性化课程
// @Description 按评估推荐与学习目标生成课程大纲，并预生成第一个模块的内容
// @Tags 课程
// @Accept json
// @Produce json
// @Param body body service.CurateCourseRequest true "课程请求"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/curate-course [post]
func (c *CourseController) CurateCourse(ctx *gin.Context) {
	var req service.CurateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.CurateCourse(ctx.Request.Context(), req)
	switch {
	case err == nil:
		util.Success(ctx, course)
	case errors.Is(err, util.ErrModulesRequired):
		util.BadRequest(ctx, "recommendedModules is required")
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 查询课程
// @Description 按课程 ID 返回完整课程结构
// @Tags 课程
// @Produce json
// @Param courseId path string true "课程 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/course/{courseId} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.Service.GetCourse(ctx.Param("courseId"))
	if err != nil {
		util.NotFound(ctx, "Course not found")
		return
	}
	util.Success(ctx, course)
}

// @Summary 生成模块内容
// @Description 为指定模块生成讲义与配套视频，已生成的模块直接返回缓存
// @Tags 课程
// @Accept json
// @Produce json
// @Param body body service.ModuleContentRequest true "模块内容请求"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/generate-module-content [post]
func (c *CourseController) GenerateModuleContent(ctx *gin.Context) {
	var req service.ModuleContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.GenerateModuleContent(ctx.Request.Context(), req)
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
