package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
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

// contentKey 模块内容生成的单飞键，与测验键分开收敛
type contentKey struct {
	UserID   string
	CourseID string
	ModuleID int
}

// CourseService 课程编排与模块内容生成
type CourseService struct {
	courses  *repository.CourseRepository
	ollama   *OllamaService
	video    *VideoService
	fallback *FallbackService
	coord    *Coordinator
	cfg      config.OllamaConfig

	mu     sync.RWMutex
	strict bool // 缺少推荐模块时报 400 还是回退为空，可热更新
}

func NewCourseService(
	courses *repository.CourseRepository,
	ollama *OllamaService,
	video *VideoService,
	fallback *FallbackService,
	coord *Coordinator,
	cfg config.OllamaConfig,
	strictModules bool,
) *CourseService {
	return &CourseService{
		courses:  courses,
		ollama:   ollama,
		video:    video,
		fallback: fallback,
		coord:    coord,
		cfg:      cfg,
		strict:   strictModules,
	}
}

// SetStrictModules 配置热更新入口
func (s *CourseService) SetStrictModules(strict bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strict = strict
}

func (s *CourseService) strictModules() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strict
}

type CurateCourseRequest struct {
	LearningGoal       string                    `json:"learningGoal" binding:"required"`
	ProfessionLevel    string                    `json:"professionLevel" binding:"required"`
	UserID             string                    `json:"userId" binding:"required"`
	RecommendedModules []model.RecommendedModule `json:"recommendedModules"`
}

type ModuleContentRequest struct {
	UserID       string `json:"userId" binding:"required"`
	CourseID     string `json:"courseId" binding:"required"`
	ModuleID     int    `json:"moduleId" binding:"required"`
	LearningGoal string `json:"learningGoal"`
	ModuleTitle  string `json:"moduleTitle"`
}

type ModuleContentResponse struct {
	Content    string `json:"content"`
	VideoID    string `json:"videoId,omitempty"`
	VideoTitle string `json:"videoTitle,omitempty"`
}

// CurateCourse 按 (用户, 目标, 水平) 单飞编排课程。同键已有课程时
// 直接复用。首模块的知识点内容即刻生成，其余模块延迟到
// GenerateModuleContent 再填充
func (s *CourseService) CurateCourse(ctx context.Context, req CurateCourseRequest) (*model.CuratedCourse, error) {
	if len(req.RecommendedModules) == 0 && s.strictModules() {
		return nil, util.ErrModulesRequired
	}

	key := repository.CourseKey{
		UserID:          req.UserID,
		LearningGoal:    req.LearningGoal,
		ProfessionLevel: req.ProfessionLevel,
	}

	v, err, shared := s.coord.Do(key, func() (interface{}, error) {
		if existing, ok := s.courses.Latest(key); ok {
			return existing, nil
		}

		course := &model.CuratedCourse{
			ID:        uuid.NewString(),
			UserID:    req.UserID,
			Title:     fmt.Sprintf("Personalized Path: %s", req.LearningGoal),
			Modules:   s.buildOutline(ctx, req),
			CreatedAt: time.Now().Unix(),
		}

		if len(course.Modules) > 0 {
			content := s.generateContent(ctx, req.LearningGoal, &course.Modules[0])
			distributeContent(&course.Modules[0], content)
		}

		s.courses.Put(key, course)
		// 入库后 course 归存储所有，响应方持有隔离副本
		return course.Clone(), nil
	})
	if err != nil {
		return nil, err
	}

	course := v.(*model.CuratedCourse)
	if shared {
		logger.Log.Debug("Course curation deduplicated",
			zap.String("userId", req.UserID),
			zap.String("courseId", course.ID))
	}
	return course, nil
}

// GetCourse 查询课程
func (s *CourseService) GetCourse(id string) (*model.CuratedCourse, error) {
	course, ok := s.courses.Get(id)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

// GenerateModuleContent 懒生成模块内容。已有内容直接返回，
// 生成路径按 (用户, 课程, 模块) 单飞，失败落模板内容
func (s *CourseService) GenerateModuleContent(ctx context.Context, req ModuleContentRequest) (*ModuleContentResponse, error) {
	course, ok := s.courses.Get(req.CourseID)
	if !ok {
		return nil, util.ErrCourseNotFound
	}
	if course.FindModule(req.ModuleID) == nil {
		return nil, util.ErrModuleNotFound
	}

	goal := req.LearningGoal
	if goal == "" {
		goal = course.Title
	}

	key := contentKey{UserID: req.UserID, CourseID: req.CourseID, ModuleID: req.ModuleID}

	v, err, _ := s.coord.Do(key, func() (interface{}, error) {
		course, ok := s.courses.Get(req.CourseID)
		if !ok {
			return nil, util.ErrCourseNotFound
		}
		mod := course.FindModule(req.ModuleID)
		if mod == nil {
			return nil, util.ErrModuleNotFound
		}

		if content := joinedContent(mod); content != "" {
			return &ModuleContentResponse{
				Content:    content,
				VideoID:    mod.VideoID,
				VideoTitle: mod.VideoTitle,
			}, nil
		}

		content := s.generateContent(ctx, goal, mod)

		videoID, videoTitle, found := s.video.Search(ctx, goal+" "+mod.Title)
		if !found {
			videoID, videoTitle, _ = s.fallback.Video(goal + " " + mod.Title)
		}

		s.courses.Update(req.CourseID, func(stored *model.CuratedCourse) {
			if m := stored.FindModule(req.ModuleID); m != nil {
				distributeContent(m, content)
				m.VideoID = videoID
				m.VideoTitle = videoTitle
			}
		})

		return &ModuleContentResponse{
			Content:    content,
			VideoID:    videoID,
			VideoTitle: videoTitle,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ModuleContentResponse), nil
}

// buildOutline 先问模型，提取失败时退到评估推荐的模块，
// 再不行用模板课程结构，保证结构上限约束始终成立
func (s *CourseService) buildOutline(ctx context.Context, req CurateCourseRequest) []model.CourseModule {
	prompt := curationPrompt(req.LearningGoal, req.ProfessionLevel, req.RecommendedModules)

	raw, err := s.ollama.Generate(ctx, "curation", s.cfg.Model, prompt, s.cfg.GenTimeout)
	if err == nil {
		if mods, err := extract.CourseOutline(raw); err == nil {
			monitoring.ExtractionOutcomes.WithLabelValues("course_outline", "ok").Inc()
			return mods
		}
		monitoring.ExtractionOutcomes.WithLabelValues("course_outline", "failed").Inc()
		logger.Log.Warn("Could not extract course outline from model output",
			zap.String("goal", req.LearningGoal))
	}

	if len(req.RecommendedModules) > 0 {
		return recommendedToModules(req.RecommendedModules)
	}
	return s.fallback.Modules(req.LearningGoal, req.ProfessionLevel)
}

// generateContent 单个模块的讲义生成，失败落模板
func (s *CourseService) generateContent(ctx context.Context, goal string, mod *model.CourseModule) string {
	raw, err := s.ollama.Generate(ctx, "content", s.cfg.Model, moduleContentPrompt(goal, mod.Title, mod.Topics), s.cfg.ContentTimeout)
	if err != nil || strings.TrimSpace(raw) == "" {
		return s.fallback.ModuleContent(goal, mod.Title)
	}
	return extract.StripReasoning(raw)
}

func recommendedToModules(recommended []model.RecommendedModule) []model.CourseModule {
	mods := make([]model.CourseModule, 0, len(recommended))
	for _, rm := range recommended {
		mod := model.CourseModule{
			Title:       rm.Title,
			Description: fmt.Sprintf("Recommended based on your assessment: %s", rm.Title),
		}
		for _, t := range rm.Topics {
			mod.Topics = append(mod.Topics, model.ModuleTopic{Title: t})
		}
		mods = append(mods, mod)
	}
	return extract.NormalizeOutline(mods)
}

var reSectionHeading = regexp.MustCompile(`(?m)^## `)

// distributeContent 把整篇讲义按二级标题切给各知识点；
// 段落数对不上时整篇挂在首个知识点下
func distributeContent(mod *model.CourseModule, content string) {
	if len(mod.Topics) == 0 {
		mod.Topics = []model.ModuleTopic{{ID: 1, Title: mod.Title}}
	}

	sections := splitSections(content)
	if len(sections) == len(mod.Topics) {
		for i := range mod.Topics {
			mod.Topics[i].Content = strings.TrimSpace(sections[i])
		}
		return
	}
	mod.Topics[0].Content = strings.TrimSpace(content)
}

func splitSections(content string) []string {
	idxs := reSectionHeading.FindAllStringIndex(content, -1)
	if len(idxs) == 0 {
		return nil
	}

	var sections []string
	for i, idx := range idxs {
		end := len(content)
		if i+1 < len(idxs) {
			end = idxs[i+1][0]
		}
		sections = append(sections, content[idx[0]:end])
	}
	return sections
}

// joinedContent 已生成的知识点内容拼接为模块讲义
func joinedContent(mod *model.CourseModule) string {
	var parts []string
	for _, t := range mod.Topics {
		if t.Content != "" {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
