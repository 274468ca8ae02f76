package service

import (
	"fmt"
	"hash/fnv"
	"strings"

	"pathgenius_backend/internal/model"
	"pathgenius_backend/internal/util"
	"pathgenius_backend/pkg/monitoring"
)

// FallbackService 模板化内容兜底。提取失败或上游不可用时保证
// 调用方仍拿到结构合法的结果：恰好 5 题、最多 5 模块且每模块
// 最多 3 个知识点。所有方法都不返回错误
type FallbackService struct{}

func NewFallbackService() *FallbackService {
	return &FallbackService{}
}

// 按主题关键词子串匹配的候选视频表，顺序即匹配优先级
var fallbackVideos = []struct {
	keyword    string
	candidates []videoSearchResult
}{
	{"machine learning", []videoSearchResult{
		{VideoID: "NWONeJKn6kc", Title: "Machine Learning for Everybody - Full Course"},
		{VideoID: "i_LwzRVP7bg", Title: "Machine Learning Full Course"},
	}},
	{"python", []videoSearchResult{
		{VideoID: "rfscVS0vtbw", Title: "Learn Python - Full Course for Beginners"},
		{VideoID: "_uQrJ0TkZlc", Title: "Python Tutorial - Python Full Course for Beginners"},
	}},
	{"javascript", []videoSearchResult{
		{VideoID: "PkZNo7MFNFg", Title: "Learn JavaScript - Full Course for Beginners"},
		{VideoID: "jS4aFq5-91M", Title: "JavaScript Programming - Full Course"},
	}},
	{"web", []videoSearchResult{
		{VideoID: "G3e-cpL7ofc", Title: "HTML & CSS Full Course - Beginner to Pro"},
		{VideoID: "mU6anWqZJcc", Title: "Learn HTML5 and CSS3 From Scratch"},
	}},
	{"data", []videoSearchResult{
		{VideoID: "ua-CiDNNj30", Title: "Learn Data Science Tutorial - Full Course for Beginners"},
		{VideoID: "LHBE6Q9XlzI", Title: "Python for Data Science - Course for Beginners"},
	}},
	{"go", []videoSearchResult{
		{VideoID: "un6ZyFkqFKo", Title: "Learn Go Programming - Golang Tutorial for Beginners"},
	}},
}

// Questions 按主题关键词返回预设的 5 道简答题
func (s *FallbackService) Questions(topic string) []model.AssessmentQuestion {
	monitoring.FallbackCounter.WithLabelValues("assessment").Inc()

	lower := strings.ToLower(topic)
	var texts []string

	switch {
	case containsAny(lower, "python", "coding", "programming"):
		texts = []string{
			fmt.Sprintf("What are variables in %s and how do you define them?", topic),
			fmt.Sprintf("Explain the concept of functions in %s and provide a simple example.", topic),
			fmt.Sprintf("What are data structures in %s and name a few common ones.", topic),
			fmt.Sprintf("Explain the difference between loops and conditionals in %s.", topic),
			fmt.Sprintf("What is error handling in %s and why is it important?", topic),
		}
	case containsAny(lower, "web", "html", "css", "javascript"):
		texts = []string{
			"What is the basic structure of an HTML document?",
			"Explain the difference between inline and block elements in HTML/CSS.",
			"What is the CSS box model and what are its components?",
			"Explain the concept of DOM manipulation in JavaScript.",
			"What are responsive design principles and why are they important?",
		}
	case containsAny(lower, "data", "machine learning", "ai"):
		texts = []string{
			"What is the difference between supervised and unsupervised learning?",
			"Explain what data preprocessing is and why it's important.",
			"What is overfitting and how can it be prevented?",
			"Explain the concept of feature selection in machine learning.",
			"What are common evaluation metrics for classification models?",
		}
	default:
		texts = []string{
			fmt.Sprintf("What are the foundational concepts of %s?", topic),
			fmt.Sprintf("Explain a practical application of %s in the real world.", topic),
			fmt.Sprintf("What are the key skills needed to excel in %s?", topic),
			fmt.Sprintf("Describe the evolution of %s over the past few years.", topic),
			fmt.Sprintf("What resources would you recommend for someone starting to learn %s?", topic),
		}
	}

	qs := make([]model.AssessmentQuestion, 0, util.QuestionCount)
	for i, text := range texts {
		qs = append(qs, model.AssessmentQuestion{ID: i + 1, Question: text})
	}
	return qs
}

// Modules 返回循序渐进的模板课程结构
func (s *FallbackService) Modules(goal, level string) []model.CourseModule {
	monitoring.FallbackCounter.WithLabelValues("curation").Inc()

	blueprints := []struct {
		title  string
		desc   string
		topics []string
	}{
		{
			title:  fmt.Sprintf("Foundations of %s", goal),
			desc:   fmt.Sprintf("Core concepts and terminology every %s learner needs first.", level),
			topics: []string{"Key concepts and terminology", "How the pieces fit together", "Setting up your environment"},
		},
		{
			title:  fmt.Sprintf("%s in Practice", goal),
			desc:   "Hands-on application of the fundamentals through worked examples.",
			topics: []string{"Guided walkthroughs", "Common patterns", "Avoiding beginner mistakes"},
		},
		{
			title:  fmt.Sprintf("Intermediate %s", goal),
			desc:   "Deeper techniques that build on the foundations.",
			topics: []string{"Intermediate techniques", "Debugging and troubleshooting", "Working with real projects"},
		},
		{
			title:  fmt.Sprintf("Advanced Topics in %s", goal),
			desc:   "Specialized areas and current best practices.",
			topics: []string{"Advanced patterns", "Performance and optimization", "Ecosystem and tooling"},
		},
		{
			title:  "Capstone and Next Steps",
			desc:   fmt.Sprintf("Consolidate your %s skills with a project and plan what to learn next.", goal),
			topics: []string{"Capstone project", "Portfolio and practice", "Continuing your learning"},
		},
	}

	mods := make([]model.CourseModule, 0, util.MaxCourseModules)
	for i, bp := range blueprints {
		mod := model.CourseModule{
			ID:          i + 1,
			Title:       bp.title,
			Description: bp.desc,
		}
		for j, t := range bp.topics {
			if j == util.MaxModuleTopics {
				break
			}
			mod.Topics = append(mod.Topics, model.ModuleTopic{ID: j + 1, Title: t})
		}
		mods = append(mods, mod)
	}
	return mods
}

// QuizQuestions 模块测验的模板题目
func (s *FallbackService) QuizQuestions(moduleTitle string) []model.AssessmentQuestion {
	monitoring.FallbackCounter.WithLabelValues("quiz").Inc()

	texts := []string{
		fmt.Sprintf("Summarize the main ideas covered in %s.", moduleTitle),
		fmt.Sprintf("Which concept from %s did you find most challenging, and why?", moduleTitle),
		fmt.Sprintf("Give a concrete example that applies something you learned in %s.", moduleTitle),
		fmt.Sprintf("How does %s relate to what you learned in earlier modules?", moduleTitle),
		fmt.Sprintf("What would you like to explore further after finishing %s?", moduleTitle),
	}

	qs := make([]model.AssessmentQuestion, 0, util.QuestionCount)
	for i, text := range texts {
		qs = append(qs, model.AssessmentQuestion{ID: i + 1, Question: text})
	}
	return qs
}

// ModuleContent 模块讲义的模板正文
func (s *FallbackService) ModuleContent(goal, moduleTitle string) string {
	monitoring.FallbackCounter.WithLabelValues("content").Inc()

	return fmt.Sprintf(
		"# %s\n\n"+
			"This module is part of your personalized path for learning %s.\n\n"+
			"## Overview\n\n"+
			"Work through the topics below in order. Each topic builds on the previous one, "+
			"so take time to practice before moving on.\n\n"+
			"## How to study this module\n\n"+
			"1. Read through each topic and take notes in your own words.\n"+
			"2. Try the concepts hands-on as you go.\n"+
			"3. Take the module quiz when you feel ready.\n",
		moduleTitle, goal)
}

// Video 从回退表中按关键词子串匹配挑选视频，同一主题的
// 选择是确定性的（FNV 哈希作种子）
func (s *FallbackService) Video(topic string) (videoID, title string, ok bool) {
	lower := strings.ToLower(topic)
	for _, entry := range fallbackVideos {
		if strings.Contains(lower, entry.keyword) {
			pick := entry.candidates[seedFor(topic)%uint32(len(entry.candidates))]
			return pick.VideoID, pick.Title, true
		}
	}
	return "", "", false
}

func seedFor(topic string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(topic)))
	return h.Sum32()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
