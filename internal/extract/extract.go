// Package extract 负责把生成模型的自由文本恢复成结构化数据。
// 所有函数都是纯函数：按固定顺序尝试修复手段，第一个成功的结果生效，
// 全部失败时返回 util.ErrExtractionFailed，由调用方决定是否走模板兜底。
package extract

import (
	"encoding/json"
	"regexp"

	"pathgenius_backend/internal/model"
	"pathgenius_backend/internal/util"
)

var (
	reQuestionField = regexp.MustCompile(`"question"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	reTitleBlock    = regexp.MustCompile(`\{[^{}]*"title"[^{}]*\}`)
	reTitleField    = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	reDescField     = regexp.MustCompile(`"description"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	reTopicsField   = regexp.MustCompile(`"topics"\s*:\s*\[([^\]]*)\]`)
	reQuotedString  = regexp.MustCompile(`"((?:[^"\\]|\\.)+)"`)
	reScoreField    = regexp.MustCompile(`"score"\s*:\s*"?(-?\d+(?:\.\d+)?)"?`)
	reFeedbackField = regexp.MustCompile(`"feedback"\s*:\s*"((?:[^"\\]|\\.)+)"`)
	reNextField     = regexp.MustCompile(`"next_?[sS]teps"\s*:\s*"((?:[^"\\]|\\.)+)"`)
)

// Questions 从模型输出恢复题目列表，返回前已归一化：
// 恰好 util.QuestionCount 题，ID 按 1..N 重新编号
func Questions(raw, topic string) ([]model.AssessmentQuestion, error) {
	cleaned := StripFences(StripReasoning(raw))
	if cleaned == "" {
		return nil, util.ErrExtractionFailed
	}

	if region, ok := FindArray(cleaned, "question"); ok {
		if qs := parseQuestionArray(region); len(qs) > 0 {
			return NormalizeQuestions(qs, topic), nil
		}
	}

	if qs := salvageQuestions(cleaned); len(qs) > 0 {
		return NormalizeQuestions(qs, topic), nil
	}

	return nil, util.ErrExtractionFailed
}

// Evaluation 从模型输出恢复评估对象。score 缺失或无法解析时
// 使用 defaultScore（作答完成度百分比）
func Evaluation(raw string, defaultScore float64) (*model.AssessmentResult, error) {
	cleaned := StripFences(StripReasoning(raw))
	if cleaned == "" {
		return nil, util.ErrExtractionFailed
	}

	if region, ok := FindObject(cleaned, "score"); ok {
		if m := parseObject(region); m != nil {
			return normalizeEvaluation(m, defaultScore), nil
		}
	}

	if res := salvageEvaluation(cleaned, defaultScore); res != nil {
		return res, nil
	}

	return nil, util.ErrExtractionFailed
}

// CourseOutline 从模型输出恢复课程模块结构，返回前已裁剪到
// 最多 util.MaxCourseModules 个模块、每模块 util.MaxModuleTopics 个知识点
func CourseOutline(raw string) ([]model.CourseModule, error) {
	cleaned := StripFences(StripReasoning(raw))
	if cleaned == "" {
		return nil, util.ErrExtractionFailed
	}

	if region, ok := FindArray(cleaned, "title"); ok {
		if mods := parseModuleArray(region); len(mods) > 0 {
			return NormalizeOutline(mods), nil
		}
	}

	if mods := salvageModules(cleaned); len(mods) > 0 {
		return NormalizeOutline(mods), nil
	}

	return nil, util.ErrExtractionFailed
}

// strictParse 严格解析，失败后做一次行级撇号修复再试
func strictParse(region string, out interface{}) bool {
	repaired := NormalizeQuotes(region)
	if err := json.Unmarshal([]byte(repaired), out); err == nil {
		return true
	}
	return json.Unmarshal([]byte(RepairLines(repaired)), out) == nil
}

func parseQuestionArray(region string) []model.AssessmentQuestion {
	var rows []interface{}
	if !strictParse(region, &rows) {
		return nil
	}

	var qs []model.AssessmentQuestion
	for _, row := range rows {
		switch v := row.(type) {
		case string:
			qs = append(qs, model.AssessmentQuestion{ID: len(qs) + 1, Question: v})
		case map[string]interface{}:
			q := model.AssessmentQuestion{
				ID:       coerceInt(v["id"], len(qs)+1),
				Question: coerceString(v["question"]),
			}
			if q.Question == "" {
				q.Question = coerceString(v["text"])
			}
			qs = append(qs, q)
		}
	}
	return qs
}

// salvageQuestions 逐字段正则兜底，有损且按出现顺序取first-match
func salvageQuestions(cleaned string) []model.AssessmentQuestion {
	matches := reQuestionField.FindAllStringSubmatch(cleaned, -1)
	var qs []model.AssessmentQuestion
	for _, m := range matches {
		qs = append(qs, model.AssessmentQuestion{ID: len(qs) + 1, Question: unescape(m[1])})
	}
	return qs
}

func parseObject(region string) map[string]interface{} {
	var m map[string]interface{}
	if !strictParse(region, &m) {
		return nil
	}
	return m
}

func normalizeEvaluation(m map[string]interface{}, defaultScore float64) *model.AssessmentResult {
	res := &model.AssessmentResult{
		Score:     coerceScore(firstKey(m, "score"), defaultScore),
		Feedback:  coerceString(firstKey(m, "feedback")),
		NextSteps: coerceString(firstKey(m, "nextSteps", "next_steps")),
	}
	res.Score = ClampScore(res.Score)
	res.RecommendedModules = coerceRecommended(firstKey(m, "recommendedModules", "recommended_modules"))
	return res
}

func salvageEvaluation(cleaned string, defaultScore float64) *model.AssessmentResult {
	res := &model.AssessmentResult{Score: defaultScore}
	found := false

	if m := reScoreField.FindStringSubmatch(cleaned); m != nil {
		res.Score = coerceScore(m[1], defaultScore)
		found = true
	}
	if m := reFeedbackField.FindStringSubmatch(cleaned); m != nil {
		res.Feedback = unescape(m[1])
		found = true
	}
	if m := reNextField.FindStringSubmatch(cleaned); m != nil {
		res.NextSteps = unescape(m[1])
		found = true
	}
	if mods := salvageRecommended(cleaned); len(mods) > 0 {
		res.RecommendedModules = mods
		found = true
	}

	if !found {
		return nil
	}
	res.Score = ClampScore(res.Score)
	return res
}

func parseModuleArray(region string) []model.CourseModule {
	var rows []interface{}
	if !strictParse(region, &rows) {
		return nil
	}

	var mods []model.CourseModule
	for _, row := range rows {
		m, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		mod := model.CourseModule{
			Title:       coerceString(m["title"]),
			Description: coerceString(m["description"]),
		}
		if topics, ok := m["topics"].([]interface{}); ok {
			for _, t := range topics {
				title := coerceString(t)
				if title == "" {
					if tm, ok := t.(map[string]interface{}); ok {
						title = coerceString(tm["title"])
					}
				}
				if title != "" {
					mod.Topics = append(mod.Topics, model.ModuleTopic{Title: title})
				}
			}
		}
		mods = append(mods, mod)
	}
	return mods
}

func salvageModules(cleaned string) []model.CourseModule {
	blocks := reTitleBlock.FindAllString(cleaned, -1)
	var mods []model.CourseModule
	for _, block := range blocks {
		mod := model.CourseModule{}
		if m := reTitleField.FindStringSubmatch(block); m != nil {
			mod.Title = unescape(m[1])
		}
		if mod.Title == "" {
			continue
		}
		if m := reDescField.FindStringSubmatch(block); m != nil {
			mod.Description = unescape(m[1])
		}
		if m := reTopicsField.FindStringSubmatch(block); m != nil {
			for _, t := range reQuotedString.FindAllStringSubmatch(m[1], -1) {
				mod.Topics = append(mod.Topics, model.ModuleTopic{Title: unescape(t[1])})
			}
		}
		mods = append(mods, mod)
	}
	return mods
}

func salvageRecommended(cleaned string) []model.RecommendedModule {
	blocks := reTitleBlock.FindAllString(cleaned, -1)
	var mods []model.RecommendedModule
	for _, block := range blocks {
		m := reTitleField.FindStringSubmatch(block)
		if m == nil {
			continue
		}
		mod := model.RecommendedModule{Title: unescape(m[1])}
		if t := reTopicsField.FindStringSubmatch(block); t != nil {
			for _, q := range reQuotedString.FindAllStringSubmatch(t[1], -1) {
				mod.Topics = append(mod.Topics, unescape(q[1]))
			}
		}
		mods = append(mods, mod)
	}
	return mods
}

func firstKey(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
