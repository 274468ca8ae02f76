package extract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"pathgenius_backend/internal/model"
	"pathgenius_backend/internal/util"
)

// 提取结果不足 5 题时的补位模板
var questionFillers = []string{
	"What are the foundational concepts of %s?",
	"Explain a practical application of %s in the real world.",
	"What are the key skills needed to excel in %s?",
	"Describe how %s has evolved over the past few years.",
	"What resources would you recommend for someone starting to learn %s?",
}

// NormalizeQuestions 无论提取走了哪条路径都统一收口：
// 去空、截断/补齐到固定题数、ID 重排为 1..N
func NormalizeQuestions(qs []model.AssessmentQuestion, topic string) []model.AssessmentQuestion {
	out := make([]model.AssessmentQuestion, 0, util.QuestionCount)
	for _, q := range qs {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		out = append(out, model.AssessmentQuestion{Question: text})
		if len(out) == util.QuestionCount {
			break
		}
	}

	for i := len(out); i < util.QuestionCount; i++ {
		out = append(out, model.AssessmentQuestion{
			Question: fmt.Sprintf(questionFillers[i%len(questionFillers)], topic),
		})
	}

	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// NormalizeOutline 模块数与知识点数裁剪到上限，ID 顺序编号
func NormalizeOutline(mods []model.CourseModule) []model.CourseModule {
	if len(mods) > util.MaxCourseModules {
		mods = mods[:util.MaxCourseModules]
	}
	for i := range mods {
		mods[i].ID = i + 1
		if mods[i].Title == "" {
			mods[i].Title = fmt.Sprintf("Module %d", i+1)
		}
		if len(mods[i].Topics) > util.MaxModuleTopics {
			mods[i].Topics = mods[i].Topics[:util.MaxModuleTopics]
		}
		for j := range mods[i].Topics {
			mods[i].Topics[j].ID = j + 1
		}
	}
	return mods
}

// ClampScore 分数收敛到 [0,100]
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return strings.TrimSpace(fmt.Sprint(s))
	}
}

func coerceInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	case json.Number:
		if parsed, err := n.Int64(); err == nil {
			return int(parsed)
		}
	}
	return fallback
}

func coerceScore(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	case json.Number:
		if parsed, err := n.Float64(); err == nil {
			return parsed
		}
	}
	return fallback
}

func coerceRecommended(v interface{}) []model.RecommendedModule {
	rows, ok := v.([]interface{})
	if !ok {
		return nil
	}

	var mods []model.RecommendedModule
	for _, row := range rows {
		if len(mods) == util.MaxCourseModules {
			break
		}
		switch m := row.(type) {
		case string:
			if title := strings.TrimSpace(m); title != "" {
				mods = append(mods, model.RecommendedModule{Title: title})
			}
		case map[string]interface{}:
			mod := model.RecommendedModule{Title: coerceString(firstKey(m, "title", "name"))}
			if mod.Title == "" {
				continue
			}
			if topics, ok := m["topics"].([]interface{}); ok {
				for _, t := range topics {
					if len(mod.Topics) == util.MaxModuleTopics {
						break
					}
					if title := coerceString(t); title != "" {
						mod.Topics = append(mod.Topics, title)
					}
				}
			}
			mods = append(mods, mod)
		}
	}
	return mods
}

func unescape(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err == nil {
		return out
	}
	return strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\n`, "\n", `\t`, "\t").Replace(s)
}
