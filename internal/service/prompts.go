package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"pathgenius_backend/internal/model"
)

// 提示词集中管理。所有提示词都要求模型只输出 JSON，
// 但实际返回不受约束，容错全部在 extract 包处理

func assessmentPrompt(goal, level string) string {
	return fmt.Sprintf(`Create an assessment test for someone learning %s at a %s level.

Generate 5 short-answer questions that help evaluate their knowledge.

Format your response as a JSON array like this:
[
    {"id": 1, "question": "Explain what X is and how it works?"},
    {"id": 2, "question": "What are the key principles of Y?"},
    ...more questions...
]

Only return the JSON array and nothing else.`, goal, level)
}

func evaluationPrompt(session *model.AssessmentSession) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `A student learning %s at a %s level answered the following assessment questions.

`, session.LearningGoal, session.ProfessionLevel)

	for _, q := range session.Questions {
		answer := session.Answers[fmt.Sprint(q.ID)]
		if strings.TrimSpace(answer) == "" {
			answer = "(no answer)"
		}
		fmt.Fprintf(&sb, "Question %d: %s\nAnswer: %s\n\n", q.ID, q.Question, answer)
	}

	sb.WriteString(`Evaluate the answers and respond with a single JSON object like this:
{
    "score": 72.5,
    "feedback": "...",
    "nextSteps": "...",
    "recommendedModules": [
        {"title": "...", "topics": ["...", "..."]}
    ]
}

The score is 0-100. Recommend at most 5 modules with at most 3 topics each.
Only return the JSON object and nothing else.`)

	return sb.String()
}

func curationPrompt(goal, level string, recommended []model.RecommendedModule) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Design a personalized course for someone learning %s at a %s level.
`, goal, level)

	if len(recommended) > 0 {
		sb.WriteString("\nBuild on these recommended modules:\n")
		for _, m := range recommended {
			fmt.Fprintf(&sb, "- %s", m.Title)
			if len(m.Topics) > 0 {
				fmt.Fprintf(&sb, " (%s)", strings.Join(m.Topics, ", "))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString(`
Respond with a JSON array of at most 5 modules like this:
[
    {"title": "...", "description": "...", "topics": ["...", "...", "..."]}
]

Each module has at most 3 topics. Order the modules from basics to advanced.
Only return the JSON array and nothing else.`)

	return sb.String()
}

func moduleContentPrompt(goal, moduleTitle string, topics []model.ModuleTopic) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Write detailed learning content for the module "%s" of a course on %s.

Cover these topics in order:
`, moduleTitle, goal)

	for _, t := range topics {
		fmt.Fprintf(&sb, "- %s\n", t.Title)
	}

	sb.WriteString(`
Write in Markdown with a section per topic. Include concrete examples.
Return only the Markdown content.`)

	return sb.String()
}

func quizPrompt(moduleTitle, topicContent string) string {
	prompt := fmt.Sprintf(`Create a quiz for the learning module "%s".`, moduleTitle)

	if strings.TrimSpace(topicContent) != "" {
		// 过长的讲义截断，避免撑爆上游上下文窗口。
		// 截断点回退到 rune 边界，不能切出半个多字节字符
		content := topicContent
		if len(content) > 4000 {
			cut := 4000
			for cut > 0 && !utf8.RuneStart(content[cut]) {
				cut--
			}
			content = content[:cut]
		}
		prompt += fmt.Sprintf("\n\nThe module covers the following content:\n%s", content)
	}

	prompt += `

Generate 5 short-answer questions that test understanding of this module.

Format your response as a JSON array like this:
[
    {"id": 1, "question": "..."},
    {"id": 2, "question": "..."}
]

Only return the JSON array and nothing else.`

	return prompt
}
