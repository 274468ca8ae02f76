package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sessionWithQuestions(n int) *AssessmentSession {
	s := &AssessmentSession{}
	for i := 1; i <= n; i++ {
		s.Questions = append(s.Questions, AssessmentQuestion{ID: i, Question: "q"})
	}
	return s
}

func TestAnsweredIgnoresBlankAndUnknownKeys(t *testing.T) {
	s := sessionWithQuestions(5)
	s.Answers = map[string]string{
		"1":  "real answer",
		"2":  "   ",
		"3":  "",
		"99": "not a question",
	}
	assert.Equal(t, 1, s.Answered())
}

func TestCompletionScore(t *testing.T) {
	s := sessionWithQuestions(5)
	s.Answers = map[string]string{"1": "a", "2": "b", "3": "c"}
	assert.Equal(t, float64(60), s.CompletionScore())

	empty := &AssessmentSession{}
	assert.Equal(t, float64(0), empty.CompletionScore())
}

func TestFindModule(t *testing.T) {
	course := &CuratedCourse{
		Modules: []CourseModule{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}},
	}
	mod := course.FindModule(2)
	assert.NotNil(t, mod)
	assert.Equal(t, "B", mod.Title)
	assert.Nil(t, course.FindModule(3))
}
