package service

import (
	"testing"

	"pathgenius_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQuestionsAlwaysFive(t *testing.T) {
	fb := NewFallbackService()
	for _, topic := range []string{"python", "web development", "machine learning", "quantum basket weaving"} {
		qs := fb.Questions(topic)
		require.Len(t, qs, util.QuestionCount, topic)
		for i, q := range qs {
			assert.Equal(t, i+1, q.ID)
			assert.NotEmpty(t, q.Question)
		}
	}
}

func TestFallbackQuestionsTopicBuckets(t *testing.T) {
	fb := NewFallbackService()

	assert.Contains(t, fb.Questions("Python programming")[0].Question, "variables")
	assert.Contains(t, fb.Questions("web development")[0].Question, "HTML")
	assert.Contains(t, fb.Questions("machine learning")[0].Question, "supervised")
	assert.Contains(t, fb.Questions("gardening")[0].Question, "gardening")
}

func TestFallbackModulesBounds(t *testing.T) {
	fb := NewFallbackService()
	mods := fb.Modules("go", "beginner")
	require.Len(t, mods, util.MaxCourseModules)
	for i, m := range mods {
		assert.Equal(t, i+1, m.ID)
		assert.NotEmpty(t, m.Title)
		assert.LessOrEqual(t, len(m.Topics), util.MaxModuleTopics)
	}
}

func TestFallbackVideoDeterministic(t *testing.T) {
	fb := NewFallbackService()

	id1, title1, ok := fb.Video("machine learning fundamentals")
	require.True(t, ok)
	id2, title2, ok := fb.Video("machine learning fundamentals")
	require.True(t, ok)
	assert.Equal(t, id1, id2)
	assert.Equal(t, title1, title2)

	_, _, ok = fb.Video("underwater basket weaving")
	assert.False(t, ok)
}

func TestFallbackModuleContentMentionsModule(t *testing.T) {
	fb := NewFallbackService()
	content := fb.ModuleContent("go", "Go Basics")
	assert.Contains(t, content, "Go Basics")
	assert.Contains(t, content, "go")
}
