package repository

import (
	"testing"
	"time"

	"pathgenius_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id, userID string, createdAt int64) *model.AssessmentSession {
	return &model.AssessmentSession{
		ID:              id,
		UserID:          userID,
		LearningGoal:    "learn go",
		ProfessionLevel: "beginner",
		CreatedAt:       createdAt,
	}
}

func TestSessionRepositoryPutGet(t *testing.T) {
	repo := NewSessionRepository()
	repo.Put(newSession("s1", "u1", time.Now().Unix()))

	got, ok := repo.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "u1", got.UserID)

	_, ok = repo.Get("missing")
	assert.False(t, ok)
}

func TestSessionRepositoryGetReturnsCopy(t *testing.T) {
	repo := NewSessionRepository()
	repo.Put(newSession("s1", "u1", time.Now().Unix()))

	got, _ := repo.Get("s1")
	got.LearningGoal = "mutated"

	fresh, _ := repo.Get("s1")
	assert.Equal(t, "learn go", fresh.LearningGoal)
}

func TestSessionRepositoryLatest(t *testing.T) {
	repo := NewSessionRepository()
	key := SessionKey{UserID: "u1", LearningGoal: "learn go", ProfessionLevel: "beginner"}

	_, ok := repo.Latest(key)
	assert.False(t, ok)

	repo.Put(newSession("s1", "u1", time.Now().Unix()))
	repo.Put(newSession("s2", "u1", time.Now().Unix()))

	latest, ok := repo.Latest(key)
	require.True(t, ok)
	assert.Equal(t, "s2", latest.ID)
}

func TestSessionRepositoryUpdate(t *testing.T) {
	repo := NewSessionRepository()
	repo.Put(newSession("s1", "u1", time.Now().Unix()))

	ok := repo.Update("s1", func(s *model.AssessmentSession) {
		s.Answers = map[string]string{"1": "an answer"}
	})
	require.True(t, ok)

	got, _ := repo.Get("s1")
	assert.Equal(t, "an answer", got.Answers["1"])

	assert.False(t, repo.Update("missing", func(s *model.AssessmentSession) {}))
}

func TestSessionRepositorySweep(t *testing.T) {
	repo := NewSessionRepository()
	now := time.Now()
	repo.Put(newSession("old", "u1", now.Add(-25*time.Hour).Unix()))
	repo.Put(newSession("fresh", "u2", now.Add(-time.Hour).Unix()))

	removed := repo.Sweep(24 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, repo.Len())

	_, ok := repo.Get("old")
	assert.False(t, ok)
	_, ok = repo.Get("fresh")
	assert.True(t, ok)

	// 指向被清理会话的 latest 指针一并移除
	_, ok = repo.Latest(SessionKey{UserID: "u1", LearningGoal: "learn go", ProfessionLevel: "beginner"})
	assert.False(t, ok)
	_, ok = repo.Latest(SessionKey{UserID: "u2", LearningGoal: "learn go", ProfessionLevel: "beginner"})
	assert.True(t, ok)
}

func TestCourseRepositorySweep(t *testing.T) {
	repo := NewCourseRepository()
	key := CourseKey{UserID: "u1", LearningGoal: "learn go", ProfessionLevel: "beginner"}
	repo.Put(key, &model.CuratedCourse{
		ID:        "c1",
		UserID:    "u1",
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour).Unix(),
	})

	removed := repo.Sweep(7 * 24 * time.Hour)
	assert.Equal(t, 1, removed)
	_, ok := repo.Latest(key)
	assert.False(t, ok)
}

func TestCourseRepositoryCopiesAreIsolatedFromUpdates(t *testing.T) {
	repo := NewCourseRepository()
	key := CourseKey{UserID: "u1", LearningGoal: "go", ProfessionLevel: "beginner"}
	repo.Put(key, &model.CuratedCourse{
		ID:     "c1",
		UserID: "u1",
		Modules: []model.CourseModule{
			{ID: 1, Title: "M1", Topics: []model.ModuleTopic{{ID: 1, Title: "T1"}}},
		},
		CreatedAt: time.Now().Unix(),
	})

	copied, ok := repo.Get("c1")
	require.True(t, ok)

	// 持有读取副本的同时并发回填内容，副本不得观察到写入
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			repo.Update("c1", func(c *model.CuratedCourse) {
				c.Modules[0].Topics[0].Content = "generated lecture"
				c.Modules[0].VideoID = "vid123"
			})
		}
	}()
	for i := 0; i < 200; i++ {
		if copied.Modules[0].Topics[0].Content != "" || copied.Modules[0].VideoID != "" {
			t.Fatal("read copy observed a concurrent update")
		}
	}
	<-done

	assert.Empty(t, copied.Modules[0].Topics[0].Content)
	assert.Empty(t, copied.Modules[0].VideoID)

	latest, ok := repo.Latest(key)
	require.True(t, ok)
	assert.Equal(t, "generated lecture", latest.Modules[0].Topics[0].Content)
	assert.Equal(t, "vid123", latest.Modules[0].VideoID)
}

func TestQuizRepositoryLatestPerModule(t *testing.T) {
	repo := NewQuizRepository()
	k1 := QuizKey{UserID: "u1", CourseID: "c1", ModuleID: 1}
	k2 := QuizKey{UserID: "u1", CourseID: "c1", ModuleID: 2}

	repo.Put(&model.ModuleQuiz{ID: "q1", UserID: "u1", CourseID: "c1", ModuleID: 1, CreatedAt: time.Now().Unix()})
	repo.Put(&model.ModuleQuiz{ID: "q2", UserID: "u1", CourseID: "c1", ModuleID: 2, CreatedAt: time.Now().Unix()})

	got, ok := repo.Latest(k1)
	require.True(t, ok)
	assert.Equal(t, "q1", got.ID)

	got, ok = repo.Latest(k2)
	require.True(t, ok)
	assert.Equal(t, "q2", got.ID)
}
