package repository

import (
	"sync"
	"time"

	"pathgenius_backend/internal/model"
)

// QuizKey 模块测验去重的逻辑键
type QuizKey struct {
	UserID   string
	CourseID string
	ModuleID int
}

// QuizRepository 模块测验的进程内存储
type QuizRepository struct {
	mu      sync.RWMutex
	quizzes map[string]*model.ModuleQuiz
	latest  map[QuizKey]string
}

func NewQuizRepository() *QuizRepository {
	return &QuizRepository{
		quizzes: make(map[string]*model.ModuleQuiz),
		latest:  make(map[QuizKey]string),
	}
}

func (r *QuizRepository) Put(q *model.ModuleQuiz) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[q.ID] = q
	r.latest[QuizKey{q.UserID, q.CourseID, q.ModuleID}] = q.ID
}

func (r *QuizRepository) Get(id string) (*model.ModuleQuiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, false
	}
	copied := *q
	return &copied, true
}

func (r *QuizRepository) Latest(key QuizKey) (*model.ModuleQuiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.latest[key]
	if !ok {
		return nil, false
	}
	q, ok := r.quizzes[id]
	if !ok {
		return nil, false
	}
	copied := *q
	return &copied, true
}

func (r *QuizRepository) Update(id string, fn func(*model.ModuleQuiz)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return false
	}
	fn(q)
	return true
}

func (r *QuizRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.quizzes, id)
}

// Sweep 测验跟随会话的 TTL 清理
func (r *QuizRepository) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).Unix()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, q := range r.quizzes {
		if q.CreatedAt < cutoff {
			delete(r.quizzes, id)
			removed++
		}
	}
	for key, id := range r.latest {
		if _, ok := r.quizzes[id]; !ok {
			delete(r.latest, key)
		}
	}
	return removed
}
