package repository

import (
	"sync"
	"time"

	"pathgenius_backend/internal/model"
)

// CourseKey 课程编排去重的逻辑键
type CourseKey struct {
	UserID          string
	LearningGoal    string
	ProfessionLevel string
}

// CourseRepository 个性化课程的进程内存储
type CourseRepository struct {
	mu      sync.RWMutex
	courses map[string]*model.CuratedCourse
	latest  map[CourseKey]string
}

func NewCourseRepository() *CourseRepository {
	return &CourseRepository{
		courses: make(map[string]*model.CuratedCourse),
		latest:  make(map[CourseKey]string),
	}
}

func (r *CourseRepository) Put(key CourseKey, c *model.CuratedCourse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = c
	r.latest[key] = c.ID
}

// Get 返回深拷贝。Update 会原地改写模块的 Topics 元素，
// 浅拷贝会与存储副本共享底层数组，锁外读取就成了数据竞争
func (r *CourseRepository) Get(id string) (*model.CuratedCourse, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (r *CourseRepository) Latest(key CourseKey) (*model.CuratedCourse, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.latest[key]
	if !ok {
		return nil, false
	}
	c, ok := r.courses[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Update 在锁内修改课程，用于懒生成模块内容的回填
func (r *CourseRepository) Update(id string, fn func(*model.CuratedCourse)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return false
	}
	fn(c)
	return true
}

func (r *CourseRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
}

func (r *CourseRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.courses)
}

// Sweep 课程的超龄清理。原始实现没有课程过期逻辑（无限增长），
// 这里补上与会话一致的按龄清理，TTL 单独配置
func (r *CourseRepository) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).Unix()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, c := range r.courses {
		if c.CreatedAt < cutoff {
			delete(r.courses, id)
			removed++
		}
	}
	for key, id := range r.latest {
		if _, ok := r.courses[id]; !ok {
			delete(r.latest, key)
		}
	}
	return removed
}
