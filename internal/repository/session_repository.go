package repository

import (
	"sync"
	"time"

	"pathgenius_backend/internal/model"
)

// SessionKey 去重用的逻辑键，使用结构体而非字符串拼接，
// 避免分隔符选择不当造成的键冲突
type SessionKey struct {
	UserID          string
	LearningGoal    string
	ProfessionLevel string
}

// SessionRepository 评估会话的进程内存储。无持久化，
// 过期清理依赖 Sweep，多实例部署不在支持范围内
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*model.AssessmentSession
	latest   map[SessionKey]string // 逻辑键 -> 最近一次创建的会话ID
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*model.AssessmentSession),
		latest:   make(map[SessionKey]string),
	}
}

func (r *SessionRepository) Put(s *model.AssessmentSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.latest[SessionKey{s.UserID, s.LearningGoal, s.ProfessionLevel}] = s.ID
}

// Get 返回会话结构体的浅拷贝，写入必须走 Update
func (r *SessionRepository) Get(id string) (*model.AssessmentSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	copied := *s
	return &copied, true
}

// Latest 返回逻辑键对应的最近会话，供单飞命中路径短路使用
func (r *SessionRepository) Latest(key SessionKey) (*model.AssessmentSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.latest[key]
	if !ok {
		return nil, false
	}
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	copied := *s
	return &copied, true
}

// Update 在锁内修改会话，fn 中应整体替换 map/切片字段而非原地改写
func (r *SessionRepository) Update(id string, fn func(*model.AssessmentSession)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return false
	}
	fn(s)
	return true
}

func (r *SessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep 删除超龄会话并级联清理指向它们的 latest 指针，返回删除数量
func (r *SessionRepository) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).Unix()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.CreatedAt < cutoff {
			delete(r.sessions, id)
			removed++
		}
	}
	for key, id := range r.latest {
		if _, ok := r.sessions[id]; !ok {
			delete(r.latest, key)
		}
	}
	return removed
}
