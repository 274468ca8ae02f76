package service

import (
	"fmt"
	"sync"

	"pathgenius_backend/pkg/monitoring"

	"golang.org/x/sync/singleflight"
)

// Coordinator 按逻辑键收敛重复请求：同一键同一时刻最多一次
// 上游模型调用在途，并发到达的请求共享首个调用的结果，
// 不再各自轮询或产生分叉的兜底结果。processing 集合仅用于
// 观测（在途键数指标）和重入自检，互斥语义由 singleflight 保证
type Coordinator struct {
	group singleflight.Group

	mu         sync.Mutex
	processing map[string]struct{}
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		processing: make(map[string]struct{}),
	}
}

// Do 以 key（可比较的结构体逻辑键）收敛 fn 的并发执行。
// shared 表示本次结果来自他人发起的在途调用。fn 返回错误或
// panic 时键会被立即遗忘，失败的尝试不会卡死后续请求
func (c *Coordinator) Do(key interface{}, fn func() (interface{}, error)) (interface{}, error, bool) {
	k := canonicalKey(key)

	v, err, shared := c.group.Do(k, func() (v interface{}, err error) {
		c.track(k)
		defer c.untrack(k)
		return fn()
	})
	if err != nil {
		// 错误结果不应在去重窗口内被复用
		c.group.Forget(k)
	}
	return v, err, shared
}

// InFlight 返回键是否有在途调用
func (c *Coordinator) InFlight(key interface{}) bool {
	k := canonicalKey(key)
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.processing[k]
	return ok
}

func (c *Coordinator) track(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing[k] = struct{}{}
	monitoring.InFlight.Set(float64(len(c.processing)))
}

func (c *Coordinator) untrack(k string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.processing, k)
	monitoring.InFlight.Set(float64(len(c.processing)))
}

// canonicalKey 把类型化逻辑键编码成带类型名的字符串，
// 不同键类型之间天然隔离
func canonicalKey(key interface{}) string {
	return fmt.Sprintf("%T%+v", key, key)
}
