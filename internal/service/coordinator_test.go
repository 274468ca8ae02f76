package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyA struct{ ID string }
type keyB struct{ ID string }

func TestCoordinatorDeduplicatesConcurrentCalls(t *testing.T) {
	coord := NewCoordinator()
	var executions int32

	const workers = 20
	results := make([]interface{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err, _ := coord.Do(keyA{ID: "same"}, func() (interface{}, error) {
				atomic.AddInt32(&executions, 1)
				time.Sleep(50 * time.Millisecond)
				return "result", nil
			})
			if assert.NoError(t, err) {
				results[i] = v
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executions))
	for _, r := range results {
		assert.Equal(t, "result", r)
	}
}

func TestCoordinatorKeyTypesIsolated(t *testing.T) {
	coord := NewCoordinator()

	v, err, _ := coord.Do(keyA{ID: "x"}, func() (interface{}, error) { return "a", nil })
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	// 字段相同但类型不同的键互不干扰
	v, err, _ = coord.Do(keyB{ID: "x"}, func() (interface{}, error) { return "b", nil })
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestCoordinatorForgetsFailedKeys(t *testing.T) {
	coord := NewCoordinator()
	boom := errors.New("boom")

	_, err, _ := coord.Do(keyA{ID: "k"}, func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	// 失败不应阻塞同键的下一次尝试
	v, err, _ := coord.Do(keyA{ID: "k"}, func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestCoordinatorInFlight(t *testing.T) {
	coord := NewCoordinator()
	started := make(chan struct{})
	release := make(chan struct{})

	go coord.Do(keyA{ID: "busy"}, func() (interface{}, error) {
		close(started)
		<-release
		return nil, nil
	})

	<-started
	assert.True(t, coord.InFlight(keyA{ID: "busy"}))
	assert.False(t, coord.InFlight(keyA{ID: "idle"}))
	close(release)
}
