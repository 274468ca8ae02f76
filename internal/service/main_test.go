package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func testOllamaConfig(baseURL string) config.OllamaConfig {
	return config.OllamaConfig{
		BaseURL:        baseURL,
		Model:          "test-model",
		Temperature:    0.7,
		GenTimeout:     5 * time.Second,
		EvalTimeout:    5 * time.Second,
		ContentTimeout: 5 * time.Second,
		MaxRetries:     2,
	}
}

// stubOllama 返回固定 response 字段的上游桩
func stubOllama(t *testing.T, response string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": response})
	}))
}

// brokenOllama 恒定失败的上游桩
func brokenOllama(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
}
