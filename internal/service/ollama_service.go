package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/internal/util"
	"pathgenius_backend/pkg/logger"
	"pathgenius_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// OllamaService 本地生成模型端点的客户端，非流式调用
type OllamaService struct {
	config config.OllamaConfig
	client *http.Client
}

func NewOllamaService(cfg config.OllamaConfig) *OllamaService {
	return &OllamaService{
		config: cfg,
		client: &http.Client{},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate 同步调用生成端点并返回原始文本。kind 仅用于指标打点，
// 超时通过 ctx 派生，失败统一归并为 ErrUpstreamUnavailable
func (s *OllamaService) Generate(ctx context.Context, kind, model, prompt string, timeout time.Duration) (string, error) {
	if model == "" {
		model = s.config.Model
	}

	reqBody := generateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{Temperature: s.config.Temperature},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	monitoring.UpstreamDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.UpstreamCalls.WithLabelValues(kind, "transport_error").Inc()
		logger.Log.Warn("Ollama request failed",
			zap.String("kind", kind),
			zap.String("model", model),
			zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.UpstreamCalls.WithLabelValues(kind, "bad_status").Inc()
		logger.Log.Warn("Ollama returned non-200 status",
			zap.String("kind", kind),
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", util.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.UpstreamCalls.WithLabelValues(kind, "bad_body").Inc()
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamUnavailable, err)
	}
	if result.Error != "" {
		monitoring.UpstreamCalls.WithLabelValues(kind, "model_error").Inc()
		return "", fmt.Errorf("%w: %s", util.ErrUpstreamUnavailable, result.Error)
	}

	monitoring.UpstreamCalls.WithLabelValues(kind, "ok").Inc()
	return result.Response, nil
}
