package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"pathgenius_backend/internal/config"
	"pathgenius_backend/pkg/logger"

	"go.uber.org/zap"
)

// VideoService 视频搜索端点客户端（Invidious 风格 API），
// 查询失败只记日志不报错，调用方自行走回退表
type VideoService struct {
	config config.VideoConfig
	client *http.Client
}

func NewVideoService(cfg config.VideoConfig) *VideoService {
	return &VideoService{
		config: cfg,
		client: &http.Client{},
	}
}

type videoSearchResult struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// Search 返回零或一个候选视频，端点未配置或无结果时 ok 为 false
func (s *VideoService) Search(ctx context.Context, query string) (videoID, title string, ok bool) {
	if s.config.BaseURL == "" {
		return "", "", false
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/v1/search?q=%s&type=video", s.config.BaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Log.Warn("Video search request failed", zap.String("query", query), zap.Error(err))
		return "", "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("Video search returned non-200 status",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode))
		return "", "", false
	}

	var results []videoSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return "", "", false
	}

	return results[0].VideoID, results[0].Title, results[0].VideoID != ""
}
