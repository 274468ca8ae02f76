package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Video     VideoConfig     `mapstructure:"video"`
	Session   SessionConfig   `mapstructure:"session"`
	Curation  CurationConfig  `mapstructure:"curation"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

// OllamaConfig 本地生成模型端点配置
type OllamaConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	EvalModel      string        `mapstructure:"eval_model"`
	Temperature    float64       `mapstructure:"temperature"`
	GenTimeout     time.Duration `mapstructure:"gen_timeout_seconds"`
	EvalTimeout    time.Duration `mapstructure:"eval_timeout_seconds"`
	ContentTimeout time.Duration `mapstructure:"content_timeout_seconds"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// VideoConfig 视频搜索端点配置，BaseURL 为空时仅使用内置回退表
type VideoConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout_seconds"`
}

// SessionConfig 会话/课程的过期清理配置
type SessionConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl_hours"`
	CourseTTL  time.Duration `mapstructure:"course_ttl_hours"`
}

// CurationConfig strict 模式下缺少推荐模块返回 400，lenient 模式回退为空列表
type CurationConfig struct {
	StrictModules bool `mapstructure:"strict_modules"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PATHGENIUS")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Ollama
	viper.BindEnv("ollama.base_url", "OLLAMA_BASE_URL")
	viper.BindEnv("ollama.model", "OLLAMA_MODEL")
	viper.BindEnv("ollama.eval_model", "OLLAMA_EVAL_MODEL")

	// Video
	viper.BindEnv("video.base_url", "VIDEO_BASE_URL")

	// Curation
	viper.BindEnv("curation.strict_modules", "CURATION_STRICT_MODULES")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// yaml 中以整数填写，这里统一换算
	cfg.Ollama.GenTimeout *= time.Second
	cfg.Ollama.EvalTimeout *= time.Second
	cfg.Ollama.ContentTimeout *= time.Second
	cfg.Video.Timeout *= time.Second
	cfg.Session.SessionTTL *= time.Hour
	cfg.Session.CourseTTL *= time.Hour

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8000"
	}
	if cfg.Ollama.BaseURL == "" {
		cfg.Ollama.BaseURL = "http://localhost:11434"
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = "llama3.2:latest"
	}
	if cfg.Ollama.EvalModel == "" {
		cfg.Ollama.EvalModel = cfg.Ollama.Model
	}
	if cfg.Ollama.Temperature == 0 {
		cfg.Ollama.Temperature = 0.1
	}
	if cfg.Ollama.GenTimeout == 0 {
		cfg.Ollama.GenTimeout = 20 * time.Second
	}
	if cfg.Ollama.EvalTimeout == 0 {
		cfg.Ollama.EvalTimeout = 60 * time.Second
	}
	if cfg.Ollama.ContentTimeout == 0 {
		cfg.Ollama.ContentTimeout = 300 * time.Second
	}
	if cfg.Ollama.MaxRetries == 0 {
		cfg.Ollama.MaxRetries = 2
	}
	if cfg.Video.Timeout == 0 {
		cfg.Video.Timeout = 10 * time.Second
	}
	if cfg.Session.SessionTTL == 0 {
		cfg.Session.SessionTTL = 24 * time.Hour
	}
	if cfg.Session.CourseTTL == 0 {
		cfg.Session.CourseTTL = 7 * 24 * time.Hour
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		// 本服务只有 POST/GET 接口
		cfg.CORS.AllowedMethods = []string{"POST", "GET", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Content-Length", "Accept-Encoding", "Origin", "Cache-Control", "X-Requested-With"}
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 100000
	}
	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 1
	}
}
