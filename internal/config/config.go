// Package config loads the server configuration from .env files, an optional
// YAML file and EATWISE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	LLM       LLMConfig       `koanf:"llm"`
	OCR       OCRConfig       `koanf:"ocr"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Log       LogConfig       `koanf:"log"`
	Docs      DocsConfig      `koanf:"docs"`
}

type ServerConfig struct {
	Port           int      `koanf:"port"`
	StaticDir      string   `koanf:"static_dir"`
	AllowedOrigins []string `koanf:"allowed_origins"`
	MaxUploadBytes int64    `koanf:"max_upload_bytes"`
}

type DatabaseConfig struct {
	Path     string `koanf:"path"`
	// uploaded label photos are kept here when set
	ImageDir string `koanf:"image_dir"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	InviteCode string        `koanf:"invite_code"`
}

type LLMConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	Model             string        `koanf:"model"`
	Temperature       float64       `koanf:"temperature"`
	MaxTokens         int           `koanf:"max_tokens"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

type OCRConfig struct {
	Languages []string `koanf:"languages"`
	PSM       int      `koanf:"psm"`
}

// RateLimitConfig applies per client IP to the AI routes.
type RateLimitConfig struct {
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
	TTL               time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type DocsConfig struct {
	Enabled bool `koanf:"enabled"`
}

const (
	DefaultPort           = 5000
	DefaultDatabasePath   = "./eatwise.db"
	DefaultMaxUploadBytes = 5 * 1024 * 1024
	DefaultTokenTTL       = 24 * time.Hour

	DefaultLLMBaseURL     = "https://api.groq.com/openai/v1"
	DefaultLLMModel       = "llama-3.1-8b-instant"
	DefaultLLMTemperature = 0.3
	DefaultLLMTimeout     = 30 * time.Second
	DefaultLLMMaxRetries  = 2
	DefaultLLMRate        = 5.0
	DefaultLLMBurst       = 5

	DefaultAIRate    = 2.0
	DefaultAIBurst   = 10
	DefaultAIRateTTL = time.Hour

	// page segmentation mode 3: fully automatic, no OSD
	DefaultOCRPSM = 3
)

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDatabasePath
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = DefaultLLMBaseURL
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = DefaultLLMTemperature
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = DefaultLLMTimeout
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = DefaultLLMMaxRetries
	}
	if cfg.LLM.RequestsPerSecond == 0 {
		cfg.LLM.RequestsPerSecond = DefaultLLMRate
	}
	if cfg.LLM.Burst == 0 {
		cfg.LLM.Burst = DefaultLLMBurst
	}
	if len(cfg.OCR.Languages) == 0 {
		cfg.OCR.Languages = []string{"eng"}
	}
	if cfg.OCR.PSM == 0 {
		cfg.OCR.PSM = DefaultOCRPSM
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = DefaultAIRate
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultAIBurst
	}
	if cfg.RateLimit.TTL == 0 {
		cfg.RateLimit.TTL = DefaultAIRateTTL
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes < 0 {
		return errors.New("server.max_upload_bytes must not be negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries must not be negative")
	}
	if c.LLM.RequestsPerSecond < 0 || c.RateLimit.RequestsPerSecond < 0 {
		return errors.New("rate limits must not be negative")
	}
	if c.LLM.Burst < 0 || c.RateLimit.Burst < 0 {
		return errors.New("burst sizes must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
