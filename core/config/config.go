package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel     OTelConfig
	Delegate DelegateConfig
	Session  SessionConfig
	Compiler CompilerConfig
	Env      string
	Port     string
	NodeID   int64
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// DelegateConfig configures the optional model-assisted stages. Leaving the
// API key empty runs the pipeline fully rule-based.
type DelegateConfig struct {
	APIKey        string
	BaseURL       string
	FastModel     string
	BalancedModel string
	DeepModel     string
	EnableFast    bool
	EnableDeep    bool
	ForceTier     string
}

// SessionConfig configures where pending clarification rounds live. An empty
// RedisURL selects the in-memory store.
type SessionConfig struct {
	RedisURL string
	TTL      time.Duration
}

type CompilerConfig struct {
	ExecutorName    string
	ExecutorVersion string
}

// Load loads configuration from environment variables. In development it
// also reads a local .env file.
func Load() (Config, error) {
	if getEnv("COMPILER_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:    getEnv("COMPILER_ENV", "development"),
		Port:   getEnv("PORT", "8080"),
		NodeID: int64(getEnvInt("NODE_ID", 1)),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "intent-compiler"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Delegate: DelegateConfig{
			APIKey:        getEnv("DELEGATE_API_KEY", ""),
			BaseURL:       getEnv("DELEGATE_BASE_URL", ""),
			FastModel:     getEnv("DELEGATE_FAST_MODEL", "gpt-4o-mini"),
			BalancedModel: getEnv("DELEGATE_BALANCED_MODEL", "gpt-4o"),
			DeepModel:     getEnv("DELEGATE_DEEP_MODEL", "o1"),
			EnableFast:    getEnvBool("DELEGATE_ENABLE_FAST", true),
			EnableDeep:    getEnvBool("DELEGATE_ENABLE_DEEP", true),
			ForceTier:     getEnv("DELEGATE_FORCE_TIER", ""),
		},
		Session: SessionConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      time.Duration(getEnvInt("SESSION_TTL_SECONDS", 1800)) * time.Second,
		},
		Compiler: CompilerConfig{
			ExecutorName:    getEnv("EXECUTOR_NAME", "claude_code"),
			ExecutorVersion: getEnv("EXECUTOR_VERSION", "1.0"),
		},
	}

	if cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return Config{}, fmt.Errorf("NODE_ID must be in [0, 1023], got %d", cfg.NodeID)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c DelegateConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c SessionConfig) UsesRedis() bool {
	return c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
