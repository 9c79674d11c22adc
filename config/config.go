// Package config provides configuration for the shop assistant service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the service configuration. It is read once at startup and
// treated as read-only afterwards.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Remote model endpoint (OpenAI-compatible chat completions)
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMMaxTokens   int
	LLMTemperature float64

	// Pipeline limits
	MaxHistory    int
	ProductLimit  int
	LLMRetries    int
	LLMRetryDelay time.Duration

	// When true, off-topic exchanges are replaced with the fixed redirect
	// message instead of the model's output.
	EnforceTopicPolicy bool
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:           getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:        getEnv("DATABASE_URL", "file:shopchat.db?cache=shared&mode=rwc"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://router.huggingface.co/v1"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		LLMModel:           getEnv("LLM_MODEL", "katanemo/Arch-Router-1.5B"),
		LLMTimeout:         time.Duration(getEnvInt("LLM_TIMEOUT_MS", 30000)) * time.Millisecond,
		LLMMaxTokens:       getEnvInt("LLM_MAX_TOKENS", 500),
		LLMTemperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
		MaxHistory:         getEnvInt("MAX_HISTORY", 12),
		ProductLimit:       getEnvInt("PRODUCT_LIMIT", 30),
		LLMRetries:         getEnvInt("LLM_RETRIES", 2),
		LLMRetryDelay:      time.Duration(getEnvInt("LLM_RETRY_DELAY_MS", 700)) * time.Millisecond,
		EnforceTopicPolicy: getEnvBool("ENFORCE_TOPIC_POLICY", true),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if floatVal, err := strconv.ParseFloat(val, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
