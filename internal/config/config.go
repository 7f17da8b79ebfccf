package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Generation
	GenerationProvider    string
	GenerationConcurrency int

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI-compatible
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Rate limiting
	RateLimitPerMinute int

	// Redis (optional, shares the rate limit window across replicas)
	RedisURL string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		Env:                   getEnvOrDefault("ENV", "development"),
		GenerationProvider:    strings.ToLower(getEnvOrDefault("GENERATION_PROVIDER", ProviderGemini)),
		GenerationConcurrency: getEnvAsIntOrDefault("GENERATION_CONCURRENCY", 5),
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:          os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:         os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:           getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		RateLimitPerMinute:    getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 20),
		RedisURL:              os.Getenv("REDIS_URL"),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// IsProduction hides error details from API responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate reports settings that cannot work at all. A missing API key is
// not one of them: the server still starts and answers with a configuration
// error per request.
func (c *Config) Validate() error {
	switch c.GenerationProvider {
	case ProviderGemini, ProviderOpenAI, ProviderMock:
	default:
		return fmt.Errorf("unknown GENERATION_PROVIDER %q", c.GenerationProvider)
	}
	if c.GenerationConcurrency < 1 {
		return fmt.Errorf("GENERATION_CONCURRENCY must be positive, got %d", c.GenerationConcurrency)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", c.RateLimitPerMinute)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
