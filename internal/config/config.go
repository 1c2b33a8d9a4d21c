package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Port     string
	MongoURI string
	RedisURL string

	// Local JWT auth
	JWTSecret string

	// Internal admin surface (operator login, exact-match credentials)
	AdminUsername      string
	AdminPassword      string
	AdminSessionSecret string

	// Text-generation provider (OpenAI-compatible endpoint)
	ProviderBaseURL string
	ProviderAPIKey  string
	ModelsFile      string // YAML model priority list, hot-reloaded
	MaxRetriesPerModel int

	// Retention for stored generation records
	GenerationRetentionDays int

	// Daily generation cap per user (Redis-backed, 0 disables)
	GenerationDailyLimit int
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGODB_URI", ""),
		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminSessionSecret: getEnv("ADMIN_SESSION_SECRET", ""),

		ProviderBaseURL:    getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		ProviderAPIKey:     getEnv("LLM_API_KEY", ""),
		ModelsFile:         getEnv("MODELS_FILE", "models.yaml"),
		MaxRetriesPerModel: getIntEnv("LLM_MAX_RETRIES_PER_MODEL", 3),

		GenerationRetentionDays: getIntEnv("GENERATION_RETENTION_DAYS", 90),
		GenerationDailyLimit:    getIntEnv("GENERATION_DAILY_LIMIT", 50),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
