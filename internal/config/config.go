package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Language   LanguageConfig
	Redis      RedisConfig
	OpenAI     OpenAIConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// SearchConfig holds retrieval configuration
type SearchConfig struct {
	ResultLimit int // cap on similarity search results per request
}

// LanguageConfig controls the deterministic English-only gate
type LanguageConfig struct {
	GateEnabled bool
}

// RedisConfig holds the optional embedding cache configuration.
// An empty Addr disables the cache entirely.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	CacheTTLMin int
}

// OpenAIConfig holds OpenAI-compatible API configuration
type OpenAIConfig struct {
	APIKey              string
	APIBase             string
	ChatModel           string // Model for classification/extraction/summaries
	ChatTemperature     float64
	ChatMaxTokens       int
	EmbeddingModel      string
	EmbeddingDimensions int
	BatchSize           int
	Timeout             int
	Enabled             bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "property_search"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Search: SearchConfig{
			ResultLimit: getEnvAsInt("SEARCH_RESULT_LIMIT", 21),
		},
		Language: LanguageConfig{
			GateEnabled: getEnvAsBool("LANGUAGE_GATE_ENABLED", false),
		},
		Redis: RedisConfig{
			Addr:        getEnv("REDIS_ADDR", ""),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			CacheTTLMin: getEnvAsInt("REDIS_CACHE_TTL_MINUTES", 1440),
		},
		OpenAI: OpenAIConfig{
			APIKey:              getEnv("OPENAI_API_KEY", ""),
			APIBase:             getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:           getEnv("OPENAI_CHAT_MODEL", "gpt-4o-2024-08-06"),
			ChatTemperature:     getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			ChatMaxTokens:       getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 4096),
			EmbeddingModel:      getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-large"),
			EmbeddingDimensions: getEnvAsInt("OPENAI_EMBEDDING_DIMENSIONS", 1024),
			BatchSize:           getEnvAsInt("OPENAI_BATCH_SIZE", 100),
			Timeout:             getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:             getEnv("OPENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
