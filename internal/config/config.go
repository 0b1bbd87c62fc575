package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Search   SearchConfig
	Postgres PostgresConfig
	OpenAI   OpenAIConfig
	Scorer   ScorerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// DataConfig locates the three property source files
type DataConfig struct {
	Dir                 string
	BasicsFile          string
	CharacteristicsFile string
	ImagesFile          string
}

// SearchConfig holds search defaults and limits
type SearchConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// PostgresConfig holds the saved-listings database configuration.
// An empty DSN disables the saved-listings store.
type PostgresConfig struct {
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// OpenAIConfig holds the language-model API configuration.
// Enabled is derived from the presence of an API key.
type OpenAIConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	MaxTokens   int
	PromptPath  string
	Timeout     int
	Enabled     bool
}

// ScorerConfig holds the price-scoring service configuration.
// An empty URL disables the scorer; predictions then use the fallback price.
type ScorerConfig struct {
	URL     string
	Timeout int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Data: DataConfig{
			Dir:                 getEnv("DATA_DIR", "data"),
			BasicsFile:          getEnv("DATA_BASICS_FILE", "property_basics.json"),
			CharacteristicsFile: getEnv("DATA_CHARACTERISTICS_FILE", "property_characteristics.json"),
			ImagesFile:          getEnv("DATA_IMAGES_FILE", "property_images.json"),
		},
		Search: SearchConfig{
			DefaultPageSize: getEnvAsInt("SEARCH_DEFAULT_PAGE_SIZE", 10),
			MaxPageSize:     getEnvAsInt("SEARCH_MAX_PAGE_SIZE", 100),
		},
		Postgres: PostgresConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			APIBase:     getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:   getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 1024),
			PromptPath:  getEnv("OPENAI_PROMPT_PATH", "prompt/chatbot.txt"),
			Timeout:     getEnvAsInt("OPENAI_TIMEOUT", 30),
			Enabled:     getEnv("OPENAI_API_KEY", "") != "",
		},
		Scorer: ScorerConfig{
			URL:     getEnv("PRICE_SCORER_URL", ""),
			Timeout: getEnvAsInt("PRICE_SCORER_TIMEOUT", 10),
		},
	}

	return cfg, nil
}

// SourcePaths returns the absolute-ish paths of the three source files.
func (c *Config) SourcePaths() (basics, characteristics, images string) {
	return filepath.Join(c.Data.Dir, c.Data.BasicsFile),
		filepath.Join(c.Data.Dir, c.Data.CharacteristicsFile),
		filepath.Join(c.Data.Dir, c.Data.ImagesFile)
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
