package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Generative model endpoint (OpenAI-compatible chat completions API).
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	// Embeddings endpoint (OpenAI-compatible embeddings API).
	EmbeddingBaseURL   string
	EmbeddingModelName string

	// Content source: "github" fetches repositories through the GitHub REST API,
	// "local" reads them from ContentRoot/<owner>/<name>.
	ContentSource string
	GitHubAPIURL  string
	GitHubToken   string
	ContentRoot   string

	DBPath string

	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// Indexing and retrieval tuning.
	MaxChunkSize    int
	EmbedBatchSize  int
	EmbedBatchDelay time.Duration
	TopK            int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded
// automatically. Environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up toward the project root looking for a .env file.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "text-embedding-3-small"),
		ContentSource:      getEnv("CONTENT_SOURCE", "github"),
		GitHubAPIURL:       getEnv("GITHUB_API_URL", "https://api.github.com"),
		GitHubToken:        getEnv("GITHUB_TOKEN", ""),
		ContentRoot:        getEnv("CONTENT_ROOT", ""),
		DBPath:             getEnv("DB_PATH", "./data/repoqa.db"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "repo-chunks"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	switch cfg.ContentSource {
	case "github":
	case "local":
		if cfg.ContentRoot == "" {
			return nil, fmt.Errorf("CONTENT_ROOT is required when CONTENT_SOURCE=local")
		}
	default:
		return nil, fmt.Errorf("CONTENT_SOURCE must be \"github\" or \"local\", got %q", cfg.ContentSource)
	}

	// QDRANT_VECTOR_SIZE must match the output dimensionality of the embeddings
	// model. If it changes, the Qdrant collection must be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.MaxChunkSize, err = getEnvInt("MAX_CHUNK_SIZE", 500); err != nil {
		return nil, err
	}
	if cfg.EmbedBatchSize, err = getEnvInt("EMBED_BATCH_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getEnvInt("RAG_TOP_K", 5); err != nil {
		return nil, err
	}

	delayMs := getEnv("EMBED_BATCH_DELAY_MS", "300")
	ms, err := strconv.Atoi(delayMs)
	if err != nil {
		return nil, fmt.Errorf("EMBED_BATCH_DELAY_MS must be a valid integer: %w", err)
	}
	if ms < 0 {
		return nil, fmt.Errorf("EMBED_BATCH_DELAY_MS must not be negative")
	}
	cfg.EmbedBatchDelay = time.Duration(ms) * time.Millisecond

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Create the data directory up front so the SQLite open cannot fail on it.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}
