// Package config loads runtime Settings from environment variables (and an
// optional .env file), grounded on the godotenv + os.Getenv-with-defaults
// pattern used in straga-Mimir_lite's pkg/config/config.go.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds everything the jobrec CLI and pipeline need to run,
// loaded once at startup and treated as immutable thereafter.
type Settings struct {
	// Embedding provider selection: "openai" or "local".
	EmbeddingProvider string
	EmbeddingModel    string
	EmbeddingDim      int
	OpenAIAPIKey      string

	// Vector index (C3) backend: "chroma" or "memory".
	VectorIndexBackend string
	ChromaBasePath     string
	CollectionBase     string

	// Metadata row store backend: "postgres" or "memory".
	MetadataBackend   string
	DatabaseURL       string

	// Job source file for indexJobs, stand-in for the out-of-scope crawler.
	JobSourcePath string

	Verbose bool
}

// LoadFromEnv loads a .env file if present (silently ignored if absent,
// matching godotenv.Load's own behavior), then reads Settings from the
// environment with sensible defaults so LoadFromEnv() never requires any
// variable to be set.
func LoadFromEnv() *Settings {
	_ = godotenv.Load()

	s := &Settings{
		EmbeddingProvider:  getEnv("JOBREC_EMBEDDING_PROVIDER", "local"),
		EmbeddingModel:     getEnv("JOBREC_EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDim:       getEnvInt("JOBREC_EMBEDDING_DIM", 1536),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		VectorIndexBackend: getEnv("JOBREC_VECTOR_BACKEND", "memory"),
		ChromaBasePath:     getEnv("CHROMA_BASE_PATH", "http://localhost:8000"),
		CollectionBase:     getEnv("JOBREC_COLLECTION_BASE", "jobs"),
		MetadataBackend:    getEnv("JOBREC_METADATA_BACKEND", "memory"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		JobSourcePath:      getEnv("JOBREC_JOB_SOURCE_PATH", ""),
		Verbose:            getEnvBool("JOBREC_VERBOSE", false),
	}

	if s.EmbeddingProvider == "local" {
		s.EmbeddingDim = getEnvInt("JOBREC_EMBEDDING_DIM", 256)
	}

	return s
}

// Validate checks for configuration combinations that cannot work, e.g. an
// OpenAI provider with no API key or a Postgres metadata backend with no
// connection string.
func (s *Settings) Validate() error {
	switch s.EmbeddingProvider {
	case "openai":
		if s.OpenAIAPIKey == "" {
			return fmt.Errorf("config: JOBREC_EMBEDDING_PROVIDER=openai requires OPENAI_API_KEY")
		}
	case "local":
	default:
		return fmt.Errorf("config: unknown embedding provider %q", s.EmbeddingProvider)
	}

	switch s.VectorIndexBackend {
	case "chroma", "memory":
	default:
		return fmt.Errorf("config: unknown vector index backend %q", s.VectorIndexBackend)
	}

	switch s.MetadataBackend {
	case "postgres":
		if s.DatabaseURL == "" {
			return fmt.Errorf("config: JOBREC_METADATA_BACKEND=postgres requires DATABASE_URL")
		}
	case "memory":
	default:
		return fmt.Errorf("config: unknown metadata backend %q", s.MetadataBackend)
	}

	if s.EmbeddingDim <= 0 {
		return fmt.Errorf("config: invalid embedding dimension %d", s.EmbeddingDim)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		val = strings.ToLower(val)
		return val == "true" || val == "1" || val == "yes" || val == "on"
	}
	return defaultVal
}
