package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"JOBREC_EMBEDDING_PROVIDER", "JOBREC_EMBEDDING_MODEL", "JOBREC_EMBEDDING_DIM",
		"OPENAI_API_KEY", "JOBREC_VECTOR_BACKEND", "CHROMA_BASE_PATH",
		"JOBREC_COLLECTION_BASE", "JOBREC_METADATA_BACKEND", "DATABASE_URL",
		"JOBREC_JOB_SOURCE_PATH", "JOBREC_VERBOSE",
	}
	for _, v := range vars {
		require.NoError(t, os.Unsetenv(v))
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	s := LoadFromEnv()
	assert.Equal(t, "local", s.EmbeddingProvider)
	assert.Equal(t, 256, s.EmbeddingDim)
	assert.Equal(t, "memory", s.VectorIndexBackend)
	assert.Equal(t, "memory", s.MetadataBackend)
	assert.NoError(t, s.Validate())
}

func TestLoadFromEnv_OpenAIWithoutKeyFailsValidation(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv("JOBREC_EMBEDDING_PROVIDER", "openai"))
	defer os.Unsetenv("JOBREC_EMBEDDING_PROVIDER")

	s := LoadFromEnv()
	assert.Equal(t, 1536, s.EmbeddingDim)
	assert.Error(t, s.Validate())

	require.NoError(t, os.Setenv("OPENAI_API_KEY", "sk-test"))
	defer os.Unsetenv("OPENAI_API_KEY")
	s = LoadFromEnv()
	assert.NoError(t, s.Validate())
}

func TestLoadFromEnv_PostgresWithoutURLFailsValidation(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv("JOBREC_METADATA_BACKEND", "postgres"))
	defer os.Unsetenv("JOBREC_METADATA_BACKEND")

	s := LoadFromEnv()
	assert.Error(t, s.Validate())
}

func TestLoadFromEnv_UnknownBackendFailsValidation(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Setenv("JOBREC_VECTOR_BACKEND", "bogus"))
	defer os.Unsetenv("JOBREC_VECTOR_BACKEND")

	s := LoadFromEnv()
	assert.Error(t, s.Validate())
}
