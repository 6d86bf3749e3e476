// Package embedding implements C2: the embedding service abstraction, a
// lazily-loaded OpenAI-backed provider, and a deterministic offline
// provider used for tests and local CLI runs.
package embedding

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/your-org/jobrec/internal/textnorm"
	"github.com/your-org/jobrec/pkg/models"
)

// ComputeVersionID derives a stable 12-character id from the embedding
// model name and the text-cleaning logic version. Two services with the
// same model name but different cleaning versions get different ids, so
// vectors produced under stale cleaning logic are never compared against
// fresh ones.
func ComputeVersionID(modelName, cleaningVersion string) string {
	versionString := fmt.Sprintf("%s|cleaning_v%s", modelName, cleaningVersion)
	sum := sha1.Sum([]byte(versionString))
	return hex.EncodeToString(sum[:])[:12]
}

// DefaultEmbeddingConfig builds an EmbeddingConfig for modelName and dim
// using the package's current cleaning version.
func DefaultEmbeddingConfig(modelName string, dim int) models.EmbeddingConfig {
	return models.EmbeddingConfig{
		ModelName: modelName,
		Dim:       dim,
		VersionID: ComputeVersionID(modelName, textnorm.CleaningVersion),
	}
}
