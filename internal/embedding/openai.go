package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/your-org/jobrec/pkg/models"
)

// OpenAIDim is the vector dimension of text-embedding-ada-002, the
// default model. Callers configuring a different model should supply its
// true dimension via NewOpenAIService.
const OpenAIDim = 1536

// OpenAIService wraps langchaingo's embeddings.Embedder over an OpenAI LLM
// client. The client and embedder are created lazily on first use, guarded
// by a sync.Once so concurrent first callers block on a single load
// instead of racing to create duplicate clients.
type OpenAIService struct {
	apiKey    string
	modelName string
	dim       int

	once     sync.Once
	loadErr  error
	embedder *embeddings.EmbedderImpl

	mu sync.RWMutex
}

// NewOpenAIService constructs a provider for modelName (e.g.
// "text-embedding-ada-002"). The client isn't created until the first
// Config/EmbedOne/EmbedMany call.
func NewOpenAIService(apiKey, modelName string, dim int) (*OpenAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("embedding: API key is required for the OpenAI provider")
	}
	if modelName == "" {
		modelName = "text-embedding-ada-002"
	}
	if dim <= 0 {
		dim = OpenAIDim
	}
	return &OpenAIService{apiKey: apiKey, modelName: modelName, dim: dim}, nil
}

func (s *OpenAIService) load() error {
	s.once.Do(func() {
		llm, err := openai.New(
			openai.WithToken(s.apiKey),
			openai.WithModel(s.modelName),
		)
		if err != nil {
			s.loadErr = fmt.Errorf("embedding: failed to create OpenAI client: %w", err)
			return
		}
		embedder, err := embeddings.NewEmbedder(llm)
		if err != nil {
			s.loadErr = fmt.Errorf("embedding: failed to create embedder: %w", err)
			return
		}
		s.mu.Lock()
		s.embedder = embedder
		s.mu.Unlock()
	})
	return s.loadErr
}

// Config implements Service.
func (s *OpenAIService) Config(ctx context.Context) (models.EmbeddingConfig, error) {
	if err := s.load(); err != nil {
		return models.EmbeddingConfig{}, err
	}
	return DefaultEmbeddingConfig(s.modelName, s.dim), nil
}

// EmbedOne implements Service.
func (s *OpenAIService) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("embedding: text cannot be empty")
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	var vec []float32
	op := func() error {
		s.mu.RLock()
		embedder := s.embedder
		s.mu.RUnlock()

		result, err := embedder.EmbedQuery(ctx, text)
		if err != nil {
			return err
		}
		vec = result
		return nil
	}
	if err := withRetry(ctx, op); err != nil {
		return nil, fmt.Errorf("embedding: failed to embed text: %w", err)
	}
	normalizeL2(vec)
	return vec, nil
}

// EmbedMany implements Service using langchaingo's native batch call
// (EmbedDocuments), rather than the one-text-at-a-time EmbedQuery loop the
// embedding generator this is grounded on used.
func (s *OpenAIService) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: texts cannot be empty")
	}
	for i, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("embedding: text at index %d is empty", i)
		}
	}
	if err := s.load(); err != nil {
		return nil, err
	}

	var vecs [][]float32
	op := func() error {
		s.mu.RLock()
		embedder := s.embedder
		s.mu.RUnlock()

		result, err := embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return err
		}
		vecs = result
		return nil
	}
	if err := withRetry(ctx, op); err != nil {
		return nil, fmt.Errorf("embedding: failed to embed batch of %d texts: %w", len(texts), err)
	}
	for _, v := range vecs {
		normalizeL2(v)
	}
	return vecs, nil
}

// Cosine implements Service.
func (s *OpenAIService) Cosine(a, b []float32) (float64, error) {
	return Cosine(a, b)
}

// Unload implements Service. The OpenAI provider holds no local model
// state to free, but resets the lazy-load guard so a subsequent call
// creates a fresh client (picking up, for example, a rotated API key).
func (s *OpenAIService) Unload() {
	s.once = sync.Once{}
	s.loadErr = nil
	s.mu.Lock()
	s.embedder = nil
	s.mu.Unlock()
}

// withRetry retries a Transient-classified embedding call once with a
// short fixed backoff, mirroring the retry budget spec.md assigns to
// Transient errors.
func withRetry(ctx context.Context, op func() error) error {
	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(defaultRetryInterval), 1)
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}
