package knowledge

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/nerdalert/nerdalert-go/internal/config"
)

// EmbeddingVectorizer is the real-embedding alternative to the
// word-length encoder, backed by langchaingo.
type EmbeddingVectorizer struct {
	embedder  embeddings.Embedder
	modelName string
}

// NewEmbeddingVectorizer creates a Vectorizer for the configured
// embedding provider.
func NewEmbeddingVectorizer(cfg config.Config) (*EmbeddingVectorizer, error) {
	var embedder embeddings.Embedder
	var err error

	switch cfg.EmbedProvider {
	case config.ProviderOllama:
		llm, ollamaErr := ollama.New(
			ollama.WithModel(cfg.EmbedModel),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if ollamaErr != nil {
			return nil, fmt.Errorf("create ollama client: %w", ollamaErr)
		}
		embedder, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create ollama embedder: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		llm, openaiErr := openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithEmbeddingModel(cfg.EmbedModel),
		)
		if openaiErr != nil {
			return nil, fmt.Errorf("create openai client: %w", openaiErr)
		}
		embedder, err = embeddings.NewEmbedder(llm)
		if err != nil {
			return nil, fmt.Errorf("create openai embedder: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", cfg.EmbedProvider)
	}

	return &EmbeddingVectorizer{embedder: embedder, modelName: cfg.EmbedModel}, nil
}

// Vectorize generates an embedding for text.
func (v *EmbeddingVectorizer) Vectorize(ctx context.Context, text string) ([]float64, error) {
	vectors, err := v.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	out := make([]float64, len(vectors[0]))
	for i, f := range vectors[0] {
		out[i] = float64(f)
	}
	return out, nil
}

// Model returns the embedding model name.
func (v *EmbeddingVectorizer) Model() string { return v.modelName }

// NewVectorizer picks the configured Vectorizer implementation,
// defaulting to the crude word-length encoder.
func NewVectorizer(cfg config.Config) (Vectorizer, error) {
	if cfg.EmbedProvider == config.ProviderNone {
		return WordLengthVectorizer{}, nil
	}
	return NewEmbeddingVectorizer(cfg)
}
