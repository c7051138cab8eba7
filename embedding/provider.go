package embedding

import (
	"context"
	"fmt"

	"github.com/micronauticals/txnquery/config"
)

// Provider turns text into a dense vector.
type Provider interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// NewEmbeddingProvider creates a provider from config.
func NewEmbeddingProvider(cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
