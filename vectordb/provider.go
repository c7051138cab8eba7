package vectordb

import (
	"context"
	"fmt"

	"github.com/micronauticals/txnquery/config"
)

// Document is one embedded item. Payload carries the serialized source
// record so search results round-trip without a second lookup.
type Document struct {
	ID      string
	Vector  []float32
	Payload string
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document
	Score float64
}

// VectorStoreProvider is the storage side of the similarity index.
type VectorStoreProvider interface {
	AddDocs(ctx context.Context, docs []Document) error
	SearchDocs(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	Reset(ctx context.Context) error
	Close() error
}

// NewVectorDBProvider creates a store from config. dim is the embedding
// width and is required by backends that declare a schema up front.
func NewVectorDBProvider(cfg *config.VectorDBConfig, dim int) (VectorStoreProvider, error) {
	switch cfg.Provider {
	case "memory":
		return NewMemoryStore(), nil
	case "milvus":
		return NewMilvusStore(cfg, dim)
	default:
		return nil, fmt.Errorf("unsupported vectordb provider: %s", cfg.Provider)
	}
}
