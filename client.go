package txnquery

import (
	"context"
	"fmt"
	"time"

	"github.com/micronauticals/txnquery/cache"
	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/config"
	"github.com/micronauticals/txnquery/embedding"
	"github.com/micronauticals/txnquery/engine"
	"github.com/micronauticals/txnquery/history"
	"github.com/micronauticals/txnquery/llm"
	"github.com/micronauticals/txnquery/retriever"
	"github.com/micronauticals/txnquery/schema"
	"github.com/micronauticals/txnquery/store"
	"github.com/micronauticals/txnquery/vectordb"
)

// Client wires configuration into a ready query engine. It owns the
// provider lifecycles; the engine only consumes them.
type Client struct {
	config           *config.Config
	vectordbProvider vectordb.VectorStoreProvider
	llmProvider      llm.Provider
	history          history.Store
	engine           *engine.Engine
}

// NewClient builds all configured providers and the engine. Embedding
// and LLM providers are optional; modes that need a missing one fail
// per request instead of at startup.
func NewClient(cfg *config.Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.SetLevel(cfg.LogLevel)

	client := &Client{config: cfg}

	if cfg.LLM.Provider != "" {
		provider, err := llm.NewLLMProvider(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("create llm provider failed, err: %w", err)
		}
		client.llmProvider = provider
	}

	var index *retriever.Index
	if cfg.Embedding.Provider != "" {
		embeddingProvider, err := embedding.NewEmbeddingProvider(cfg.Embedding)
		if err != nil {
			return nil, fmt.Errorf("create embedding provider failed, err: %w", err)
		}
		vectordbProvider, err := vectordb.NewVectorDBProvider(&cfg.VectorDB, embeddingProvider.Dimensions())
		if err != nil {
			return nil, fmt.Errorf("create vector store provider failed, err: %w", err)
		}
		client.vectordbProvider = vectordbProvider
		index = &retriever.Index{
			Embed: embeddingProvider,
			Store: vectordbProvider,
			TopK:  cfg.Query.TopK,
		}
	}

	queryCache := cache.NewQueryCache(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	client.history = history.NewInMemoryStore(0)
	client.engine = engine.New(store.New(), queryCache, index, client.llmProvider, cfg.Query).
		WithHistory(client.history)
	return client, nil
}

// Query answers a question over the ingested dataset.
func (c *Client) Query(ctx context.Context, req schema.Request) (*schema.Response, error) {
	return c.engine.Query(ctx, req)
}

// Ingest replaces the dataset with raw transaction JSON.
func (c *Client) Ingest(ctx context.Context, raw []byte) (int, error) {
	return c.engine.Ingest(ctx, raw)
}

// Clear drops the dataset and all cached answers.
func (c *Client) Clear(ctx context.Context) error {
	return c.engine.Clear(ctx)
}

// Status reports dataset and cache state.
func (c *Client) Status() engine.Status {
	return c.engine.Status()
}

// History returns the per-user interaction history store.
func (c *Client) History() history.Store {
	return c.history
}

// Close releases provider connections.
func (c *Client) Close() error {
	if c.vectordbProvider != nil {
		return c.vectordbProvider.Close()
	}
	return nil
}
