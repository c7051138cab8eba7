package llm

import (
	"context"
	"fmt"

	"github.com/micronauticals/txnquery/config"
)

// Provider generates text completions.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// NewLLMProvider creates a provider from config.
func NewLLMProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
