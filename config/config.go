package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the transaction query engine.
type Config struct {
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	VectorDB  VectorDBConfig  `json:"vectordb" yaml:"vectordb"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Query     QueryConfig     `json:"query" yaml:"query"`
	LogLevel  string          `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// LLMConfig defines the text generator backend.
type LLMConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // Available options: openai (any OpenAI-compatible endpoint)
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// EmbeddingConfig defines the embedding backend used by the similarity index.
type EmbeddingConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// VectorDBConfig defines where similarity-index vectors live. The index is
// rebuilt on every ingest, so the memory provider is the default.
type VectorDBConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: memory, milvus
	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database   string `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
}

// CacheConfig controls the query result cache used for pagination.
type CacheConfig struct {
	TTLMinutes int `json:"ttl_minutes,omitempty" yaml:"ttl_minutes,omitempty"`
}

// QueryConfig holds the engine's sizing knobs.
type QueryConfig struct {
	DefaultPageSize   int `json:"default_page_size,omitempty" yaml:"default_page_size,omitempty"`
	MaxPageSize       int `json:"max_page_size,omitempty" yaml:"max_page_size,omitempty"`
	TopK              int `json:"top_k,omitempty" yaml:"top_k,omitempty"`                             // cap for similarity retrieval
	SampleLimit       int `json:"sample_limit,omitempty" yaml:"sample_limit,omitempty"`               // records embedded into narration prompts
	DigestSampleLimit int `json:"digest_sample_limit,omitempty" yaml:"digest_sample_limit,omitempty"` // records in the analytical digest sample
	PromptTokenBudget int `json:"prompt_token_budget,omitempty" yaml:"prompt_token_budget,omitempty"` // cap on generated prompt context, 0 disables
}

// Default returns a config with all defaults applied and no backends set.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.5
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 2048
	}
	if c.VectorDB.Provider == "" {
		c.VectorDB.Provider = "memory"
	}
	if c.VectorDB.Collection == "" {
		c.VectorDB.Collection = "transactions"
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 30
	}
	if c.Query.DefaultPageSize == 0 {
		c.Query.DefaultPageSize = 20
	}
	if c.Query.MaxPageSize == 0 {
		c.Query.MaxPageSize = 100
	}
	if c.Query.TopK == 0 {
		c.Query.TopK = 50
	}
	if c.Query.SampleLimit == 0 {
		c.Query.SampleLimit = 10
	}
	if c.Query.DigestSampleLimit == 0 {
		c.Query.DigestSampleLimit = 30
	}
}

// Load reads a YAML config file, applies defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
