package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, 0.5, cfg.LLM.Temperature)
	assert.Equal(t, 2048, cfg.LLM.MaxTokens)
	assert.Equal(t, "memory", cfg.VectorDB.Provider)
	assert.Equal(t, "transactions", cfg.VectorDB.Collection)
	assert.Equal(t, 30, cfg.Cache.TTLMinutes)
	assert.Equal(t, 20, cfg.Query.DefaultPageSize)
	assert.Equal(t, 100, cfg.Query.MaxPageSize)
	assert.Equal(t, 50, cfg.Query.TopK)

	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
llm:
  provider: openai
  api_key: test-key
  model: gpt-4o-mini
cache:
  ttl_minutes: 5
query:
  default_page_size: 10
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.Cache.TTLMinutes)
	assert.Equal(t, 10, cfg.Query.DefaultPageSize)
	assert.Equal(t, 100, cfg.Query.MaxPageSize, "unset fields take defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadProviders(t *testing.T) {
	cfg := Default()
	cfg.LLM.Provider = "mystery"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.provider")

	cfg = Default()
	cfg.VectorDB.Provider = "milvus"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vectordb.host", "milvus requires an address")
}

func TestValidatePageSizes(t *testing.T) {
	cfg := Default()
	cfg.Query.DefaultPageSize = 500
	cfg.Query.MaxPageSize = 100
	assert.Error(t, cfg.Validate())
}
