package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s]: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("found %d configuration error(s):\n", len(errs)))
	for i, err := range errs {
		b.WriteString(fmt.Sprintf("  %d. [%s] %s\n", i+1, err.Field, err.Message))
	}
	return b.String()
}

// Validate validates the complete configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors
	errs = append(errs, c.validateLLM()...)
	errs = append(errs, c.validateEmbedding()...)
	errs = append(errs, c.validateVectorDB()...)
	errs = append(errs, c.validateQuery()...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateLLM() ValidationErrors {
	var errs ValidationErrors
	if c.LLM.Provider != "" && c.LLM.Provider != "openai" {
		errs = append(errs, ValidationError{
			Field:   "llm.provider",
			Message: fmt.Sprintf("unsupported llm provider %q", c.LLM.Provider),
		})
	}
	if c.LLM.Provider != "" && c.LLM.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "llm.model",
			Message: "llm model is required when a provider is set",
		})
	}
	return errs
}

func (c *Config) validateEmbedding() ValidationErrors {
	var errs ValidationErrors
	if c.Embedding.Provider != "" && c.Embedding.Provider != "openai" {
		errs = append(errs, ValidationError{
			Field:   "embedding.provider",
			Message: fmt.Sprintf("unsupported embedding provider %q", c.Embedding.Provider),
		})
	}
	if c.Embedding.Provider != "" && c.Embedding.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "embedding.model",
			Message: "embedding model is required when a provider is set",
		})
	}
	return errs
}

func (c *Config) validateVectorDB() ValidationErrors {
	var errs ValidationErrors
	switch c.VectorDB.Provider {
	case "", "memory":
	case "milvus":
		if c.VectorDB.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "vectordb.host",
				Message: "milvus host is required",
			})
		}
		if c.Embedding.Dimensions <= 0 {
			errs = append(errs, ValidationError{
				Field:   "embedding.dimensions",
				Message: "embedding dimensions are required for the milvus provider",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "vectordb.provider",
			Message: fmt.Sprintf("unsupported vectordb provider %q", c.VectorDB.Provider),
		})
	}
	return errs
}

func (c *Config) validateQuery() ValidationErrors {
	var errs ValidationErrors
	if c.Query.DefaultPageSize > c.Query.MaxPageSize {
		errs = append(errs, ValidationError{
			Field:   "query.default_page_size",
			Message: "default page size exceeds max page size",
		})
	}
	if c.Cache.TTLMinutes < 0 {
		errs = append(errs, ValidationError{
			Field:   "cache.ttl_minutes",
			Message: "cache ttl must not be negative",
		})
	}
	return errs
}
