package vectordb

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process vector store using exact cosine
// similarity. It is the default backend; datasets here are small enough
// that a linear scan beats the operational cost of an external index.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddDocs appends documents to the index.
func (s *MemoryStore) AddDocs(ctx context.Context, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	return nil
}

// SearchDocs scans all documents and returns the topK by cosine
// similarity, best first.
func (s *MemoryStore) SearchDocs(ctx context.Context, vector []float32, topK int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]SearchResult, 0, len(s.docs))
	for _, doc := range s.docs {
		results = append(results, SearchResult{
			Document: doc,
			Score:    cosine(vector, doc.Vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Reset drops all documents.
func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
