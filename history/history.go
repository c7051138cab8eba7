package history

import (
	"context"
	"sync"
	"time"

	"github.com/micronauticals/txnquery/schema"
)

// Interaction is one answered query, kept for conversational context.
type Interaction struct {
	QueryID        string      `json:"query_id"`
	Prompt         string      `json:"prompt"`
	Answer         string      `json:"answer"`
	Mode           schema.Mode `json:"mode"`
	MatchingCount  int         `json:"matching_transactions_count"`
	FiltersApplied []string    `json:"filters_applied,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// Store keeps per-user interaction history.
type Store interface {
	Save(ctx context.Context, userID string, interaction Interaction) error
	Recent(ctx context.Context, userID string, limit, offset int) ([]Interaction, error)
	Clear(ctx context.Context, userID string) error
}

// InMemoryStore holds history in process memory, capped per user with
// the oldest interactions dropped first. Suited to single-instance
// deployments.
type InMemoryStore struct {
	mu         sync.RWMutex
	byUser     map[string][]Interaction
	maxEntries int
}

// NewInMemoryStore creates a store keeping at most maxEntries
// interactions per user.
func NewInMemoryStore(maxEntries int) *InMemoryStore {
	if maxEntries <= 0 {
		maxEntries = 50
	}
	return &InMemoryStore{
		byUser:     make(map[string][]Interaction),
		maxEntries: maxEntries,
	}
}

// Save appends an interaction, stamping the time if unset.
func (s *InMemoryStore) Save(ctx context.Context, userID string, interaction Interaction) error {
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.byUser[userID], interaction)
	if len(entries) > s.maxEntries {
		entries = entries[len(entries)-s.maxEntries:]
	}
	s.byUser[userID] = entries
	return nil
}

// Recent returns interactions newest first, windowed by offset and
// limit. A window past the end is empty, not an error.
func (s *InMemoryStore) Recent(ctx context.Context, userID string, limit, offset int) ([]Interaction, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.byUser[userID]
	out := make([]Interaction, 0, limit)
	for i := len(entries) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// Clear drops all history for a user.
func (s *InMemoryStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}
