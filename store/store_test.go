package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micronauticals/txnquery/schema"
)

func TestEmptyStore(t *testing.T) {
	s := New()
	assert.False(t, s.HasData())
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Snapshot())
	assert.True(t, s.LastUpdated().IsZero())
}

func TestSetAndSnapshot(t *testing.T) {
	s := New()
	s.Set([]schema.Record{{ID: "t-1"}, {ID: "t-2"}})

	assert.True(t, s.HasData())
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.LastUpdated().IsZero())

	snap := s.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, "t-1", snap[0].ID)
}

func TestSetReplaces(t *testing.T) {
	s := New()
	s.Set([]schema.Record{{ID: "t-1"}, {ID: "t-2"}, {ID: "t-3"}})
	s.Set([]schema.Record{{ID: "t-9"}})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "t-9", s.Snapshot()[0].ID)
}

func TestClear(t *testing.T) {
	s := New()
	s.Set([]schema.Record{{ID: "t-1"}})
	s.Clear()

	assert.False(t, s.HasData())
	assert.Zero(t, s.Len())
	assert.True(t, s.LastUpdated().IsZero())
}
