package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micronauticals/txnquery/schema"
)

func TestKeyDeterministic(t *testing.T) {
	above := 5000.0
	f := schema.FilterSet{
		AmountAbove: &above,
		Date:        &schema.DateFilter{Month: 3, Year: 2024},
		Mode:        "UPI",
	}

	k1 := Key("show me all transactions above 5000 in March 2024 by UPI", f)
	k2 := Key("show me all transactions above 5000 in March 2024 by UPI", f)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 40, "sha1 hex digest")
}

func TestKeyTrimsWhitespace(t *testing.T) {
	f := schema.FilterSet{Mode: "UPI"}
	assert.Equal(t, Key("upi payments", f), Key("  upi payments  \n", f),
		"surrounding whitespace does not change query identity")
}

func TestKeyCaseSensitive(t *testing.T) {
	var f schema.FilterSet
	assert.NotEqual(t, Key("payments to Rahul", f), Key("payments to rahul", f),
		"casing is significant for name extraction")
}

func TestKeyDistinguishesFilters(t *testing.T) {
	above := 5000.0
	below := 5000.0
	k1 := Key("q", schema.FilterSet{AmountAbove: &above})
	k2 := Key("q", schema.FilterSet{AmountBelow: &below})
	k3 := Key("q", schema.FilterSet{})
	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.NotEqual(t, k2, k3)
}

func TestCachePutGet(t *testing.T) {
	c := NewQueryCache(time.Minute)
	c.Put("k", &Entry{Answer: "hello", Mode: schema.ModeSmartFull})

	e, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "hello", e.Answer)
	assert.False(t, e.InsertedAt.IsZero(), "Put stamps insertion time")

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := NewQueryCache(10 * time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("k", &Entry{Answer: "a"})

	c.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, ok := c.Get("k")
	assert.True(t, ok, "entry at exactly its lifetime is still live")

	c.now = func() time.Time { return base.Add(10*time.Minute + time.Nanosecond) }
	_, ok = c.Get("k")
	assert.False(t, ok, "first access past the lifetime evicts")
	assert.Zero(t, c.Len())
}

func TestCacheSweepsAllExpired(t *testing.T) {
	c := NewQueryCache(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("old-1", &Entry{})
	c.Put("old-2", &Entry{})

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	c.Put("fresh", &Entry{})

	c.now = func() time.Time { return base.Add(70 * time.Second) }
	_, ok := c.Get("fresh")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len(), "expired entries are swept even when another key is requested")
}

func TestCacheOverwriteRestartsLifetime(t *testing.T) {
	c := NewQueryCache(time.Minute)
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("k", &Entry{Answer: "v1"})

	c.now = func() time.Time { return base.Add(50 * time.Second) }
	c.Put("k", &Entry{Answer: "v2"})

	c.now = func() time.Time { return base.Add(100 * time.Second) }
	e, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v2", e.Answer)
}

func TestCacheClear(t *testing.T) {
	c := NewQueryCache(time.Minute)
	c.Put("k", &Entry{})
	c.Clear()
	_, ok := c.Get("k")
	assert.False(t, ok)
}
