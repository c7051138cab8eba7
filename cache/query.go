package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/micronauticals/txnquery/common/logger"
	"github.com/micronauticals/txnquery/schema"
)

// Entry is a fully materialized query result. Records holds the complete
// filtered set so later pages reslice without recomputation; analytical
// answers store a nil record list.
type Entry struct {
	Answer       string
	Mode         schema.Mode
	Records      []schema.Record
	Descriptions []string
	Statistics   *schema.Statistics
	InsertedAt   time.Time
}

// QueryCache is a TTL cache of materialized query results keyed by
// content-addressed query identity. Expired entries are swept lazily on
// Get; there is no background goroutine.
type QueryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*Entry

	now func() time.Time
}

// NewQueryCache creates a cache with the given entry lifetime.
func NewQueryCache(ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &QueryCache{
		ttl:     ttl,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Key derives the deterministic query identity from the prompt and its
// extracted filter set. Leading and trailing prompt whitespace is
// insignificant; casing is not, since name extraction depends on it.
func Key(prompt string, f schema.FilterSet) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(prompt))
	b.WriteString("|account=")
	b.WriteString(f.AccountID)
	b.WriteString("|above=")
	writeFloatPtr(&b, f.AmountAbove)
	b.WriteString("|below=")
	writeFloatPtr(&b, f.AmountBelow)
	b.WriteString("|range=")
	if f.AmountRange != nil {
		b.WriteString(formatFloat(f.AmountRange.Min))
		b.WriteString(",")
		b.WriteString(formatFloat(f.AmountRange.Max))
	}
	b.WriteString("|date=")
	if f.Date != nil {
		b.WriteString(strconv.Itoa(f.Date.Year))
		b.WriteString("-")
		b.WriteString(strconv.Itoa(f.Date.Month))
	}
	b.WriteString("|mode=")
	b.WriteString(f.Mode)
	b.WriteString("|person=")
	b.WriteString(f.PersonName)
	b.WriteString("|strict=")
	b.WriteString(strconv.FormatBool(f.StrictName))
	b.WriteString("|type=")
	b.WriteString(f.Type)

	sum := sha1.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Get returns the live entry for key, if any. Any entry past its
// lifetime is evicted, and the whole map is swept for other expired
// entries on the way.
func (c *QueryCache) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.InsertedAt) > c.ttl {
			delete(c.entries, k)
		}
	}

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e, true
}

// Put stores a result under key, stamping the insertion time.
// An existing entry is overwritten and its lifetime restarts.
func (c *QueryCache) Put(key string, e *Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.InsertedAt = c.now()
	c.entries[key] = e
	logger.Debugf("cache: stored query %s (mode=%s, records=%d)", key, e.Mode, len(e.Records))
}

// Clear drops all entries.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
}

// Len reports the number of entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func writeFloatPtr(b *strings.Builder, v *float64) {
	if v != nil {
		b.WriteString(formatFloat(*v))
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
