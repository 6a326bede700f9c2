package services

import (
	"sync"
	"time"

	"github.com/gulfquotes/quoticon/internal/domain"
)

// TrendingCache holds the last ranked trending list and when it was computed.
// The list is swapped as a whole, so readers never see a partial update.
// The zero value is an empty cache that never expires; use NewTrendingCache.
type TrendingCache struct {
	mu         sync.RWMutex
	items      []domain.TrendingQuote
	computedAt time.Time
	filled     bool
	ttl        time.Duration
}

// NewTrendingCache returns an empty cache whose entries are fresh for ttl.
func NewTrendingCache(ttl time.Duration) *TrendingCache {
	return &TrendingCache{ttl: ttl}
}

// Get returns up to limit items when the cache holds a list that is still
// fresh at now. ok is false on a cold or expired cache.
func (c *TrendingCache) Get(now time.Time, limit int) (items []domain.TrendingQuote, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filled || (c.ttl > 0 && now.Sub(c.computedAt) >= c.ttl) {
		return nil, false
	}
	return head(c.items, limit), true
}

// Peek returns whatever list is cached, regardless of age, with its
// computation time. ok is false only on a cold cache.
func (c *TrendingCache) Peek(limit int) (items []domain.TrendingQuote, computedAt time.Time, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filled {
		return nil, time.Time{}, false
	}
	return head(c.items, limit), c.computedAt, true
}

// Set replaces the cached list. The cache keeps its own copy.
func (c *TrendingCache) Set(items []domain.TrendingQuote, computedAt time.Time) {
	cp := make([]domain.TrendingQuote, len(items))
	copy(cp, items)
	c.mu.Lock()
	c.items = cp
	c.computedAt = computedAt
	c.filled = true
	c.mu.Unlock()
}

// Invalidate empties the cache.
func (c *TrendingCache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.computedAt = time.Time{}
	c.filled = false
	c.mu.Unlock()
}

// head copies the first limit items; limit <= 0 copies everything.
func head(items []domain.TrendingQuote, limit int) []domain.TrendingQuote {
	n := len(items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.TrendingQuote, n)
	copy(out, items[:n])
	return out
}
