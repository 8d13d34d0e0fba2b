// Package cache provides a TTL get/set/expire wrapper over a
// string-keyed Store. All store errors are caught, logged, and
// converted to absent/no-op results; the cache never propagates a
// storage failure to callers.
package cache

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// entry is the serialized form of one cached value.
type entry struct {
	Value     json.RawMessage `json:"value"`
	StoredAt  int64           `json:"storedAt"` // unix millis
	TTLMillis int64           `json:"ttlMillis"`
}

// Stats summarizes the cache's footprint under its key prefix.
type Stats struct {
	TotalItems     int
	ExpiredItems   int
	TotalSizeBytes int64
}

// Cache wraps a Store with TTL bookkeeping. Entries live under a
// reserved key prefix; keys without the prefix are never touched.
type Cache struct {
	store  Store
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a cache over the given store. Every key it writes is
// namespaced with prefix.
func New(store Store, prefix string, logger *zap.Logger) *Cache {
	return &Cache{store: store, prefix: prefix, logger: logger, now: time.Now}
}

func (c *Cache) key(k string) string { return c.prefix + k }

// Get loads a live entry into out, which must be a pointer (or nil
// to only probe for presence). Returns false for a missing,
// malformed, or expired entry; a discovered-expired entry is removed.
func (c *Cache) Get(key string, out any) bool {
	raw, ok, err := c.store.Get(c.key(key))
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		c.logger.Warn("cache entry malformed, dropping", zap.String("key", key), zap.Error(err))
		c.Remove(key)
		return false
	}
	if c.expired(e) {
		c.Remove(key)
		return false
	}
	if out != nil {
		if err := json.Unmarshal(e.Value, out); err != nil {
			c.logger.Warn("cache value decode failed", zap.String("key", key), zap.Error(err))
			return false
		}
	}
	return true
}

// Set serializes value with the given TTL. Best-effort: on a quota
// rejection the cache wipes its own entries and retries once; any
// remaining failure is logged and swallowed.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache value encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	data, err := json.Marshal(entry{
		Value:     raw,
		StoredAt:  c.now().UnixMilli(),
		TTLMillis: ttl.Milliseconds(),
	})
	if err != nil {
		c.logger.Warn("cache entry encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(c.key(key), string(data)); err == ErrQuotaExceeded {
		c.logger.Warn("store quota exceeded, wiping cache and retrying", zap.String("key", key))
		c.Clear()
		if err := c.store.Set(c.key(key), string(data)); err != nil {
			c.logger.Warn("cache write failed after wipe", zap.String("key", key), zap.Error(err))
		}
	} else if err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// IsExpired mirrors Get's expiry arithmetic without side effects.
// An absent or malformed key counts as expired.
func (c *Cache) IsExpired(key string) bool {
	raw, ok, err := c.store.Get(c.key(key))
	if err != nil {
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return true
	}
	if !ok {
		return true
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return true
	}
	return c.expired(e)
}

// Remove deletes a single entry.
func (c *Cache) Remove(key string) {
	if err := c.store.Delete(c.key(key)); err != nil {
		c.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear wipes every entry carrying the reserved prefix. Unrelated
// keys in the same store are left alone.
func (c *Cache) Clear() {
	keys, err := c.store.Keys(c.prefix)
	if err != nil {
		c.logger.Warn("cache clear failed", zap.Error(err))
		return
	}
	for _, k := range keys {
		if err := c.store.Delete(k); err != nil {
			c.logger.Warn("cache clear delete failed", zap.String("key", k), zap.Error(err))
		}
	}
}

// Cleanup eagerly removes every expired or malformed entry under the
// prefix. It reports how many entries were removed.
func (c *Cache) Cleanup() int {
	keys, err := c.store.Keys(c.prefix)
	if err != nil {
		c.logger.Warn("cache cleanup failed", zap.Error(err))
		return 0
	}
	removed := 0
	for _, k := range keys {
		raw, ok, err := c.store.Get(k)
		if err != nil || !ok {
			continue
		}
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil || c.expired(e) {
			if err := c.store.Delete(k); err != nil {
				c.logger.Warn("cache cleanup delete failed", zap.String("key", k), zap.Error(err))
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		c.logger.Info("cache cleanup done", zap.Int("removed", removed))
	}
	return removed
}

// GetStats scans every prefixed key and reports totals.
func (c *Cache) GetStats() Stats {
	var stats Stats
	keys, err := c.store.Keys(c.prefix)
	if err != nil {
		c.logger.Warn("cache stats failed", zap.Error(err))
		return stats
	}
	for _, k := range keys {
		raw, ok, err := c.store.Get(k)
		if err != nil || !ok {
			continue
		}
		stats.TotalItems++
		stats.TotalSizeBytes += int64(len(k) + len(raw))
		var e entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil || c.expired(e) {
			stats.ExpiredItems++
		}
	}
	return stats
}

func (c *Cache) expired(e entry) bool {
	return c.now().UnixMilli()-e.StoredAt > e.TTLMillis
}
