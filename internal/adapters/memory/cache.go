package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/aceitera/internal/core/port"
)

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache stores JSON copies, so callers never share state with the cache.
type Cache[T any] struct {
	mu     sync.Mutex
	items  map[string]cacheItem
	prefix string
	now    func() time.Time
}

var _ port.CachePort[struct{}] = (*Cache[struct{}])(nil)

func NewCache[T any](prefix string) *Cache[T] {
	return &Cache[T]{
		items:  make(map[string]cacheItem),
		prefix: prefix,
		now:    time.Now,
	}
}

func (c *Cache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

func (c *Cache[T]) Get(_ context.Context, id string) (*T, error) {
	c.mu.Lock()
	item, ok := c.items[c.key(id)]
	if ok && item.expired(c.now()) {
		delete(c.items, c.key(id))
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal(item.data, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func (c *Cache[T]) Set(_ context.Context, id string, value *T, ttl time.Duration) error {
	item, err := c.newItem(value, ttl)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.key(id)] = item
	return nil
}

func (c *Cache[T]) SetNX(_ context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	item, err := c.newItem(value, ttl)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[c.key(id)]; ok && !existing.expired(c.now()) {
		return false, nil
	}
	c.items[c.key(id)] = item
	return true, nil
}

func (c *Cache[T]) Del(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, c.key(id))
	return nil
}

func (c *Cache[T]) newItem(value *T, ttl time.Duration) (cacheItem, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return cacheItem{}, err
	}
	item := cacheItem{data: data}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	return item, nil
}

// StartCleanup drops expired entries every interval until ctx is done, so
// keys that are never read again do not accumulate.
func (c *Cache[T]) StartCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

func (c *Cache[T]) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, item := range c.items {
		if item.expired(now) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

func (c *Cache[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
