/*
Copyright The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cache

import (
	"sync"
	"time"
)

// entry is a cached value with its expiration
type entry[V any] struct {
	value      V
	expiration time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return now.After(e.expiration)
}

// Cache is a TTL cache safe for concurrent use. Expired entries are dropped
// on access and by a background sweep every half TTL until Stop is called.
type Cache[K comparable, V any] struct {
	mu       sync.RWMutex
	items    map[K]*entry[V]
	ttl      time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl
func New[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items:    make(map[K]*entry[V]),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get returns the value stored under key if it has not expired
func (c *Cache[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.RLock()
	e, exists := c.items[key]
	if !exists {
		c.mu.RUnlock()
		return zero, false
	}
	now := time.Now()
	if !e.expired(now) {
		defer c.mu.RUnlock()
		return e.value, true
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// the entry may have been refreshed between the two locks
	if e, exists = c.items[key]; exists && e.expired(now) {
		delete(c.items, key)
	}
	return zero, false
}

// Set stores value under key with the default TTL
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key with a custom TTL
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &entry[V]{value: value, expiration: time.Now().Add(ttl)}
}

// Delete removes key from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteFunc removes every key for which match returns true and reports how many were removed
func (c *Cache[K, V]) DeleteFunc(match func(K) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key := range c.items {
		if match(key) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of stored entries, including expired ones not yet swept
func (c *Cache[K, V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all entries
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*entry[V])
}

// Stop stops the background sweep. It is safe to call more than once.
func (c *Cache[K, V]) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

func (c *Cache[K, V]) cleanup() {
	interval := c.ttl / 2
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Cache[K, V]) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}

// GetOrSet returns the cached value for key or stores the result of fetch.
// Errors are returned without caching anything.
func (c *Cache[K, V]) GetOrSet(key K, fetch func() (V, error)) (V, bool, error) {
	if value, ok := c.Get(key); ok {
		return value, true, nil
	}
	value, err := fetch()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Set(key, value)
	return value, false, nil
}
