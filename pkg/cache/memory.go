// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryCache is a thread-safe in-memory LRU cache with per-entry TTL.
type MemoryCache struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	lru     *list.List
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
// The least recently used entry is evicted when the cache is full.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &MemoryCache{
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		maxSize: maxSize,
	}
}

// Get retrieves a value from cache. Expired entries are removed on access.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}

	entry := elem.Value.(*Entry)
	if entry.Expired(time.Now()) {
		m.lru.Remove(elem)
		delete(m.items, key)
		return nil, ErrCacheMiss
	}

	m.lru.MoveToFront(elem)
	return entry.Value, nil
}

// Set stores a value in cache. A zero ttl means the entry never expires.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	entry := &Entry{Key: key, Value: value, ExpiresAt: expiresAt}

	if elem, exists := m.items[key]; exists {
		elem.Value = entry
		m.lru.MoveToFront(elem)
		return nil
	}

	m.items[key] = m.lru.PushFront(entry)

	if m.lru.Len() > m.maxSize {
		oldest := m.lru.Back()
		if oldest != nil {
			m.lru.Remove(oldest)
			delete(m.items, oldest.Value.(*Entry).Key)
		}
	}
	return nil
}

// Delete removes a value from cache.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.lru.Remove(elem)
		delete(m.items, key)
	}
	return nil
}

// Clear removes all entries from cache.
func (m *MemoryCache) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.lru.Init()
	return nil
}

// Len returns the number of live entries.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Len()
}
