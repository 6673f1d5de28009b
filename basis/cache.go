// SPDX-License-Identifier: MIT

package basis

import "github.com/katalvlaran/equivar/matrix"

// Cache maps canonical representation keys to canonical-order bases.
// It is not safe for concurrent writers; SyncEngine serializes access.
type Cache struct {
	entries map[string]*matrix.Dense
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*matrix.Dense)}
}

// Get returns the stored basis for key. The matrix is shared; do not mutate.
func (c *Cache) Get(key string) (*matrix.Dense, bool) {
	q, ok := c.entries[key]

	return q, ok
}

// Put stores q under key, replacing any previous entry.
func (c *Cache) Put(key string, q *matrix.Dense) { c.entries[key] = q }

// Len is the number of cached bases.
func (c *Cache) Len() int { return len(c.entries) }
