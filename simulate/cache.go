// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"github.com/katalvlaran/pkpd/model"
	"github.com/katalvlaran/pkpd/odesys"
)

// Cache keeps recently compiled systems. Entries are keyed by model ID and
// revision, so any committed change to a model misses the cache.
// Safe for concurrent use.
type Cache struct {
	lru *lru.Cache
}

type cacheKey struct {
	id  uuid.UUID
	rev uint64
}

// NewCache returns a cache holding at most size systems.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("simulate: NewCache(%d): %w", size, err)
	}
	return &Cache{lru: c}, nil
}

// Len returns the number of cached systems.
func (c *Cache) Len() int { return c.lru.Len() }

func (c *Cache) compile(m *model.Model) (*odesys.System, bool, error) {
	key := cacheKey{id: m.ID(), rev: m.Revision()}
	if v, ok := c.lru.Get(key); ok {
		return v.(*odesys.System), true, nil
	}
	sys, err := odesys.Compile(m)
	if err != nil {
		return nil, false, err
	}
	c.lru.Add(key, sys)
	return sys, false, nil
}
