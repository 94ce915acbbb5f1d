// Package ident caches user-id and group-id to name mappings backed by the
// system identity databases. One scan of a busy process table asks for the
// same handful of ids hundreds of times; the cache makes each distinct id
// cost at most one database query for the lifetime of the Cache.
//
// Entries are append-only and never invalidated: identity databases change
// rarely relative to scan frequency, and a stale name is harmless for
// display purposes. Negative results are cached too, so ids with no name
// (container-namespaced uids, deleted accounts) do not trigger a database
// query per scan.
package ident

import (
	"os/user"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DB names which identity database an id belongs to.
type DB uint8

const (
	User DB = iota
	Group
)

type key struct {
	db DB
	id uint32
}

// Cache is a concurrency-safe id-to-name cache with duplicate-suppressed
// fill: concurrent misses on the same key issue exactly one database query
// and all callers observe its result. The zero value is not usable; call
// NewCache.
type Cache struct {
	mu    sync.RWMutex
	names map[key]string // "" records a negative result
	fill  singleflight.Group

	// Injectable for tests; default to the os/user lookups.
	lookupUser  func(id string) (string, error)
	lookupGroup func(id string) (string, error)
}

func NewCache() *Cache {
	return &Cache{
		names: make(map[key]string),
		lookupUser: func(id string) (string, error) {
			u, err := user.LookupId(id)
			if err != nil {
				return "", err
			}
			return u.Username, nil
		},
		lookupGroup: func(id string) (string, error) {
			g, err := user.LookupGroupId(id)
			if err != nil {
				return "", err
			}
			return g.Name, nil
		},
	}
}

// NewCacheWithLookups builds a Cache over custom lookup functions instead
// of the system databases. Tests use it to count or fake queries.
func NewCacheWithLookups(userFn, groupFn func(id string) (string, error)) *Cache {
	c := NewCache()
	c.lookupUser = userFn
	c.lookupGroup = groupFn
	return c
}

// Resolve returns the name for (db, id), or ok=false when the identity
// database has no entry for it. Safe for concurrent use.
func (c *Cache) Resolve(db DB, id uint32) (name string, ok bool) {
	k := key{db, id}

	c.mu.RLock()
	name, hit := c.names[k]
	c.mu.RUnlock()
	if hit {
		return name, name != ""
	}

	sfKey := strconv.FormatUint(uint64(id), 10)
	if db == Group {
		sfKey = "g" + sfKey
	}
	v, _, _ := c.fill.Do(sfKey, func() (any, error) {
		return c.fillMiss(db, k), nil
	})
	name = v.(string)
	return name, name != ""
}

// fillMiss resolves and caches one missing key. It re-checks the cache
// first: a caller that missed the fast path while an earlier flight for
// the same key was completing lands here after that flight's result is
// already cached, and must not query the database again.
func (c *Cache) fillMiss(db DB, k key) string {
	c.mu.RLock()
	n, hit := c.names[k]
	c.mu.RUnlock()
	if hit {
		return n
	}

	lookup := c.lookupUser
	if db == Group {
		lookup = c.lookupGroup
	}
	n, err := lookup(strconv.FormatUint(uint64(k.id), 10))
	if err != nil {
		n = "" // negative entry
	}
	c.mu.Lock()
	c.names[k] = n
	c.mu.Unlock()
	return n
}

// Len reports the number of cached entries, negatives included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.names)
}
