package sema

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"tern/internal/types"
)

// AccessorCache memoises accessor tables per custom type. Tables are pure
// data derived from immutable variant lists, so entries are write-once:
// a table is computed off to the side and then published under the lock,
// never mutated in place. Concurrent checkers asking for the same type share
// a single build through the singleflight group.
type AccessorCache struct {
	mu     sync.RWMutex
	tables map[types.TypeID]*types.AccessorTable
	group  singleflight.Group
}

func NewAccessorCache() *AccessorCache {
	return &AccessorCache{
		tables: make(map[types.TypeID]*types.AccessorTable),
	}
}

// Get returns the accessor table for the custom type, building it on first
// request.
func (c *AccessorCache) Get(in *types.Interner, id types.TypeID) *types.AccessorTable {
	c.mu.RLock()
	table, ok := c.tables[id]
	c.mu.RUnlock()
	if ok {
		return table
	}

	built, _, _ := c.group.Do(strconv.FormatUint(uint64(id), 10), func() (any, error) {
		table := in.BuildAccessorTable(id)
		c.mu.Lock()
		c.tables[id] = table
		c.mu.Unlock()
		return table, nil
	})
	return built.(*types.AccessorTable)
}

// Len reports how many tables have been built so far.
func (c *AccessorCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
