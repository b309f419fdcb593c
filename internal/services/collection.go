package services

import (
	"sync"

	"cmsadmin/internal/domain/models"
)

// Collection is the authoritative list of one screen. It is replaced by a
// successful load and mutated only by a successful mutation.
type Collection[T models.Entity] struct {
	mu   sync.RWMutex
	rows []T
}

func NewCollection[T models.Entity]() *Collection[T] {
	return &Collection[T]{rows: []T{}}
}

// Replace swaps in rows verbatim. The last successful load wins.
func (c *Collection[T]) Replace(rows []T) {
	cp := make([]T, len(rows))
	copy(cp, rows)
	c.mu.Lock()
	c.rows = cp
	c.mu.Unlock()
}

// Snapshot returns a copy safe to read without the lock.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.rows))
	copy(out, c.rows)
	return out
}

// ReplaceByID swaps the row whose id matches row's id. It reports whether a
// row was replaced.
func (c *Collection[T]) ReplaceByID(row T) bool {
	id := row.EntityID()
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].EntityID() == id {
			c.rows[i] = row
			return true
		}
	}
	return false
}

// RemoveByID drops exactly the row with id.
func (c *Collection[T]) RemoveByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.rows {
		if c.rows[i].EntityID() == id {
			c.rows = append(c.rows[:i:i], c.rows[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveIDs drops every row whose id is in ids and returns how many went.
func (c *Collection[T]) RemoveIDs(ids []string) int {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]T, 0, len(c.rows))
	for _, r := range c.rows {
		if _, ok := drop[r.EntityID()]; ok {
			continue
		}
		kept = append(kept, r)
	}
	n := len(c.rows) - len(kept)
	c.rows = kept
	return n
}

func (c *Collection[T]) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.rows))
	for _, r := range c.rows {
		out = append(out, r.EntityID())
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}
