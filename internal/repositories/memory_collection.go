package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// memoryCollection is an in-memory keyed collection that enforces the same
// unique constraints as the database indexes. Records are stored by value so
// callers never share memory with the collection.
type memoryCollection[T any] struct {
	mu      sync.RWMutex
	name    string
	records map[string]T
	id      func(*T) *string
	// uniqueKeys returns the constraint keys a record occupies, e.g. "username:ann".
	uniqueKeys func(*T) []string
}

func newMemoryCollection[T any](name string, id func(*T) *string, uniqueKeys func(*T) []string) *memoryCollection[T] {
	return &memoryCollection[T]{
		name:       name,
		records:    make(map[string]T),
		id:         id,
		uniqueKeys: uniqueKeys,
	}
}

func (c *memoryCollection[T]) filter(match func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list := make([]T, 0, len(c.records))
	for _, r := range c.records {
		if match == nil || match(&r) {
			list = append(list, r)
		}
	}
	return list
}

func (c *memoryCollection[T]) find(match func(*T) bool, desc string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, r := range c.records {
		if match(&r) {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", c.name, desc, ErrNotFound)
}

func (c *memoryCollection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.records[id]
	if !ok {
		return nil, fmt.Errorf("%s with ID %s: %w", c.name, id, ErrNotFound)
	}
	return &r, nil
}

func (c *memoryCollection[T]) create(record *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.id(record)
	if *id == "" {
		*id = uuid.New().String()
	}
	if _, exists := c.records[*id]; exists {
		return fmt.Errorf("failed to create %s %s: %w", c.name, *id, ErrDuplicate)
	}
	if err := c.checkUnique(record, *id); err != nil {
		return err
	}
	c.records[*id] = *record
	return nil
}

func (c *memoryCollection[T]) update(record *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := *c.id(record)
	if _, ok := c.records[id]; !ok {
		return fmt.Errorf("%s with ID %s not found for update: %w", c.name, id, ErrNotFound)
	}
	if err := c.checkUnique(record, id); err != nil {
		return err
	}
	c.records[id] = *record
	return nil
}

func (c *memoryCollection[T]) delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.records[id]; !ok {
		return fmt.Errorf("%s with ID %s not found for deletion: %w", c.name, id, ErrNotFound)
	}
	delete(c.records, id)
	return nil
}

// checkUnique must be called with the write lock held.
func (c *memoryCollection[T]) checkUnique(record *T, id string) error {
	if c.uniqueKeys == nil {
		return nil
	}
	wanted := c.uniqueKeys(record)
	for otherID, other := range c.records {
		if otherID == id {
			continue
		}
		for _, taken := range c.uniqueKeys(&other) {
			for _, key := range wanted {
				if key == taken {
					return fmt.Errorf("%s %s already exists: %w", c.name, key, ErrDuplicate)
				}
			}
		}
	}
	return nil
}
