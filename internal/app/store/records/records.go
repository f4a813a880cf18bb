// Package records provides generic collection CRUD over the key-value
// store. One storage key holds one collection; every operation reads the
// whole collection and writes it back whole. Collections are small and
// single-process, so this is a documented scalability limit rather than a
// problem in practice.
//
// Create does not check id uniqueness; services pre-check before calling.
package records

import (
	"encoding/json"
	"fmt"

	"github.com/slatetrack/slatetrack/internal/app/storage"
)

// Record is anything with a stable string id.
type Record interface {
	RecordID() string
}

// Collection is a typed view of one stored collection.
type Collection[T Record] struct {
	kv  storage.KV
	key string
}

// NewCollection binds a collection type to its storage key.
func NewCollection[T Record](kv storage.KV, key string) *Collection[T] {
	return &Collection[T]{kv: kv, key: key}
}

// List returns every stored record, or an empty slice when none exist.
func (c *Collection[T]) List() []T {
	var items []T
	if !c.kv.Get(c.key, &items) || items == nil {
		return []T{}
	}
	return items
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, item := range c.List() {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create appends rec to the collection.
func (c *Collection[T]) Create(rec T) (T, error) {
	items := append(c.List(), rec)
	if err := c.kv.Set(c.key, items); err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

// Update shallow-merges patch onto the stored record with the given id.
// Patch keys use the record's JSON field names. Reports false when no
// record matches.
func (c *Collection[T]) Update(id string, patch map[string]any) (T, bool, error) {
	var zero T
	items := c.List()
	for i, item := range items {
		if item.RecordID() != id {
			continue
		}
		merged, err := mergeRecord(item, patch)
		if err != nil {
			return zero, true, err
		}
		items[i] = merged
		if err := c.kv.Set(c.key, items); err != nil {
			return zero, true, err
		}
		return merged, true, nil
	}
	return zero, false, nil
}

// Replace writes rec over the stored record with the given id. Reports
// false when no record matches.
func (c *Collection[T]) Replace(id string, rec T) (T, bool, error) {
	var zero T
	items := c.List()
	for i, item := range items {
		if item.RecordID() != id {
			continue
		}
		items[i] = rec
		if err := c.kv.Set(c.key, items); err != nil {
			return zero, true, err
		}
		return rec, true, nil
	}
	return zero, false, nil
}

// Rename replaces the record stored under oldID with rec (which carries
// the new id) in a single collection rewrite, so an identity change can
// never leave zero or two copies behind.
func (c *Collection[T]) Rename(oldID string, rec T) (T, bool, error) {
	return c.Replace(oldID, rec)
}

// Remove deletes the record with the given id, reporting whether one
// existed.
func (c *Collection[T]) Remove(id string) (bool, error) {
	items := c.List()
	next := make([]T, 0, len(items))
	found := false
	for _, item := range items {
		if item.RecordID() == id {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		return false, nil
	}
	if err := c.kv.Set(c.key, next); err != nil {
		return false, err
	}
	return true, nil
}

// mergeRecord applies a shallow JSON merge of patch onto rec.
func mergeRecord[T any](rec T, patch map[string]any) (T, error) {
	var zero T

	base, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("marshal record: %w", err)
	}
	var asMap map[string]any
	if err := json.Unmarshal(base, &asMap); err != nil {
		return zero, fmt.Errorf("decode record: %w", err)
	}
	for k, v := range patch {
		asMap[k] = v
	}
	merged, err := json.Marshal(asMap)
	if err != nil {
		return zero, fmt.Errorf("marshal merged record: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, fmt.Errorf("decode merged record: %w", err)
	}
	return out, nil
}
