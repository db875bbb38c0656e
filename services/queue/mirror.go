package queue

import (
	"context"
	"errors"
	"slices"
	"sync"

	"sheetr/models"
)

var ErrIndexOutOfRange = errors.New("queue index out of range")

// ReorderFunc persists a full new queue order.
type ReorderFunc func(ctx context.Context, items []models.QueueItem) error

// RemoveFunc persists removal of a single queued item.
type RemoveFunc func(ctx context.Context, refID string) error

// Mirror holds the client-side view of the queue. Mutations apply
// optimistically so the new order is visible immediately, then persist; if
// persistence fails the pre-mutation snapshot is restored and the error is
// returned for the caller to surface.
type Mirror struct {
	mu      sync.Mutex
	items   []models.QueueItem
	reorder ReorderFunc
	remove  RemoveFunc
}

// NewMirror creates a mirror seeded with the authoritative server order.
func NewMirror(items []models.QueueItem, reorder ReorderFunc, remove RemoveFunc) *Mirror {
	return &Mirror{items: slices.Clone(items), reorder: reorder, remove: remove}
}

// Items returns a copy of the current local order.
func (m *Mirror) Items() []models.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}

// Reset replaces the local order with a fresh authoritative fetch.
func (m *Mirror) Reset(items []models.QueueItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = slices.Clone(items)
}

// Move splices the item at from into position to and persists the entire new
// order. On persistence failure the local list reverts to its pre-move state.
func (m *Mirror) Move(ctx context.Context, from, to int) ([]models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 0 || from >= len(m.items) || to < 0 || to >= len(m.items) {
		return nil, ErrIndexOutOfRange
	}

	snapshot := slices.Clone(m.items)

	item := m.items[from]
	m.items = slices.Delete(m.items, from, from+1)
	m.items = slices.Insert(m.items, to, item)

	if err := m.reorder(ctx, slices.Clone(m.items)); err != nil {
		m.items = snapshot
		return nil, err
	}
	return slices.Clone(m.items), nil
}

// Remove drops an item locally, then persists. Removing an id that is not
// present is a no-op. On persistence failure the local list reverts.
func (m *Mirror) Remove(ctx context.Context, refID string) ([]models.QueueItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.items, func(it models.QueueItem) bool { return it.ID == refID })
	if idx < 0 {
		return slices.Clone(m.items), nil
	}

	snapshot := slices.Clone(m.items)
	m.items = slices.Delete(m.items, idx, idx+1)

	if err := m.remove(ctx, refID); err != nil {
		m.items = snapshot
		return nil, err
	}
	return slices.Clone(m.items), nil
}
