// Package queue manages the ordered watch queue stored in the "Queue" tab.
// Row order in the sheet is the rank; there is no explicit rank column.
package queue

import (
	"context"
	"errors"
	"time"

	"sheetr/internal/sheets"
	"sheetr/models"
)

const sheetTitle = "Queue"

var (
	ErrStoreRequired  = errors.New("sheet store not provided")
	ErrAlreadyQueued  = errors.New("item already queued")
	ErrNothingToOrder = errors.New("new order is empty")
)

// Service exposes queue operations over the sheet store.
type Service struct {
	store sheets.Store
	now   func() time.Time
}

// NewService creates a queue service over the provided store.
func NewService(store sheets.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store, now: time.Now}, nil
}

// List returns the queue in sheet order, which is the rank order.
func (s *Service) List(ctx context.Context) ([]models.QueueItem, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.QueueItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFromRow(row))
	}
	return items, nil
}

// Add appends an item to the end of the queue. An id already present in the
// queue is rejected with ErrAlreadyQueued.
func (s *Service) Add(ctx context.Context, item models.QueueItem) error {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}

	rows, err := sheet.Rows(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Get("ref_id") == item.ID {
			return ErrAlreadyQueued
		}
	}

	return sheet.Append(ctx, []map[string]string{s.rowValues(item)})
}

// Remove deletes an item by its referenced id. A missing id is a no-op.
func (s *Service) Remove(ctx context.Context, refID string) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Get("ref_id") == refID {
			return row.Delete(ctx)
		}
	}
	return nil
}

// Reorder persists a new total order: every row referenced by the new list is
// deleted, then the full list is re-appended in order. The operation is not
// atomic across the store; a failure between the phases can leave a partial
// order, which the caller surfaces without retrying.
func (s *Service) Reorder(ctx context.Context, items []models.QueueItem) error {
	if len(items) == 0 {
		return ErrNothingToOrder
	}

	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}

	rows, err := sheet.Rows(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		for _, row := range rows {
			if row.Get("ref_id") == item.ID {
				if err := row.Delete(ctx); err != nil {
					return err
				}
				break
			}
		}
	}

	batch := make([]map[string]string, 0, len(items))
	for _, item := range items {
		batch = append(batch, s.rowValues(item))
	}
	return sheet.Append(ctx, batch)
}

func (s *Service) rowValues(item models.QueueItem) map[string]string {
	return map[string]string{
		"ref_id":   item.ID,
		"origin":   item.Type,
		"title":    item.Title,
		"added_at": s.now().UTC().Format(time.RFC3339),
	}
}

func (s *Service) rows(ctx context.Context) ([]sheets.Row, error) {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return nil, err
	}
	return sheet.Rows(ctx)
}

func itemFromRow(row sheets.Row) models.QueueItem {
	return models.QueueItem{
		ID:    row.Get("ref_id"),
		Title: row.Get("title"),
		Type:  row.Get("origin"),
	}
}
