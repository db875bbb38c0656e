package queue_test

import (
	"context"
	"errors"
	"testing"

	"sheetr/internal/sheets"
	"sheetr/models"
	"sheetr/services/queue"
)

func newStore() *sheets.MemStore {
	store := sheets.NewMemStore()
	store.AddSheet("Queue", []string{"ref_id", "origin", "title", "added_at"})
	return store
}

func TestAddRejectsDuplicateReference(t *testing.T) {
	ctx := context.Background()
	svc, err := queue.NewService(newStore())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	item := models.QueueItem{ID: "dl-1", Title: "Metropolis", Type: models.OriginDownlist}
	if err := svc.Add(ctx, item); err != nil {
		t.Fatalf("first add returned error: %v", err)
	}
	if err := svc.Add(ctx, item); !errors.Is(err, queue.ErrAlreadyQueued) {
		t.Fatalf("expected ErrAlreadyQueued, got %v", err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 queued item, got %d", len(items))
	}
}

func TestListPreservesSheetOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := queue.NewService(newStore())

	for _, it := range []models.QueueItem{
		{ID: "a", Title: "A", Type: models.OriginDownlist},
		{ID: "b", Title: "B", Type: models.OriginSpeweek},
		{ID: "c", Title: "C", Type: models.OriginDownlist},
	} {
		if err := svc.Add(ctx, it); err != nil {
			t.Fatalf("add %q returned error: %v", it.ID, err)
		}
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, want := range []string{"a", "b", "c"} {
		if items[i].ID != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, items[i].ID)
		}
	}
}

func TestReorderPersistsNewTotalOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := queue.NewService(newStore())

	a := models.QueueItem{ID: "a", Title: "A", Type: models.OriginDownlist}
	b := models.QueueItem{ID: "b", Title: "B", Type: models.OriginDownlist}
	c := models.QueueItem{ID: "c", Title: "C", Type: models.OriginSpeweek}
	for _, it := range []models.QueueItem{a, b, c} {
		if err := svc.Add(ctx, it); err != nil {
			t.Fatalf("add returned error: %v", err)
		}
	}

	if err := svc.Reorder(ctx, []models.QueueItem{c, a, b}); err != nil {
		t.Fatalf("reorder returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 items after reorder, got %d", len(items))
	}
	for i, want := range []string{"c", "a", "b"} {
		if items[i].ID != want {
			t.Fatalf("expected %q at position %d, got %q", want, i, items[i].ID)
		}
	}
}

func TestReorderRejectsEmptyOrder(t *testing.T) {
	svc, _ := queue.NewService(newStore())
	if err := svc.Reorder(context.Background(), nil); !errors.Is(err, queue.ErrNothingToOrder) {
		t.Fatalf("expected ErrNothingToOrder, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := queue.NewService(newStore())

	if err := svc.Add(ctx, models.QueueItem{ID: "a", Title: "A", Type: models.OriginDownlist}); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if err := svc.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove returned error: %v", err)
	}
	if err := svc.Remove(ctx, "a"); err != nil {
		t.Fatalf("second remove returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d items", len(items))
	}
}
