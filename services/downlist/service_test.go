package downlist_test

import (
	"context"
	"testing"

	"sheetr/internal/sheets"
	"sheetr/services/downlist"
)

func newStore() *sheets.MemStore {
	store := sheets.NewMemStore()
	store.AddSheet("Downlist", []string{"id", "title", "release_year", "is_downloaded", "is_watched"})
	return store
}

func TestAddDefaultsBothFlagsToFalse(t *testing.T) {
	ctx := context.Background()
	svc, err := downlist.NewService(newStore())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	item, err := svc.Add(ctx, "Metropolis", 1927)
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated id")
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	got := items[0]
	if got.Title != "Metropolis" || got.Year != 1927 {
		t.Fatalf("unexpected item: %+v", got)
	}
	if got.IsDownloaded || got.IsWatched {
		t.Fatalf("expected both flags false, got %+v", got)
	}
}

func TestSetDownloadedRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := downlist.NewService(newStore())

	item, err := svc.Add(ctx, "Nosferatu", 1922)
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if err := svc.SetDownloaded(ctx, item.ID, true); err != nil {
		t.Fatalf("set downloaded returned error: %v", err)
	}
	items, _ := svc.List(ctx)
	if !items[0].IsDownloaded {
		t.Fatal("expected download flag set")
	}

	if err := svc.SetDownloaded(ctx, item.ID, false); err != nil {
		t.Fatalf("unset downloaded returned error: %v", err)
	}
	items, _ = svc.List(ctx)
	if items[0].IsDownloaded {
		t.Fatal("expected download flag cleared")
	}
}

func TestUpdateEditsTitleAndYearOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := downlist.NewService(newStore())

	item, _ := svc.Add(ctx, "The Genral", 1925)
	if err := svc.SetDownloaded(ctx, item.ID, true); err != nil {
		t.Fatalf("set downloaded returned error: %v", err)
	}

	if err := svc.Update(ctx, item.ID, "The General", 1926); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	got := items[0]
	if got.Title != "The General" || got.Year != 1926 {
		t.Fatalf("expected corrected title and year, got %+v", got)
	}
	if !got.IsDownloaded {
		t.Fatal("expected download flag untouched by update")
	}
}

func TestMutationsOnMissingIDAreNoOps(t *testing.T) {
	ctx := context.Background()
	svc, _ := downlist.NewService(newStore())
	if _, err := svc.Add(ctx, "Metropolis", 1927); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if err := svc.Update(ctx, "ghost", "Whatever", 2000); err != nil {
		t.Fatalf("update of missing id returned error: %v", err)
	}
	if err := svc.SetDownloaded(ctx, "ghost", true); err != nil {
		t.Fatalf("set downloaded of missing id returned error: %v", err)
	}
	if err := svc.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("delete of missing id returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 1 {
		t.Fatalf("expected existing row untouched, got %d rows", len(items))
	}
}

func TestDeleteRemovesOnlyTargetRow(t *testing.T) {
	ctx := context.Background()
	svc, _ := downlist.NewService(newStore())

	first, _ := svc.Add(ctx, "Metropolis", 1927)
	second, _ := svc.Add(ctx, "Nosferatu", 1922)

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	items, _ := svc.List(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after delete, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Fatalf("expected remaining item %q, got %q", second.ID, items[0].ID)
	}
}

func TestNewServiceRequiresStore(t *testing.T) {
	if _, err := downlist.NewService(nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}
