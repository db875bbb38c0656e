package reviews_test

import (
	"context"
	"testing"

	"sheetr/internal/sheets"
	"sheetr/models"
	"sheetr/services/reviews"
)

// newStore seeds all three tabs the review sync touches.
func newStore(t *testing.T) *sheets.MemStore {
	t.Helper()

	store := sheets.NewMemStore()
	store.AddSheet("Reviews", []string{"id", "title", "rating", "date"})
	store.AddSheet("Downlist", []string{"id", "title", "release_year", "is_downloaded", "is_watched"})
	store.AddSheet("Speweek", []string{"id", "title", "release_year", "added_month", "added_year", "theme", "is_watched"})

	ctx := context.Background()
	downlist, _ := store.Sheet(ctx, "Downlist")
	if err := downlist.Append(ctx, []map[string]string{
		{"id": "dl-1", "title": "Dune", "release_year": "2021", "is_downloaded": "TRUE", "is_watched": "FALSE"},
		{"id": "dl-2", "title": "Nosferatu", "release_year": "1922", "is_downloaded": "FALSE", "is_watched": "FALSE"},
	}); err != nil {
		t.Fatalf("failed to seed downlist: %v", err)
	}

	speweek, _ := store.Sheet(ctx, "Speweek")
	if err := speweek.Append(ctx, []map[string]string{
		{"id": "sw-1", "title": "Dune", "release_year": "1984", "added_month": "10", "added_year": "1999", "theme": "Desert Epics", "is_watched": "FALSE"},
	}); err != nil {
		t.Fatalf("failed to seed speweek: %v", err)
	}

	return store
}

func watchedFlag(t *testing.T, store *sheets.MemStore, tab, id string) bool {
	t.Helper()

	sheet, err := store.Sheet(context.Background(), tab)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", tab, err)
	}
	rows, err := sheet.Rows(context.Background())
	if err != nil {
		t.Fatalf("failed to read %s: %v", tab, err)
	}
	for _, row := range rows {
		if row.Get("id") == id {
			return sheets.Bool(row.Get("is_watched"))
		}
	}
	t.Fatalf("row %q not found in %s", id, tab)
	return false
}

func TestAddSyncsWatchedFlagByID(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc, err := reviews.NewService(store)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	review, err := svc.Add(ctx, models.ReviewInput{
		ID:     "dl-1",
		Title:  "Dune",
		Rating: 8.5,
		Date:   "2024-03-10",
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if review.ID != "dl-1" {
		t.Fatalf("expected supplied id kept, got %q", review.ID)
	}

	if !watchedFlag(t, store, "Downlist", "dl-1") {
		t.Fatal("expected downlist row marked watched")
	}
	// Same title lives in Speweek, but id matching never falls back to title.
	if watchedFlag(t, store, "Speweek", "sw-1") {
		t.Fatal("expected speweek row untouched when id matches elsewhere")
	}
	if watchedFlag(t, store, "Downlist", "dl-2") {
		t.Fatal("expected unrelated downlist row untouched")
	}
}

func TestAddWithoutIDSyncsByTitleCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc, _ := reviews.NewService(store)

	review, err := svc.Add(ctx, models.ReviewInput{
		Title:  "dune",
		Rating: 7,
		Date:   "2024-03-10",
	})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if review.ID == "" {
		t.Fatal("expected generated id")
	}

	// First title match per sheet, in both sheets.
	if !watchedFlag(t, store, "Downlist", "dl-1") {
		t.Fatal("expected downlist title match marked watched")
	}
	if !watchedFlag(t, store, "Speweek", "sw-1") {
		t.Fatal("expected speweek title match marked watched")
	}
}

func TestAddWithNoMatchStillSucceeds(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc, _ := reviews.NewService(store)

	if _, err := svc.Add(ctx, models.ReviewInput{
		Title:  "Unknown Movie",
		Rating: 5,
		Date:   "2024-03-10",
	}); err != nil {
		t.Fatalf("expected review without source match to succeed, got %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 review, got %d", len(list))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc, _ := reviews.NewService(store)

	review, err := svc.Add(ctx, models.ReviewInput{Title: "Unknown Movie", Rating: 5, Date: "2024-03-10"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	if err := svc.Update(ctx, review.ID, "Known Movie", 9.5); err != nil {
		t.Fatalf("update returned error: %v", err)
	}
	list, _ := svc.List(ctx)
	if list[0].Title != "Known Movie" || list[0].Rating != 9.5 {
		t.Fatalf("unexpected review after update: %+v", list[0])
	}
	if list[0].Date != "2024-03-10" {
		t.Fatalf("expected date untouched by update, got %q", list[0].Date)
	}

	if err := svc.Update(ctx, "ghost", "Whatever", 1); err != nil {
		t.Fatalf("update of missing id returned error: %v", err)
	}

	if err := svc.Delete(ctx, review.ID); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, review.ID); err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}
	list, _ = svc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty archive, got %d reviews", len(list))
	}
}

func TestRatingSurvivesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	svc, _ := reviews.NewService(store)

	if _, err := svc.Add(ctx, models.ReviewInput{Title: "Unknown Movie", Rating: 7.25, Date: "2024-03-10"}); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	list, _ := svc.List(ctx)
	if list[0].Rating != 7.25 {
		t.Fatalf("expected rating 7.25, got %v", list[0].Rating)
	}
}
