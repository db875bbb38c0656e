package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"sheetr/handlers"
	"sheetr/internal/sheets"
	"sheetr/models"
	"sheetr/services/downlist"
)

func newDownlistHandler(t *testing.T) (*handlers.DownlistHandler, *downlist.Service) {
	t.Helper()

	store := sheets.NewMemStore()
	store.AddSheet("Downlist", []string{"id", "title", "release_year", "is_downloaded", "is_watched"})
	svc, err := downlist.NewService(store)
	if err != nil {
		t.Fatalf("failed to create downlist service: %v", err)
	}
	return handlers.NewDownlistHandler(svc), svc
}

func TestDownlistAddAndList(t *testing.T) {
	h, _ := newDownlistHandler(t)

	payload, _ := json.Marshal(models.DownlistInput{Title: "Metropolis", Year: 1927})
	req := httptest.NewRequest(http.MethodPost, "/api/downlist", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Add(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	recList := httptest.NewRecorder()
	h.List(recList, httptest.NewRequest(http.MethodGet, "/api/downlist", nil))

	var items []models.DownlistItem
	if err := json.Unmarshal(recList.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Metropolis" || items[0].Year != 1927 {
		t.Fatalf("unexpected item returned: %+v", items[0])
	}
}

func TestDownlistAddRejectsInvalidInput(t *testing.T) {
	h, _ := newDownlistHandler(t)

	cases := []string{
		`{"title":"","year":1927}`,
		`{"title":"Metropolis","year":1700}`,
		`not json`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/downlist", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected status 400, got %d", body, rec.Code)
		}
	}
}

func TestDownlistToggleFlipsFromClientStatus(t *testing.T) {
	h, svc := newDownlistHandler(t)

	item, err := svc.Add(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "Nosferatu", 1922)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/downlist/"+item.ID+"/toggle",
		strings.NewReader(`{"currentStatus":false}`))
	req = mux.SetURLVars(req, map[string]string{"id": item.ID})
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	recList := httptest.NewRecorder()
	h.List(recList, httptest.NewRequest(http.MethodGet, "/api/downlist", nil))
	var items []models.DownlistItem
	if err := json.Unmarshal(recList.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if !items[0].IsDownloaded {
		t.Fatal("expected toggle from false to set the flag")
	}
}

func TestDownlistUpdateRequiresID(t *testing.T) {
	h, _ := newDownlistHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/downlist/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without id, got %d", rec.Code)
	}
}

func TestDownlistDelete(t *testing.T) {
	h, svc := newDownlistHandler(t)

	item, err := svc.Add(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "Nosferatu", 1922)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/downlist/"+item.ID, nil)
	req = mux.SetURLVars(req, map[string]string{"id": item.ID})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	recList := httptest.NewRecorder()
	h.List(recList, httptest.NewRequest(http.MethodGet, "/api/downlist", nil))
	var items []models.DownlistItem
	if err := json.Unmarshal(recList.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %d items", len(items))
	}
}
