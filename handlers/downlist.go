package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"sheetr/models"
	"sheetr/services/downlist"
)

type downlistService interface {
	List(ctx context.Context) ([]models.DownlistItem, error)
	Add(ctx context.Context, title string, year int) (models.DownlistItem, error)
	Update(ctx context.Context, id, title string, year int) error
	SetDownloaded(ctx context.Context, id string, downloaded bool) error
	Delete(ctx context.Context, id string) error
}

var _ downlistService = (*downlist.Service)(nil)

type DownlistHandler struct {
	Service downlistService
}

func NewDownlistHandler(service downlistService) *DownlistHandler {
	return &DownlistHandler{Service: service}
}

// List returns the backlog in sheet order.
func (h *DownlistHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, items)
}

// Add creates a backlog entry from a title and year.
func (h *DownlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input models.DownlistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.Service.Add(r.Context(), input.Title, input.Year)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, item)
}

// Update edits title and year of an entry.
func (h *DownlistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var input models.DownlistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.Update(r.Context(), id, input.Title, input.Year); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetDownloaded sets the download flag explicitly.
func (h *DownlistHandler) SetDownloaded(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var input struct {
		IsDownloaded bool `json:"isDownloaded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.SetDownloaded(r.Context(), id, input.IsDownloaded); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Toggle flips the download flag from the client-known current status, so a
// stale client cannot silently re-apply the state it already sees.
func (h *DownlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var input struct {
		CurrentStatus bool `json:"currentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.SetDownloaded(r.Context(), id, !input.CurrentStatus); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes an entry.
func (h *DownlistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DownlistHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func requireID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if id == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}
