package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"sheetr/models"
	"sheetr/services/queue"
)

type queueService interface {
	List(ctx context.Context) ([]models.QueueItem, error)
	Add(ctx context.Context, item models.QueueItem) error
	Remove(ctx context.Context, refID string) error
	Reorder(ctx context.Context, items []models.QueueItem) error
}

var _ queueService = (*queue.Service)(nil)

type QueueHandler struct {
	Service queueService
}

func NewQueueHandler(service queueService) *QueueHandler {
	return &QueueHandler{Service: service}
}

// List returns the queue in rank order.
func (h *QueueHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, items)
}

// Add appends a referenced item to the queue.
func (h *QueueHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input models.QueueAdd
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := models.QueueItem{ID: input.ID, Title: input.Title, Type: input.Origin}
	if err := h.Service.Add(r.Context(), item); err != nil {
		if errors.Is(err, queue.ErrAlreadyQueued) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		writeStoreError(w, err)
		return
	}
	writeJSON(w, item)
}

// Reorder persists a full new queue order.
func (h *QueueHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []models.QueueItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			http.Error(w, "every item needs an id", http.StatusBadRequest)
			return
		}
	}

	if err := h.Service.Reorder(r.Context(), items); err != nil {
		if errors.Is(err, queue.ErrNothingToOrder) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Remove deletes a queued item by its referenced id.
func (h *QueueHandler) Remove(w http.ResponseWriter, r *http.Request) {
	refID := strings.TrimSpace(mux.Vars(r)["refID"])
	if refID == "" {
		http.Error(w, "ref id is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.Remove(r.Context(), refID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *QueueHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
