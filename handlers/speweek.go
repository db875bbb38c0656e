package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sheetr/models"
	"sheetr/services/speweek"
)

type speweekService interface {
	List(ctx context.Context) ([]models.SpeweekEvent, error)
	AddEvent(ctx context.Context, theme, addedMonthYear string) error
	AddMovie(ctx context.Context, input models.SpeweekMovieInput) error
	Delete(ctx context.Context, id string) error
}

var _ speweekService = (*speweek.Service)(nil)

type SpeweekHandler struct {
	Service speweekService
}

func NewSpeweekHandler(service speweekService) *SpeweekHandler {
	return &SpeweekHandler{Service: service}
}

// List returns the events with nested movies, in first-seen order.
func (h *SpeweekHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, events)
}

// AddEvent creates an event placeholder with no movies yet.
func (h *SpeweekHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var input models.SpeweekEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.AddEvent(r.Context(), input.Theme, input.AddedMonthYear); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMovie adds a movie to an event.
func (h *SpeweekHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var input models.SpeweekMovieInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.AddMovie(r.Context(), input); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a movie or placeholder row.
func (h *SpeweekHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *SpeweekHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
