package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"sheetr/models"
	"sheetr/services/reviews"
)

type reviewsService interface {
	List(ctx context.Context) ([]models.Review, error)
	Add(ctx context.Context, input models.ReviewInput) (models.Review, error)
	Update(ctx context.Context, id, title string, rating float64) error
	Delete(ctx context.Context, id string) error
}

var _ reviewsService = (*reviews.Service)(nil)

type ReviewsHandler struct {
	Service reviewsService
}

func NewReviewsHandler(service reviewsService) *ReviewsHandler {
	return &ReviewsHandler{Service: service}
}

// List returns the review archive in sheet order.
func (h *ReviewsHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, items)
}

// Add records a review and synchronizes the watched flag on source sheets.
func (h *ReviewsHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.Service.Add(r.Context(), input)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, review)
}

// Update edits title and rating of an existing review.
func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}

	var input models.ReviewUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := models.Validate(input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Service.Update(r.Context(), id, input.Title, input.Rating); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a review.
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *ReviewsHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
