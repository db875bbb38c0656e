package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"sheetr/models"
)

type reviewLister interface {
	List(ctx context.Context) ([]models.Review, error)
}

type downlistLister interface {
	List(ctx context.Context) ([]models.DownlistItem, error)
}

// DashboardHandler aggregates the counters for the dashboard cards.
type DashboardHandler struct {
	Reviews  reviewLister
	Downlist downlistLister
	Now      func() time.Time
}

func NewDashboardHandler(reviews reviewLister, downlist downlistLister) *DashboardHandler {
	return &DashboardHandler{Reviews: reviews, Downlist: downlist, Now: time.Now}
}

// Summary returns review and backlog counters in one round trip.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	items, err := h.Downlist.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	// Review dates are ISO strings; the current month is a prefix match.
	monthPrefix := h.Now().UTC().Format("2006-01")

	summary := models.DashboardSummary{TotalReviews: len(reviews)}
	for _, review := range reviews {
		if strings.HasPrefix(review.Date, monthPrefix) {
			summary.ReviewsThisMonth++
		}
	}
	for _, item := range items {
		if !item.IsDownloaded {
			summary.PendingDownloads++
		}
		if item.IsDownloaded && !item.IsWatched {
			summary.ReadyToWatch++
		}
	}

	writeJSON(w, summary)
}

func (h *DashboardHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
