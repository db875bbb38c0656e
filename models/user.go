package models

// SessionUser is the authenticated identity attached to a request.
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// DashboardSummary aggregates the counters shown on the dashboard cards.
type DashboardSummary struct {
	TotalReviews     int `json:"totalReviews"`
	ReviewsThisMonth int `json:"reviewsThisMonth"`
	PendingDownloads int `json:"pendingDownloads"`
	ReadyToWatch     int `json:"readyToWatch"`
}
