package models

// Review is the durable record asserting a movie has been watched.
type Review struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Date   string  `json:"date"` // ISO date (2006-01-02)
}

// ReviewInput captures data required to record a review. ID optionally
// references a Downlist or Speweek row; when present the matching row's
// watched flag is synchronized.
type ReviewInput struct {
	ID     string  `json:"id"`
	Title  string  `json:"title" validate:"required"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// ReviewUpdate captures the editable fields of an existing review.
type ReviewUpdate struct {
	Title  string  `json:"title" validate:"required"`
	Rating float64 `json:"rating" validate:"gte=0,lte=10"`
}
