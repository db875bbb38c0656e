package models

// DownlistItem is a movie in the backlog: acquired (or wanted) but not yet
// reviewed. IsWatched is never set directly through the downlist screens; it
// flips when a review is recorded against the same item.
type DownlistItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Year         int    `json:"year"`
	IsDownloaded bool   `json:"isDownloaded"`
	IsWatched    bool   `json:"isWatched"`
}

// DownlistInput captures data required to create or edit a backlog entry.
type DownlistInput struct {
	Title string `json:"title" validate:"required"`
	Year  int    `json:"year" validate:"releaseyear"`
}
