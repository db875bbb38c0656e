package models

// Queue item origins. The queue references items living in other sheets.
const (
	OriginDownlist = "downlist"
	OriginSpeweek  = "speweek"
)

// QueueItem is a position in the ordered watch queue. ID is the referenced
// source item's id (ref_id in the sheet); row order is the rank, there is no
// explicit rank field.
type QueueItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"` // downlist | speweek
}

// QueueAdd captures data required to append an item to the queue.
type QueueAdd struct {
	ID     string `json:"id" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Origin string `json:"origin" validate:"required,oneof=downlist speweek"`
}
