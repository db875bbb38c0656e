package models

// SpeweekMovie is a movie nested inside a themed event.
type SpeweekMovie struct {
	ID        string `json:"id"`
	TitleYear string `json:"titleYear"` // "{title} ({release_year})"
	IsWatched bool   `json:"isWatched"`
}

// SpeweekEvent is a themed, dated grouping of movies. It is not stored as its
// own row; it is derived by grouping flat sheet rows on theme + month-year.
// A row with an empty title acts as a placeholder establishing the event.
type SpeweekEvent struct {
	ID             string         `json:"id"`
	Theme          string         `json:"theme"`
	AddedMonthYear string         `json:"addedMonthYear"` // MM-YYYY
	Movies         []SpeweekMovie `json:"movies"`
}

// SpeweekEventInput captures data required to create an event placeholder.
type SpeweekEventInput struct {
	Theme          string `json:"theme" validate:"required"`
	AddedMonthYear string `json:"addedMonthYear" validate:"required,monthyear"`
}

// SpeweekMovieInput captures data required to add a movie to an event.
type SpeweekMovieInput struct {
	Title          string `json:"title" validate:"required"`
	ReleaseYear    int    `json:"releaseYear" validate:"releaseyear"`
	AddedMonthYear string `json:"addedMonthYear" validate:"required,monthyear"`
	Theme          string `json:"theme" validate:"required"`
}
