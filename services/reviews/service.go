// Package reviews manages the append-only review archive and keeps the
// watched flags on the other sheets in sync with it.
package reviews

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sheetr/internal/sheets"
	"sheetr/models"
)

const (
	sheetTitle    = "Reviews"
	downlistTitle = "Downlist"
	speweekTitle  = "Speweek"
)

var ErrStoreRequired = errors.New("sheet store not provided")

// Service exposes review operations over the sheet store.
type Service struct {
	store sheets.Store
}

// NewService creates a reviews service over the provided store.
func NewService(store sheets.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store}, nil
}

// List returns all reviews in sheet order.
func (s *Service) List(ctx context.Context) ([]models.Review, error) {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return nil, err
	}
	rows, err := sheet.Rows(ctx)
	if err != nil {
		return nil, err
	}

	reviews := make([]models.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, reviewFromRow(row))
	}
	return reviews, nil
}

// Add appends a review row, then synchronizes the watched flag on the source
// sheets: by exact id when the input carries one, else by case-insensitive
// title; first match per sheet only. Zero matches is still success.
func (s *Service) Add(ctx context.Context, input models.ReviewInput) (models.Review, error) {
	review := models.Review{
		ID:     strings.TrimSpace(input.ID),
		Title:  input.Title,
		Rating: input.Rating,
		Date:   input.Date,
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}

	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return models.Review{}, err
	}
	err = sheet.Append(ctx, []map[string]string{{
		"id":     review.ID,
		"title":  review.Title,
		"rating": formatRating(review.Rating),
		"date":   review.Date,
	}})
	if err != nil {
		return models.Review{}, err
	}

	// The watched flag is a denormalized cache of "a review exists"; it is
	// synchronized here, immediately after the insert, never written by the
	// downlist or speweek screens themselves.
	if err := s.markWatched(ctx, strings.TrimSpace(input.ID), input.Title); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// Update edits title and rating of an existing review. Missing id is a no-op.
func (s *Service) Update(ctx context.Context, id, title string, rating float64) error {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}
	rows, err := sheet.Rows(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Get("id") == id {
			row.Set("title", title)
			row.Set("rating", formatRating(rating))
			return row.Save(ctx)
		}
	}
	return nil
}

// Delete removes a review. Missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}
	rows, err := sheet.Rows(ctx)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if row.Get("id") == id {
			return row.Delete(ctx)
		}
	}
	return nil
}

func (s *Service) markWatched(ctx context.Context, sourceID, title string) error {
	for _, tab := range []string{downlistTitle, speweekTitle} {
		sheet, err := s.store.Sheet(ctx, tab)
		if err != nil {
			return err
		}
		rows, err := sheet.Rows(ctx)
		if err != nil {
			return err
		}

		match := findMatch(rows, sourceID, title)
		if match == nil {
			continue
		}
		match.Set("is_watched", sheets.TrueValue)
		if err := match.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// findMatch returns the first row matching by id when one is supplied, else
// by case-insensitive exact title. Ambiguous title matches are not
// disambiguated; store iteration order wins.
func findMatch(rows []sheets.Row, id, title string) sheets.Row {
	for _, row := range rows {
		if id != "" {
			if row.Get("id") == id {
				return row
			}
			continue
		}
		if strings.EqualFold(row.Get("title"), title) {
			return row
		}
	}
	return nil
}

func reviewFromRow(row sheets.Row) models.Review {
	return models.Review{
		ID:     row.Get("id"),
		Title:  row.Get("title"),
		Rating: sheets.Float(row.Get("rating")),
		Date:   row.Get("date"),
	}
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
