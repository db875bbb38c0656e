// Package downlist manages the movie backlog stored in the "Downlist" tab.
package downlist

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"

	"sheetr/internal/sheets"
	"sheetr/models"
)

const sheetTitle = "Downlist"

var ErrStoreRequired = errors.New("sheet store not provided")

// Service exposes CRUD operations over the backlog sheet. Every call re-reads
// the current row set; the spreadsheet is the only source of truth.
type Service struct {
	store sheets.Store
}

// NewService creates a downlist service over the provided store.
func NewService(store sheets.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store}, nil
}

// List returns all backlog items in sheet order.
func (s *Service) List(ctx context.Context) ([]models.DownlistItem, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.DownlistItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, itemFromRow(row))
	}
	return items, nil
}

// Add appends a new backlog entry with a generated id and both flags unset.
func (s *Service) Add(ctx context.Context, title string, year int) (models.DownlistItem, error) {
	item := models.DownlistItem{
		ID:    uuid.NewString(),
		Title: title,
		Year:  year,
	}

	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return models.DownlistItem{}, err
	}

	err = sheet.Append(ctx, []map[string]string{{
		"id":            item.ID,
		"title":         item.Title,
		"release_year":  strconv.Itoa(item.Year),
		"is_downloaded": sheets.FalseValue,
		"is_watched":    sheets.FalseValue,
	}})
	if err != nil {
		return models.DownlistItem{}, err
	}
	return item, nil
}

// Update edits title and year of an existing entry. A missing id is a no-op.
func (s *Service) Update(ctx context.Context, id, title string, year int) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	row := findByID(rows, id)
	if row == nil {
		return nil
	}
	row.Set("title", title)
	row.Set("release_year", strconv.Itoa(year))
	return row.Save(ctx)
}

// SetDownloaded sets the download flag explicitly. A missing id is a no-op.
func (s *Service) SetDownloaded(ctx context.Context, id string, downloaded bool) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	row := findByID(rows, id)
	if row == nil {
		return nil
	}
	row.Set("is_downloaded", sheets.FormatBool(downloaded))
	return row.Save(ctx)
}

// Delete removes an entry. A missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	row := findByID(rows, id)
	if row == nil {
		return nil
	}
	return row.Delete(ctx)
}

func (s *Service) rows(ctx context.Context) ([]sheets.Row, error) {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return nil, err
	}
	return sheet.Rows(ctx)
}

func findByID(rows []sheets.Row, id string) sheets.Row {
	for _, row := range rows {
		if row.Get("id") == id {
			return row
		}
	}
	return nil
}

func itemFromRow(row sheets.Row) models.DownlistItem {
	return models.DownlistItem{
		ID:           row.Get("id"),
		Title:        row.Get("title"),
		Year:         sheets.Int(row.Get("release_year")),
		IsDownloaded: sheets.Bool(row.Get("is_downloaded")),
		IsWatched:    sheets.Bool(row.Get("is_watched")),
	}
}
