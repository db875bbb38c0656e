// Package speweek manages themed movie events derived from flat rows in the
// "Speweek" tab. Events are not stored as rows; they are grouped at read time.
package speweek

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sheetr/internal/sheets"
	"sheetr/models"
)

const sheetTitle = "Speweek"

var ErrStoreRequired = errors.New("sheet store not provided")

// Service exposes speweek operations over the sheet store.
type Service struct {
	store sheets.Store
}

// NewService creates a speweek service over the provided store.
func NewService(store sheets.Store) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &Service{store: store}, nil
}

// EventKey derives the stable event identifier from theme and month-year.
// The theme is trimmed, lowercased and whitespace runs collapse to a single
// dash, so two rows entered independently with spacing or casing differences
// land in the same event. The key is deliberately lossy: themes meant to be
// distinct but differing only in case or spacing collapse together.
func EventKey(theme, monthYear string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(theme)), "-")
	return normalized + ":" + strings.TrimSpace(monthYear)
}

// List folds the flat rows into events in first-seen order. Placeholder rows
// (empty title) establish their event but contribute no movie.
func (s *Service) List(ctx context.Context) ([]models.SpeweekEvent, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]*models.SpeweekEvent)
	order := make([]string, 0)

	for _, row := range rows {
		theme := row.Get("theme")
		monthYear := row.Get("added_month") + "-" + row.Get("added_year")
		key := EventKey(theme, monthYear)

		if _, ok := groups[key]; !ok {
			groups[key] = &models.SpeweekEvent{
				ID:             key,
				Theme:          theme,
				AddedMonthYear: monthYear,
				Movies:         []models.SpeweekMovie{},
			}
			order = append(order, key)
		}

		titleYear := ""
		if title := row.Get("title"); title != "" {
			titleYear = fmt.Sprintf("%s (%s)", title, row.Get("release_year"))
		}
		if strings.TrimSpace(titleYear) == "" {
			continue
		}

		groups[key].Movies = append(groups[key].Movies, models.SpeweekMovie{
			ID:        row.Get("id"),
			TitleYear: titleYear,
			IsWatched: sheets.Bool(row.Get("is_watched")),
		})
	}

	events := make([]models.SpeweekEvent, 0, len(order))
	for _, key := range order {
		events = append(events, *groups[key])
	}
	return events, nil
}

// AddEvent appends a placeholder row establishing an event with no movies.
func (s *Service) AddEvent(ctx context.Context, theme, addedMonthYear string) error {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}

	month, year := splitMonthYear(addedMonthYear)
	return sheet.Append(ctx, []map[string]string{{
		"id":           uuid.NewString(),
		"title":        "",
		"release_year": "",
		"added_month":  month,
		"added_year":   year,
		"theme":        theme,
		"is_watched":   sheets.FalseValue,
	}})
}

// AddMovie appends a movie row. If the theme still has a placeholder row, it
// is removed first; the real movie keeps the event alive on its own.
func (s *Service) AddMovie(ctx context.Context, input models.SpeweekMovieInput) error {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return err
	}

	rows, err := sheet.Rows(ctx)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.Get("theme") == input.Theme && row.Get("title") == "" && row.Get("release_year") == "" {
			if err := row.Delete(ctx); err != nil {
				return err
			}
			break
		}
	}

	month, year := splitMonthYear(input.AddedMonthYear)
	return sheet.Append(ctx, []map[string]string{{
		"id":           uuid.NewString(),
		"title":        input.Title,
		"release_year": strconv.Itoa(input.ReleaseYear),
		"added_month":  month,
		"added_year":   year,
		"theme":        input.Theme,
		"is_watched":   sheets.FalseValue,
	}})
}

// Delete removes a row (movie or placeholder). A missing id is a no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	rows, err := s.rows(ctx)
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

func (s *Service) rows(ctx context.Context) ([]sheets.Row, error) {
	sheet, err := s.store.Sheet(ctx, sheetTitle)
	if err != nil {
		return nil, err
	}
	return sheet.Rows(ctx)
}

func splitMonthYear(monthYear string) (month, year string) {
	parts := strings.SplitN(strings.TrimSpace(monthYear), "-", 2)
	month = parts[0]
	if len(parts) > 1 {
		year = parts[1]
	}
	return month, year
}
