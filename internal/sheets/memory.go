package sheets

import (
	"context"
	"strings"
	"sync"
)

// MemStore is an in-memory Store with the same ordering and staleness
// semantics as the Google implementation. It backs every test and the -demo
// server mode.
type MemStore struct {
	mu     sync.Mutex
	sheets []*MemSheet
}

// NewMemStore creates an empty in-memory spreadsheet.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// AddSheet registers a tab with the given header columns.
func (s *MemStore) AddSheet(title string, header []string) *MemSheet {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet := &MemSheet{title: title, header: append([]string(nil), header...)}
	s.sheets = append(s.sheets, sheet)
	return sheet
}

// Sheet resolves a tab by title, case-insensitively.
func (s *MemStore) Sheet(_ context.Context, title string) (Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sheet := range s.sheets {
		if sheet.title == title {
			return sheet, nil
		}
	}
	for _, sheet := range s.sheets {
		if strings.EqualFold(sheet.title, title) {
			return sheet, nil
		}
	}

	available := make([]string, 0, len(s.sheets))
	for _, sheet := range s.sheets {
		available = append(available, sheet.title)
	}
	return nil, &SheetNotFoundError{Title: title, Available: available}
}

// MemSheet is one in-memory tab.
type MemSheet struct {
	mu     sync.Mutex
	title  string
	header []string
	rows   []*memRow
}

// Rows returns handles onto the data rows in tab order.
func (s *MemSheet) Rows(_ context.Context) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]Row, len(s.rows))
	for i, r := range s.rows {
		rows[i] = r
	}
	return rows, nil
}

// Append inserts rows at the end of the existing data.
func (s *MemSheet) Append(_ context.Context, rows []map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, values := range rows {
		copied := make(map[string]string, len(values))
		for k, v := range values {
			copied[k] = v
		}
		s.rows = append(s.rows, &memRow{sheet: s, values: copied})
	}
	return nil
}

func (s *MemSheet) remove(target *memRow) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rows {
		if r == target {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}

type memRow struct {
	mu     sync.Mutex
	sheet  *MemSheet
	values map[string]string
	staged map[string]string
}

func (r *memRow) Get(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.staged != nil {
		if v, ok := r.staged[key]; ok {
			return v
		}
	}
	return r.values[key]
}

func (r *memRow) Set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.staged == nil {
		r.staged = make(map[string]string)
	}
	r.staged[key] = value
}

func (r *memRow) Save(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range r.staged {
		r.values[k] = v
	}
	r.staged = nil
	return nil
}

func (r *memRow) Delete(_ context.Context) error {
	r.sheet.remove(r)
	return nil
}
