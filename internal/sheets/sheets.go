// Package sheets defines the spreadsheet store contract the services are
// written against, with a Google Sheets implementation for production and an
// in-memory implementation for tests and demo mode.
package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Store resolves named sheet tabs on the backing spreadsheet.
type Store interface {
	// Sheet resolves a tab by title, case-insensitively. A missing tab yields
	// a *SheetNotFoundError carrying the available titles.
	Sheet(ctx context.Context, title string) (Sheet, error)
}

// Sheet is a single tab: an ordered sequence of rows under a header row.
type Sheet interface {
	// Rows returns the data rows in their current tab order.
	Rows(ctx context.Context) ([]Row, error)
	// Append inserts rows at the end of the existing data.
	Append(ctx context.Context, rows []map[string]string) error
}

// Row is a handle onto one sheet row. Set stages a field assignment; Save
// persists staged assignments. Handles become stale once the tab layout
// changes underneath them, so callers re-read rows before each mutation.
type Row interface {
	Get(key string) string
	Set(key, value string)
	Save(ctx context.Context) error
	Delete(ctx context.Context) error
}

// SheetNotFoundError reports a missing tab together with the tabs that do
// exist, so the operator can spot a renamed sheet immediately.
type SheetNotFoundError struct {
	Title     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found. Available: %s", e.Title, strings.Join(e.Available, ", "))
}

// Cell value conventions shared by all four tabs.
const (
	TrueValue  = "TRUE"
	FalseValue = "FALSE"
)

// Bool reports whether a cell holds the literal TRUE. Anything else,
// including "true", is false.
func Bool(s string) bool { return s == TrueValue }

// FormatBool renders a bool in the sheet's literal convention.
func FormatBool(b bool) string {
	if b {
		return TrueValue
	}
	return FalseValue
}

// Int parses a numeric cell. Non-numeric input yields zero; it is surfaced
// as a display defect rather than rejected.
func Int(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Float parses a numeric cell, zero on failure.
func Float(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
