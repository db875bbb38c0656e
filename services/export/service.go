// Package export snapshots sheet contents to local JSON files, an
// operational backup for a store the server does not otherwise persist.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"sheetr/internal/sheets"
)

var (
	ErrStoreRequired     = errors.New("sheet store not provided")
	ErrDirectoryRequired = errors.New("export directory not provided")
)

// Service writes one JSON file per sheet into the configured directory.
type Service struct {
	fs      afero.Fs
	store   sheets.Store
	dir     string
	columns map[string][]string
	now     func() time.Time
}

// NewService creates an export service. columns maps each sheet title to its
// column set; the row contract exposes field lookup only, so the exporter
// must know which fields to dump.
func NewService(fs afero.Fs, store sheets.Store, dir string, columns map[string][]string) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirectoryRequired
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Service{fs: fs, store: store, dir: dir, columns: columns, now: time.Now}, nil
}

// Snapshot dumps the named sheets and returns the written file paths.
func (s *Service) Snapshot(ctx context.Context, titles []string) ([]string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	stamp := s.now().UTC().Format("20060102-150405")
	written := make([]string, 0, len(titles))

	for _, title := range titles {
		sheet, err := s.store.Sheet(ctx, title)
		if err != nil {
			return written, err
		}
		rows, err := sheet.Rows(ctx)
		if err != nil {
			return written, err
		}

		cols := s.columns[title]
		dump := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			record := make(map[string]string, len(cols))
			for _, col := range cols {
				record[col] = row.Get(col)
			}
			dump = append(dump, record)
		}

		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return written, fmt.Errorf("encode %q snapshot: %w", title, err)
		}

		path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.json", strings.ToLower(title), stamp))
		if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %q snapshot: %w", title, err)
		}
		written = append(written, path)
	}
	return written, nil
}
