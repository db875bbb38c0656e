package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// OAuth scopes required by the store and the Drive permission check.
const (
	ScopeSpreadsheets  = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"
)

var (
	ErrServiceAccountRequired = errors.New("service account email and private key are required")
	ErrSpreadsheetIDRequired  = errors.New("spreadsheet id is required")
)

// NewGoogleClient builds an HTTP client authenticated as the service account.
// Private keys pasted into env files often carry literal \n sequences; those
// are normalized here.
func NewGoogleClient(ctx context.Context, email, privateKey string) (*http.Client, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(privateKey) == "" {
		return nil, ErrServiceAccountRequired
	}

	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
		Scopes:     []string{ScopeSpreadsheets, ScopeDriveReadonly},
		TokenURL:   google.JWTTokenURL,
	}
	return conf.Client(ctx), nil
}

// GoogleStore is a Store backed by the Google Sheets API v4.
type GoogleStore struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleStore creates a store addressing a single spreadsheet document.
func NewGoogleStore(ctx context.Context, client *http.Client, spreadsheetID string) (*GoogleStore, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, ErrSpreadsheetIDRequired
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &GoogleStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Sheet resolves a tab by title, case-insensitively. Metadata is loaded on
// every call so stale row counts never mask freshly added tabs.
func (g *GoogleStore) Sheet(ctx context.Context, title string) (Sheet, error) {
	meta, err := g.svc.Spreadsheets.Get(g.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("load spreadsheet metadata: %w", err)
	}

	available := make([]string, 0, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			available = append(available, sh.Properties.Title)
		}
	}

	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return &googleSheet{store: g, title: sh.Properties.Title, sheetID: sh.Properties.SheetId}, nil
		}
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && strings.EqualFold(sh.Properties.Title, title) {
			return &googleSheet{store: g, title: sh.Properties.Title, sheetID: sh.Properties.SheetId}, nil
		}
	}

	return nil, &SheetNotFoundError{Title: title, Available: available}
}

// googleSheet is one tab of the remote spreadsheet. Row handles carry grid
// indexes captured at load time; deletes within one load shift later rows, so
// the sheet keeps a ledger of deleted indexes and adjusts.
type googleSheet struct {
	store   *GoogleStore
	title   string
	sheetID int64

	mu      sync.Mutex
	header  []string
	deleted []int64
}

func (s *googleSheet) rangeAll() string {
	return fmt.Sprintf("'%s'!A:Z", s.title)
}

func (s *googleSheet) Rows(ctx context.Context) ([]Row, error) {
	resp, err := s.store.svc.Spreadsheets.Values.Get(s.store.spreadsheetID, s.rangeAll()).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("load rows of %q: %w", s.title, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleted = nil
	if len(resp.Values) == 0 {
		s.header = nil
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = cellString(cell)
	}
	s.header = header

	rows := make([]Row, 0, len(resp.Values)-1)
	for i := 1; i < len(resp.Values); i++ {
		values := make(map[string]string, len(header))
		for j, col := range header {
			if j < len(resp.Values[i]) {
				values[col] = cellString(resp.Values[i][j])
			} else {
				values[col] = ""
			}
		}
		rows = append(rows, &googleRow{sheet: s, gridIndex: int64(i), values: values})
	}
	return rows, nil
}

func (s *googleSheet) Append(ctx context.Context, rows []map[string]string) error {
	header, err := s.loadHeader(ctx)
	if err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		line := make([]interface{}, len(header))
		for i, col := range header {
			line[i] = row[col]
		}
		values = append(values, line)
	}

	_, err = s.store.svc.Spreadsheets.Values.Append(s.store.spreadsheetID, s.rangeAll(),
		&sheetsapi.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append rows to %q: %w", s.title, err)
	}
	return nil
}

func (s *googleSheet) loadHeader(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	if s.header != nil {
		header := s.header
		s.mu.Unlock()
		return header, nil
	}
	s.mu.Unlock()

	resp, err := s.store.svc.Spreadsheets.Values.Get(s.store.spreadsheetID,
		fmt.Sprintf("'%s'!1:1", s.title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("load header of %q: %w", s.title, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", s.title)
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = cellString(cell)
	}

	s.mu.Lock()
	s.header = header
	s.mu.Unlock()
	return header, nil
}

// adjustedIndexLocked maps a load-time grid index to the current one given
// the deletes applied since the load. Caller holds s.mu.
func (s *googleSheet) adjustedIndexLocked(gridIndex int64) int64 {
	var shift int64
	for _, d := range s.deleted {
		if d < gridIndex {
			shift++
		}
	}
	return gridIndex - shift
}

type googleRow struct {
	sheet     *googleSheet
	gridIndex int64

	mu     sync.Mutex
	values map[string]string
	staged map[string]string
}

func (r *googleRow) Get(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.staged != nil {
		if v, ok := r.staged[key]; ok {
			return v
		}
	}
	return r.values[key]
}

func (r *googleRow) Set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.staged == nil {
		r.staged = make(map[string]string)
	}
	r.staged[key] = value
}

func (r *googleRow) Save(ctx context.Context) error {
	r.mu.Lock()
	for k, v := range r.staged {
		r.values[k] = v
	}
	r.staged = nil
	values := make(map[string]string, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	r.mu.Unlock()

	s := r.sheet
	s.mu.Lock()
	header := s.header
	idx := s.adjustedIndexLocked(r.gridIndex)
	s.mu.Unlock()

	line := make([]interface{}, len(header))
	for i, col := range header {
		line[i] = values[col]
	}

	a1 := fmt.Sprintf("'%s'!A%d:%s%d", s.title, idx+1, columnName(len(header)), idx+1)
	_, err := s.store.svc.Spreadsheets.Values.Update(s.store.spreadsheetID, a1,
		&sheetsapi.ValueRange{Values: [][]interface{}{line}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("save row in %q: %w", s.title, err)
	}
	return nil
}

func (r *googleRow) Delete(ctx context.Context) error {
	s := r.sheet
	s.mu.Lock()
	idx := s.adjustedIndexLocked(r.gridIndex)
	s.mu.Unlock()

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    s.sheetID,
					Dimension:  "ROWS",
					StartIndex: idx,
					EndIndex:   idx + 1,
				},
			},
		}},
	}
	if _, err := s.store.svc.Spreadsheets.BatchUpdate(s.store.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete row in %q: %w", s.title, err)
	}

	s.mu.Lock()
	s.deleted = append(s.deleted, r.gridIndex)
	s.mu.Unlock()
	return nil
}

func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}

func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
