package access

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

var ErrFileIDRequired = errors.New("spreadsheet file id is required")

// DriveLister reads the sharing list of the spreadsheet file via the Drive
// API, using the same service-account client as the sheet store.
type DriveLister struct {
	svc    *drive.Service
	fileID string
}

// NewDriveLister creates a lister for the given spreadsheet file.
func NewDriveLister(ctx context.Context, client *http.Client, fileID string) (*DriveLister, error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, ErrFileIDRequired
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveLister{svc: svc, fileID: fileID}, nil
}

// ListPermissions returns the file's sharing entries with email and role.
func (l *DriveLister) ListPermissions(ctx context.Context) ([]Permission, error) {
	resp, err := l.svc.Permissions.List(l.fileID).
		Fields("permissions(emailAddress,role)").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}

	permissions := make([]Permission, 0, len(resp.Permissions))
	for _, p := range resp.Permissions {
		permissions = append(permissions, Permission{Email: p.EmailAddress, Role: p.Role})
	}
	return permissions, nil
}
