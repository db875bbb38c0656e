// Package access answers "may this email write to the backing spreadsheet",
// backed by the Drive permission list of the spreadsheet file.
package access

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Permission is one entry of the spreadsheet file's sharing list.
type Permission struct {
	Email string
	Role  string
}

// Lister fetches the current sharing list of the spreadsheet file.
type Lister interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
}

// Roles on the file that allow writes.
var writeRoles = map[string]bool{
	"owner":     true,
	"writer":    true,
	"organizer": true,
}

type cacheEntry struct {
	allowed bool
	expires time.Time
}

// Service checks write permission with a short-lived per-email cache so every
// mutation does not hit the Drive API. A configured admin email is always
// allowed without a lookup. Lookup failures deny and are not cached.
type Service struct {
	lister     Lister
	adminEmail string
	ttl        time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewService creates an access service. A zero ttl disables caching.
func NewService(lister Lister, adminEmail string, ttl time.Duration) *Service {
	return &Service{
		lister:     lister,
		adminEmail: strings.TrimSpace(adminEmail),
		ttl:        ttl,
		cache:      make(map[string]cacheEntry),
	}
}

// Allowed reports whether the email holds write-capable permission.
func (s *Service) Allowed(ctx context.Context, email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	if s.adminEmail != "" && strings.EqualFold(email, s.adminEmail) {
		return true
	}

	if s.ttl > 0 {
		s.mu.Lock()
		entry, ok := s.cache[email]
		s.mu.Unlock()
		if ok && time.Now().Before(entry.expires) {
			return entry.allowed
		}
	}

	if s.lister == nil {
		return false
	}

	permissions, err := s.lister.ListPermissions(ctx)
	if err != nil {
		slog.Warn("drive permission lookup failed", "error", err)
		return false
	}

	allowed := false
	for _, p := range permissions {
		if p.Email == email && writeRoles[p.Role] {
			allowed = true
			break
		}
	}

	if s.ttl > 0 {
		s.mu.Lock()
		s.cache[email] = cacheEntry{allowed: allowed, expires: time.Now().Add(s.ttl)}
		s.mu.Unlock()
	}
	return allowed
}
