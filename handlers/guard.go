package handlers

import (
	"context"
	"net/http"

	"sheetr/models"
	"sheetr/services/access"
	"sheetr/services/sessions"
)

type sessionReader interface {
	User(r *http.Request) (models.SessionUser, error)
}

type accessChecker interface {
	Allowed(ctx context.Context, email string) bool
}

var (
	_ sessionReader = (*sessions.Service)(nil)
	_ accessChecker = (*access.Service)(nil)
)

// AuthGuard gates mutating endpoints: a session is required, and the session
// email must hold write permission on the backing spreadsheet. Failures
// redirect to the home route with a coarse error code.
type AuthGuard struct {
	sessions sessionReader
	access   accessChecker
	open     bool
}

// NewAuthGuard creates a guard over the session and access services.
func NewAuthGuard(sessions sessionReader, access accessChecker) *AuthGuard {
	return &AuthGuard{sessions: sessions, access: access}
}

// NewOpenGuard creates a guard that admits everything. Demo mode only.
func NewOpenGuard() *AuthGuard {
	return &AuthGuard{open: true}
}

// RequireEditor wraps a mutating handler with the authorization check.
func (g *AuthGuard) RequireEditor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if g.open {
			next(w, r)
			return
		}

		user, err := g.sessions.User(r)
		if err != nil {
			http.Redirect(w, r, "/?error=unauthorized", http.StatusFound)
			return
		}
		if g.access == nil || !g.access.Allowed(r.Context(), user.Email) {
			http.Redirect(w, r, "/?error=forbidden", http.StatusFound)
			return
		}
		next(w, r)
	}
}
