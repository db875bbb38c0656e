package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"sheetr/handlers"
	"sheetr/models"
)

type fakeSessions struct {
	user models.SessionUser
	err  error
}

func (f *fakeSessions) User(*http.Request) (models.SessionUser, error) {
	return f.user, f.err
}

type fakeAccess struct {
	allowed map[string]bool
}

func (f *fakeAccess) Allowed(_ context.Context, email string) bool {
	return f.allowed[email]
}

func protectedProbe(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	guard := handlers.NewAuthGuard(
		&fakeSessions{err: http.ErrNoCookie},
		&fakeAccess{},
	)

	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/downlist", nil)
	rec := httptest.NewRecorder()
	guard.RequireEditor(protectedProbe(&called))(rec, req)

	if called {
		t.Fatal("expected protected handler not to run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?error=unauthorized" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGuardRedirectsWithoutWritePermission(t *testing.T) {
	guard := handlers.NewAuthGuard(
		&fakeSessions{user: models.SessionUser{Email: "reader@example.com"}},
		&fakeAccess{allowed: map[string]bool{"writer@example.com": true}},
	)

	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/downlist", nil)
	rec := httptest.NewRecorder()
	guard.RequireEditor(protectedProbe(&called))(rec, req)

	if called {
		t.Fatal("expected protected handler not to run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?error=forbidden" {
		t.Fatalf("unexpected redirect target: %q", loc)
	}
}

func TestGuardAdmitsAuthorizedEditor(t *testing.T) {
	guard := handlers.NewAuthGuard(
		&fakeSessions{user: models.SessionUser{Email: "writer@example.com"}},
		&fakeAccess{allowed: map[string]bool{"writer@example.com": true}},
	)

	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/downlist", nil)
	rec := httptest.NewRecorder()
	guard.RequireEditor(protectedProbe(&called))(rec, req)

	if !called {
		t.Fatal("expected protected handler to run")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
}

func TestOpenGuardAdmitsEverything(t *testing.T) {
	guard := handlers.NewOpenGuard()

	called := false
	req := httptest.NewRequest(http.MethodPost, "/api/downlist", nil)
	rec := httptest.NewRecorder()
	guard.RequireEditor(protectedProbe(&called))(rec, req)

	if !called {
		t.Fatal("expected protected handler to run in open mode")
	}
}
