// Package sessions provides Google social login and cookie-backed sessions.
package sessions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/auth/v2"
	"github.com/go-pkgz/auth/v2/avatar"
	"github.com/go-pkgz/auth/v2/token"

	"sheetr/models"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSecretRequired = errors.New("auth secret is required")
	ErrClientRequired = errors.New("google client id and secret are required")
)

// Config carries everything needed to run the login flow.
type Config struct {
	Secret       string // JWT signing secret
	Issuer       string
	URL          string // externally visible base URL for OAuth callbacks
	ClientID     string
	ClientSecret string
	AvatarDir    string
	TokenTTL     time.Duration
	CookieTTL    time.Duration
}

// Service wraps the auth stack: JWT cookie sessions with Google as the
// social provider. It exposes "current user or none" to the handlers.
type Service struct {
	auth *auth.Service
}

// NewService builds the session service and registers the Google provider.
func NewService(cfg Config) (*Service, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, ErrClientRequired
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}
	if cfg.CookieTTL <= 0 {
		cfg.CookieTTL = 30 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "sheetr"
	}
	if cfg.AvatarDir == "" {
		cfg.AvatarDir = "cache/avatars"
	}

	svc := auth.NewService(auth.Opts{
		SecretReader: token.SecretFunc(func(string) (string, error) {
			return cfg.Secret, nil
		}),
		TokenDuration:  cfg.TokenTTL,
		CookieDuration: cfg.CookieTTL,
		Issuer:         cfg.Issuer,
		URL:            cfg.URL,
		AvatarStore:    avatar.NewLocalFS(cfg.AvatarDir),
		DisableXSRF:    true,
	})
	svc.AddProvider("google", cfg.ClientID, cfg.ClientSecret)

	return &Service{auth: svc}, nil
}

// Handlers returns the login/logout routes and the avatar proxy, to be
// mounted under /auth and /avatar.
func (s *Service) Handlers() (authRoutes http.Handler, avatarRoutes http.Handler) {
	return s.auth.Handlers()
}

// User returns the authenticated user for the request, or ErrNoSession.
func (s *Service) User(r *http.Request) (models.SessionUser, error) {
	u, err := token.GetUserInfo(r)
	if err != nil {
		return models.SessionUser{}, ErrNoSession
	}
	return models.SessionUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Picture: u.Picture,
	}, nil
}
