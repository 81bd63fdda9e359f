// Package session holds the authenticated state that used to live in a
// process-wide provider: the bearer token and the current user. A Session is
// passed explicitly to the services that need it; there are no ambient
// globals.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"trackr/internal/api"
	"trackr/internal/core"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSession      = errors.New("no stored session")
	ErrSessionExpired = errors.New("session expired")
)

// Session is the credential and profile for one authenticated user.
type Session struct {
	Token string
	User  core.User
}

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	SaveToken(ctx context.Context, token string) error
	LoadToken(ctx context.Context) (string, error)
	DeleteToken(ctx context.Context) error
}

// AuthAPI is the slice of the remote client used for authentication and
// profile management.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
	Signup(ctx context.Context, req api.SignupRequest) error
	Me(ctx context.Context, token string) (core.User, error)
	UploadProfilePicture(ctx context.Context, token, filename string, r io.Reader) (string, error)
}

// Manager creates, resumes and ends sessions. The store is optional; without
// one, sessions last a single process.
type Manager struct {
	api   AuthAPI
	store TokenStore
	now   func() time.Time
}

func NewManager(authAPI AuthAPI, store TokenStore) *Manager {
	return &Manager{
		api:   authAPI,
		store: store,
		now:   time.Now,
	}
}

// Login exchanges credentials for a token, persists it and loads the profile.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	res, err := m.api.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &Session{Token: res.Access}
	if res.User != nil {
		sess.User = *res.User
	} else {
		sess.User = m.fetchProfile(ctx, res.Access)
	}

	if m.store != nil {
		if err := m.store.SaveToken(ctx, res.Access); err != nil {
			slog.WarnContext(ctx, "Failed to persist session token", "error", err)
		}
	}
	return sess, nil
}

func (m *Manager) Signup(ctx context.Context, req api.SignupRequest) error {
	if err := m.api.Signup(ctx, req); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// Resume rebuilds a session from the persisted token. Tokens whose exp claim
// has passed are dropped and reported as expired.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	if m.store == nil {
		return nil, ErrNoSession
	}
	token, err := m.store.LoadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil, ErrNoSession
	}
	if tokenExpired(token, m.now()) {
		if err := m.store.DeleteToken(ctx); err != nil {
			slog.WarnContext(ctx, "Failed to drop expired token", "error", err)
		}
		return nil, ErrSessionExpired
	}
	return &Session{Token: token, User: m.fetchProfile(ctx, token)}, nil
}

// Logout drops the persisted token.
func (m *Manager) Logout(ctx context.Context) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.DeleteToken(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// UpdateProfilePicture uploads a new picture and refreshes the session's
// profile from the backend.
func (m *Manager) UpdateProfilePicture(ctx context.Context, sess *Session, filename string, r io.Reader) (string, error) {
	picURL, err := m.api.UploadProfilePicture(ctx, sess.Token, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	sess.User = m.fetchProfile(ctx, sess.Token)
	return picURL, nil
}

// fetchProfile loads the user profile, falling back to a placeholder when the
// endpoint is unavailable so that login still succeeds.
func (m *Manager) fetchProfile(ctx context.Context, token string) core.User {
	user, err := m.api.Me(ctx, token)
	if err != nil {
		slog.WarnContext(ctx, "Failed to fetch user profile", "error", err)
		return core.User{Username: "User"}
	}
	return user
}

// tokenExpired reports whether token is a JWT with an exp claim in the past.
// Claims are decoded without signature verification; the backend remains the
// authority on validity. Opaque tokens are assumed live.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
