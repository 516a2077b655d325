// Package session owns the viewer's credentials: the opaque bearer token and
// the user record the backend returned with it. There is one session per
// process, constructed at startup and handed to whatever needs it; nothing
// else reads credential storage directly.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/citysafe/citysafe-go/internal/api"
	"github.com/citysafe/citysafe-go/internal/models"
)

// Saved is the persisted credential pair.
type Saved struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store persists credentials across runs. The zero Saved means logged out.
type Store interface {
	Load() (Saved, error)
	Save(Saved) error
	Clear() error
}

// Bootstrapper is the slice of the API client the session needs to validate
// itself.
type Bootstrapper interface {
	Me(ctx context.Context) (models.User, error)
}

type Session struct {
	mu    sync.RWMutex
	token string
	user  models.User
	store Store
}

// New builds a session from whatever the store holds. A load failure is not
// fatal: the session just starts logged out.
func New(store Store) *Session {
	s := &Session{store: store}
	if saved, err := store.Load(); err == nil {
		s.token = saved.Token
		s.user = saved.User
	}
	return s
}

// Token returns the current bearer token, empty when logged out. Session is
// the api.TokenSource for the gateway client.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetCredentials installs and persists a fresh login.
func (s *Session) SetCredentials(creds models.Credentials) error {
	s.mu.Lock()
	s.token = creds.Token
	s.user = creds.User
	s.mu.Unlock()
	return s.store.Save(Saved{Token: creds.Token, User: creds.User})
}

// Invalidate forgets the credentials in memory and on disk.
func (s *Session) Invalidate() error {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()
	return s.store.Clear()
}

// Expired reports whether the stored token carries an exp claim in the past.
// The claims are read without verifying the signature; verification is the
// backend's job, this only avoids sending a token known to be dead.
func (s *Session) Expired() bool {
	tok := s.Token()
	if tok == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		// Opaque non-JWT tokens pass through; the backend decides.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Bootstrap validates the stored token against the backend. A missing,
// expired, or rejected token clears the stored credentials and returns an
// AuthError so the caller can route to the login flow; a transport failure
// leaves them in place for the next attempt.
func (s *Session) Bootstrap(ctx context.Context, gw Bootstrapper) error {
	if !s.Authenticated() {
		return &api.AuthError{Message: "not logged in"}
	}
	if s.Expired() {
		_ = s.Invalidate()
		return &api.AuthError{Message: "session expired"}
	}

	user, err := gw.Me(ctx)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			_ = s.Invalidate()
		}
		return err
	}

	s.mu.Lock()
	s.user = user
	token := s.token
	s.mu.Unlock()
	return s.store.Save(Saved{Token: token, User: user})
}
