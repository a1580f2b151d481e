package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/polygame/internal/client/client"
	"github.com/dmitrijs2005/polygame/internal/client/models"
	"github.com/dmitrijs2005/polygame/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/polygame/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Storage keys of the persisted session.
const (
	TokenKey = "token"
	UserKey  = "user"
)

const (
	registerFailed = "Registration failed"
	loginFailed    = "Login failed"
)

// SessionState is a point-in-time copy of the session.
type SessionState struct {
	Token         string
	User          *models.UserProfile
	Authenticated bool
}

// SessionStore holds the authenticated session (bearer token and user
// profile) and keeps it mirrored in durable storage, so that a restarted
// client resumes the session it had.
//
// The session is authenticated exactly when the token is non-empty. The
// token is never validated or refreshed locally; an expired token stays
// until Logout.
type SessionStore struct {
	api  client.Client
	repo metadata.Repository
	log  logging.Logger

	// writeMu serializes mutations from the storage write through the
	// in-memory update, so storage and memory agree after every operation.
	writeMu sync.Mutex

	mu    sync.RWMutex
	token string
	user  *models.UserProfile

	observers observers[SessionState]
}

// NewSessionStore restores the session persisted in repo. A missing token or
// user is an empty session; a stored user that cannot be decoded is logged
// and treated as absent. Only storage read failures are returned.
func NewSessionStore(ctx context.Context, api client.Client, repo metadata.Repository, log logging.Logger) (*SessionStore, error) {
	s := &SessionStore{api: api, repo: repo, log: log.With("store", "session")}

	token, err := repo.Get(ctx, TokenKey)
	if err != nil {
		return nil, fmt.Errorf("restore session token: %w", err)
	}
	rawUser, err := repo.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("restore session user: %w", err)
	}

	s.token = string(token)
	if rawUser != nil {
		var u *models.UserProfile
		if err := json.Unmarshal(rawUser, &u); err != nil {
			s.log.Warn(ctx, "stored user is corrupt, ignoring", "error", err)
		} else {
			s.user = u
		}
	}
	return s, nil
}

// Register creates an account and, on success, establishes and persists the
// session returned by the server.
func (s *SessionStore) Register(ctx context.Context, username, email, password string) Result {
	body := models.RegisterRequest{Username: username, Email: email, Password: password}
	return s.authenticate(ctx, "/auth/register", body, registerFailed)
}

// Login exchanges credentials for a session.
func (s *SessionStore) Login(ctx context.Context, username, password string) Result {
	body := models.LoginRequest{Username: username, Password: password}
	return s.authenticate(ctx, "/auth/login", body, loginFailed)
}

func (s *SessionStore) authenticate(ctx context.Context, path string, body any, fallback string) Result {
	var resp models.AuthResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodPost, Path: path, Body: body}, &resp); err != nil {
		s.log.Warn(ctx, "authentication rejected", "path", path, "error", err)
		return failed(client.MessageOr(err, fallback))
	}

	s.writeMu.Lock()
	// Storage first: a session that cannot be persisted is not established.
	if err := s.persist(ctx, resp.Token, resp.User); err != nil {
		s.writeMu.Unlock()
		s.log.Error(ctx, "persist session failed", "error", err)
		return failed(fallback)
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.observers.notify(st)
	return ok()
}

func (s *SessionStore) persist(ctx context.Context, token string, user *models.UserProfile) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.SetAll(ctx, map[string][]byte{
		TokenKey: []byte(token),
		UserKey:  rawUser,
	})
}

// Logout forgets the session locally and in storage. The server is not
// contacted. Storage failures are logged; the in-memory session is cleared
// regardless.
func (s *SessionStore) Logout(ctx context.Context) {
	s.writeMu.Lock()
	s.mu.Lock()
	s.token = ""
	s.user = nil
	st := s.snapshotLocked()
	s.mu.Unlock()

	err := s.repo.Delete(ctx, TokenKey, UserKey)
	s.writeMu.Unlock()

	if err != nil {
		s.log.Error(ctx, "clear stored session failed", "error", err)
	}
	s.observers.notify(st)
}

// FetchProfile refreshes the user profile from the server and persists it.
// Failures are logged and leave the session unchanged.
func (s *SessionStore) FetchProfile(ctx context.Context) {
	var resp models.ProfileResponse
	if err := s.api.Do(ctx, client.Request{Method: http.MethodGet, Path: "/user/profile"}, &resp); err != nil {
		s.log.Error(ctx, "fetch profile failed", "error", err)
		return
	}

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		s.log.Error(ctx, "encode profile failed", "error", err)
		return
	}
	s.writeMu.Lock()
	if err := s.repo.Set(ctx, UserKey, rawUser); err != nil {
		s.writeMu.Unlock()
		s.log.Error(ctx, "persist profile failed", "error", err)
		return
	}

	s.mu.Lock()
	s.user = resp.User
	st := s.snapshotLocked()
	s.mu.Unlock()
	s.writeMu.Unlock()

	s.observers.notify(st)
}

// IsAuthenticated reports whether a token is held.
func (s *SessionStore) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the bearer token, or "" when signed out. It satisfies
// client.TokenSource.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile or nil.
func (s *SessionStore) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionStore) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *SessionStore) snapshotLocked() SessionState {
	return SessionState{Token: s.token, User: s.user, Authenticated: s.token != ""}
}

// TokenExpiry reads the exp claim of the held token without verifying its
// signature. It is informational only and never affects IsAuthenticated.
func (s *SessionStore) TokenExpiry() (time.Time, bool) {
	tok := s.Token()
	if tok == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Subscribe registers fn to receive the session state after every change.
func (s *SessionStore) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	return s.observers.add(fn)
}
