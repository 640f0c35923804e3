// Package auth holds the visitor's sign-in state and the token helpers around it.
package auth

import (
	"context"
	"sync"
	"time"
)

// Status is where a session is in its sign-in lifecycle
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusLoading
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// TokenStore persists the token between loads
type TokenStore interface {
	Token() string
	SetToken(token string)
	ClearToken()
}

// UserFetcher resolves a token to its user
type UserFetcher interface {
	Me(ctx context.Context, token string) (*User, error)
}

// State is a snapshot of a session
type State struct {
	Status Status
	Token  string
	User   *User
}

// Session is explicit sign-in state with load, login and logout transitions
type Session struct {
	mu     sync.Mutex
	status Status
	user   *User
	store  TokenStore
	users  UserFetcher
	now    func() time.Time
}

// NewSession starts in Loading when a token is stored, else Unauthenticated.
// Call Load to settle it.
func NewSession(store TokenStore, users UserFetcher) *Session {
	s := &Session{store: store, users: users, now: time.Now}
	if store.Token() != "" {
		s.status = StatusLoading
	}
	return s
}

// Load resolves the stored token to a user. Any failure logs the session out.
func (s *Session) Load(ctx context.Context) State {
	s.mu.Lock()
	token := s.store.Token()
	if token == "" {
		s.status = StatusUnauthenticated
		s.user = nil
		st := s.stateLocked()
		s.mu.Unlock()
		return st
	}
	if claims, err := Inspect(token); err != nil || claims.Expired(s.now()) {
		s.logoutLocked()
		st := s.stateLocked()
		s.mu.Unlock()
		return st
	}
	s.status = StatusLoading
	s.mu.Unlock()

	user, err := s.users.Me(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	// a Logout or Login while the request was in flight wins
	if s.store.Token() != token {
		return s.stateLocked()
	}
	if err != nil {
		s.logoutLocked()
		return s.stateLocked()
	}
	s.status = StatusAuthenticated
	s.user = user
	return s.stateLocked()
}

// Login stores a new token and loads its user
func (s *Session) Login(ctx context.Context, token string) State {
	s.mu.Lock()
	s.store.SetToken(token)
	s.user = nil
	s.status = StatusLoading
	s.mu.Unlock()

	return s.Load(ctx)
}

// Logout forgets the token and user
func (s *Session) Logout() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutLocked()
	return s.stateLocked()
}

// State returns the current snapshot
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) logoutLocked() {
	s.store.ClearToken()
	s.user = nil
	s.status = StatusUnauthenticated
}

func (s *Session) stateLocked() State {
	return State{Status: s.status, Token: s.store.Token(), User: s.user}
}

// MemoryTokenStore keeps the token in memory
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStore creates a store holding token
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryTokenStore) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemoryTokenStore) ClearToken() {
	m.SetToken("")
}
