package dashclient

import (
	"context"
	"sync"
)

// Session holds the client-side view of the authenticated identity: the
// user, the bearer token, and a loading flag covering initialization. It is
// constructed explicitly and injected where needed; there is no package
// global.
type Session struct {
	mu      sync.RWMutex
	client  *Client
	store   TokenStore
	user    *User
	token   string
	loading bool
}

// NewSession builds a session bound to the given client and token store.
func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store, loading: true}
}

// Init hydrates the session from a previously stored token. On any
// verification failure, including network errors, the stored token is
// discarded and the session stays unauthenticated; only store I/O failures
// are reported.
func (s *Session) Init(ctx context.Context) error {
	defer s.setLoading(false)

	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	user, err := s.client.Verify(ctx, token)
	if err != nil {
		return s.store.Clear()
	}

	s.setAuthenticated(user, token)
	return nil
}

// Login authenticates and persists the session token. The server-supplied
// message travels inside the returned *APIError.
func (s *Session) Login(ctx context.Context, email, password string) error {
	result, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.adopt(result)
}

// Signup registers a new account and persists the session token.
func (s *Session) Signup(ctx context.Context, data SignupData) error {
	result, err := s.client.Signup(ctx, data)
	if err != nil {
		return err
	}
	return s.adopt(result)
}

// Logout clears the in-memory identity and the stored token.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return s.store.Clear()
}

// IsAuthenticated reports whether both a user and a token are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != ""
}

// IsLoading reports whether initialization is still in flight.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns the authenticated user, possibly stale, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Client returns the API client the session was built with.
func (s *Session) Client() *Client {
	return s.client
}

// Token returns the current bearer token, or empty.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) adopt(result *AuthResult) error {
	if result.User == nil || result.Token == "" {
		return nil
	}
	s.setAuthenticated(result.User, result.Token)
	return s.store.Save(result.Token)
}

func (s *Session) setAuthenticated(user *User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
