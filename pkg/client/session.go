package client

import (
	"context"
	"errors"
	"sync"

	"github.com/doctorshift/marketplace-api/internal/models"
)

// SessionState is the lifecycle of the client-side session:
// Uninitialized -> Loading -> {Authenticated, Anonymous}.
type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionLoading
	SessionAuthenticated
	SessionAnonymous
)

func (s SessionState) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Localized messages shown when the backend sends no usable detail.
const (
	LoginFailedMessage  = "เข้าสู่ระบบไม่สำเร็จ"
	GenericErrorMessage = "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"
)

// Session is the single shared store for the authenticated identity. All
// mutation goes through Init, Login and Logout; views read it and subscribe
// to changes.
type Session struct {
	client *Client
	creds  CredentialStore

	mu          sync.Mutex
	state       SessionState
	user        *models.User
	subscribers []func(SessionState, *models.User)
}

func NewSession(c *Client, creds CredentialStore) *Session {
	return &Session{
		client: c,
		creds:  creds,
		state:  SessionUninitialized,
	}
}

// State returns the current state and, when authenticated, the identity.
func (s *Session) State() (SessionState, *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.user
}

// Subscribe registers a callback invoked after every state change and
// returns an unsubscribe func. Callbacks run outside the store's lock.
func (s *Session) Subscribe(fn func(SessionState, *models.User)) func() {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	idx := len(s.subscribers) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.subscribers[idx] = nil
		s.mu.Unlock()
	}
}

func (s *Session) setState(state SessionState, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	subs := make([]func(SessionState, *models.User), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		if fn != nil {
			fn(state, user)
		}
	}
}

// Init rebuilds the session from a persisted credential. With no stored
// token it settles on Anonymous immediately; otherwise it validates the
// token against /api/me, and on rejection tears the credential down
// silently rather than surfacing an error.
func (s *Session) Init(ctx context.Context) error {
	token, err := s.creds.Load()
	if err != nil || token == "" {
		s.setState(SessionAnonymous, nil)
		return err
	}

	s.client.SetToken(token)
	s.setState(SessionLoading, nil)

	user, err := s.client.Me(ctx)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == ErrTransport {
			// Backend unreachable: keep the credential, stay anonymous
			// for this run.
			s.setState(SessionAnonymous, nil)
			return err
		}
		// Expired or revoked credential.
		_ = s.creds.Clear()
		s.client.SetToken("")
		s.setState(SessionAnonymous, nil)
		return nil
	}

	s.setState(SessionAuthenticated, user)
	return nil
}

// Login authenticates and, on success, persists the credential and moves to
// Authenticated. On failure the session is left untouched and the returned
// message is the backend's detail, or a localized fallback.
func (s *Session) Login(ctx context.Context, email, password string) (ok bool, message string) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind != ErrTransport && apiErr.Message != "" {
			return false, apiErr.Message
		}
		return false, LoginFailedMessage
	}

	if err := s.creds.Save(resp.AccessToken); err != nil {
		return false, LoginFailedMessage
	}
	s.client.SetToken(resp.AccessToken)
	user := resp.User
	s.setState(SessionAuthenticated, &user)
	return true, ""
}

// Logout clears the persisted credential and resets to Anonymous. Purely
// local, never fails, no network call.
func (s *Session) Logout() {
	_ = s.creds.Clear()
	s.client.SetToken("")
	s.setState(SessionAnonymous, nil)
}
