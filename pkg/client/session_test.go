package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doctorshift/marketplace-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testUser(role, approval string) models.User {
	return models.User{
		ID:             primitive.NewObjectID(),
		Email:          "doc@example.com",
		FirstName:      "Somchai",
		LastName:       "Prasert",
		Role:           role,
		ApprovalStatus: approval,
	}
}

func TestSessionLoginSuccess(t *testing.T) {
	user := testUser(models.RoleDoctor, models.ApprovalApproved)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "tok-123",
			"token_type":   "bearer",
			"user":         user,
		})
	}))
	defer srv.Close()

	creds := &MemoryCredentialStore{}
	session := NewSession(New(srv.URL), creds)

	ok, msg := session.Login(context.Background(), "doc@example.com", "secret")
	if !ok {
		t.Fatalf("login failed: %s", msg)
	}

	state, got := session.State()
	if state != SessionAuthenticated {
		t.Fatalf("expected authenticated, got %s", state)
	}
	if got == nil || got.Email != user.Email {
		t.Errorf("wrong identity in session: %+v", got)
	}
	if tok, _ := creds.Load(); tok != "tok-123" {
		t.Errorf("credential not persisted, got %q", tok)
	}
}

func TestSessionLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	}))
	defer srv.Close()

	creds := &MemoryCredentialStore{}
	session := NewSession(New(srv.URL), creds)

	ok, msg := session.Login(context.Background(), "doc@example.com", "wrong")
	if ok {
		t.Fatal("login should have failed")
	}
	if msg != "Invalid credentials" {
		t.Errorf("expected backend detail, got %q", msg)
	}

	state, user := session.State()
	if state == SessionAuthenticated || user != nil {
		t.Error("failed login must not authenticate the session")
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Errorf("failed login must not persist a credential, got %q", tok)
	}
}

func TestSessionLoginFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Error without a detail payload.
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	session := NewSession(New(srv.URL), &MemoryCredentialStore{})
	ok, msg := session.Login(context.Background(), "a@b.c", "x")
	if ok {
		t.Fatal("login should have failed")
	}
	if msg != LoginFailedMessage {
		t.Errorf("expected fallback %q, got %q", LoginFailedMessage, msg)
	}
}

func TestSessionLoginTransportError(t *testing.T) {
	// Point at a closed server so the request fails at the transport level.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	session := NewSession(New(srv.URL), &MemoryCredentialStore{})
	ok, msg := session.Login(context.Background(), "a@b.c", "x")
	if ok {
		t.Fatal("login should have failed")
	}
	if msg != LoginFailedMessage {
		t.Errorf("expected fallback %q, got %q", LoginFailedMessage, msg)
	}
}

func TestSessionLogoutAlwaysResets(t *testing.T) {
	creds := &MemoryCredentialStore{}
	creds.Save("stale-token")

	// No network call involved: the client points at nothing.
	session := NewSession(New("http://127.0.0.1:0"), creds)
	session.Logout()

	state, user := session.State()
	if state != SessionAnonymous || user != nil {
		t.Errorf("expected anonymous session, got %s", state)
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Errorf("credential not cleared, got %q", tok)
	}
}

func TestSessionInitWithoutCredential(t *testing.T) {
	session := NewSession(New("http://127.0.0.1:0"), &MemoryCredentialStore{})
	if err := session.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	state, _ := session.State()
	if state != SessionAnonymous {
		t.Errorf("expected anonymous, got %s", state)
	}
}

func TestSessionInitValidCredential(t *testing.T) {
	user := testUser(models.RoleDoctor, models.ApprovalPending)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("missing bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(user)
	}))
	defer srv.Close()

	creds := &MemoryCredentialStore{}
	creds.Save("tok-abc")
	session := NewSession(New(srv.URL), creds)

	if err := session.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	state, got := session.State()
	if state != SessionAuthenticated {
		t.Fatalf("expected authenticated, got %s", state)
	}
	if got.ApprovalStatus != models.ApprovalPending {
		t.Errorf("approval status lost: %+v", got)
	}
}

func TestSessionInitRejectedCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))
	defer srv.Close()

	creds := &MemoryCredentialStore{}
	creds.Save("expired-token")
	session := NewSession(New(srv.URL), creds)

	// Silent teardown: no error surfaces for an expired credential.
	if err := session.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	state, _ := session.State()
	if state != SessionAnonymous {
		t.Fatalf("expected anonymous, got %s", state)
	}
	if tok, _ := creds.Load(); tok != "" {
		t.Errorf("rejected credential must be cleared, got %q", tok)
	}
}

func TestSessionSubscribe(t *testing.T) {
	session := NewSession(New("http://127.0.0.1:0"), &MemoryCredentialStore{})

	var states []SessionState
	unsubscribe := session.Subscribe(func(s SessionState, _ *models.User) {
		states = append(states, s)
	})

	session.Logout()
	if len(states) != 1 || states[0] != SessionAnonymous {
		t.Fatalf("subscriber not notified, got %v", states)
	}

	unsubscribe()
	session.Logout()
	if len(states) != 1 {
		t.Error("unsubscribed callback still invoked")
	}
}
