package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/session"
)

func newTestFlow(t *testing.T, handler http.Handler) (*Flow, session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := session.Open(t.TempDir())
	client, err := api.New(srv.URL, s)
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}
	return NewFlow(client, s), s
}

func TestLoginStoresToken(t *testing.T) {
	flow, s := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/trusted/auth/login" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode creds: %v", err)
		}
		if creds.Email != "a@b.com" || creds.Password != "secret" {
			t.Errorf("creds = %+v", creds)
		}
		w.Write([]byte(`{"token":"abc123"}`))
	}))

	if err := flow.Login(context.Background(), Credentials{Email: "a@b.com", Password: "secret"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got := s.Token(); got != "abc123" {
		t.Fatalf("stored token = %q, want %q", got, "abc123")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated session after login")
	}
}

func TestLoginUnauthorizedClearsStaleToken(t *testing.T) {
	flow, s := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad credentials"}`, http.StatusUnauthorized)
	}))
	if err := s.SetToken("stale"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	err := flow.Login(context.Background(), Credentials{Email: "x@y.com", Password: "nope"})
	if !errors.Is(err, ErrNotRegistered) {
		t.Fatalf("err = %v, want ErrNotRegistered", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("stale token must be cleared on a 401 login")
	}
}

func TestLoginWithoutTokenInResponse(t *testing.T) {
	flow, s := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	if err := flow.Login(context.Background(), Credentials{Email: "a@b.com", Password: "p"}); err == nil {
		t.Fatalf("expected error for a token-less login response")
	}
	if s.IsAuthenticated() {
		t.Fatalf("no token must be stored")
	}
}

func TestRegisterLeavesSessionUntouched(t *testing.T) {
	flow, s := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trusted/auth/signup" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := flow.Register(context.Background(), Credentials{Email: "a@b.com", Password: "p"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("registration must not authenticate the session")
	}
}

func TestResolveUserID(t *testing.T) {
	flow, _ := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trusted/auth/email" || r.URL.Query().Get("email") != "a@b.com" {
			t.Errorf("%s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Write([]byte(`{"userId": 7}`))
	}))

	id, err := flow.ResolveUserID(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("ResolveUserID: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
}

func TestRequestReset(t *testing.T) {
	flow, _ := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/password-reset/request/a@b.com" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, "Reset token sent to your email")
	}))

	msg, err := flow.RequestReset(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	if msg != "Reset token sent to your email" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestCompleteReset(t *testing.T) {
	flow, _ := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/password-reset/reset" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body struct {
			Token       string `json:"token"`
			NewPassword string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Token != "tok-1" || body.NewPassword != "n3w" {
			t.Errorf("body = %+v", body)
		}
		io.WriteString(w, "Password updated")
	}))

	msg, err := flow.CompleteReset(context.Background(), "tok-1", "n3w")
	if err != nil {
		t.Fatalf("CompleteReset: %v", err)
	}
	if msg != "Password updated" {
		t.Fatalf("msg = %q", msg)
	}
}

func TestRequestResetFailureSurfacesError(t *testing.T) {
	flow, _ := newTestFlow(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such account"}`, http.StatusNotFound)
	}))

	if _, err := flow.RequestReset(context.Background(), "ghost@b.com"); !api.IsStatus(err, http.StatusNotFound) {
		t.Fatalf("err = %v, want 404 StatusError", err)
	}
}
