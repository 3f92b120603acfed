// Package auth drives the login, registration, and password reset flows
// against the trusted auth endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/session"
)

// Credentials is the login and signup payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ErrNotRegistered marks a login rejected with 401 so the UI can hint at
// registration instead of showing the generic failure message.
var ErrNotRegistered = errors.New("auth: not registered")

// Flow performs the auth operations. It is the only writer of the session
// token besides the gateway's 401 policy and an explicit logout.
type Flow struct {
	client  *api.Client
	session session.Store
}

// NewFlow binds the flow to the gateway client and the session store.
func NewFlow(client *api.Client, s session.Store) *Flow {
	return &Flow{client: client, session: s}
}

// Login exchanges credentials for a token and persists it. The write
// completes before Login returns, so navigation triggered by the caller
// observes an authenticated session.
func (f *Flow) Login(ctx context.Context, creds Credentials) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := f.client.Post(ctx, "/trusted/auth/login", creds, &resp); err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			// Any stale token was already cleared by the gateway policy.
			return fmt.Errorf("%w: %v", ErrNotRegistered, err)
		}
		return err
	}
	if resp.Token == "" {
		return errors.New("auth: login response carried no token")
	}
	return f.session.SetToken(resp.Token)
}

// Register creates an account. The session is untouched; the user logs in
// afterwards.
func (f *Flow) Register(ctx context.Context, creds Credentials) error {
	return f.client.Post(ctx, "/trusted/auth/signup", creds, nil)
}

// ResolveUserID exchanges the token's email claim for the numeric user id
// the entry endpoints are keyed by.
func (f *Flow) ResolveUserID(ctx context.Context, email string) (int64, error) {
	var resp struct {
		UserID int64 `json:"userId"`
	}
	q := url.Values{}
	q.Set("email", email)
	if err := f.client.Get(ctx, "/trusted/auth/email", q, &resp); err != nil {
		return 0, err
	}
	if resp.UserID == 0 {
		return 0, fmt.Errorf("auth: no user id for %s", email)
	}
	return resp.UserID, nil
}
