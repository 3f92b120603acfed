package auth

import (
	"context"
)

// RequestReset starts the two-step password reset. The identifier is sent
// verbatim in the path slot the service exposes; the reset token itself is
// delivered out-of-band. Returns the server's message for display.
func (f *Flow) RequestReset(ctx context.Context, identifier string) (string, error) {
	var msg string
	if err := f.client.Post(ctx, "/password-reset/request/"+identifier, nil, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// CompleteReset consumes the delivered token together with the new password.
func (f *Flow) CompleteReset(ctx context.Context, token, newPassword string) (string, error) {
	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{Token: token, NewPassword: newPassword}
	var msg string
	if err := f.client.Post(ctx, "/password-reset/reset", body, &msg); err != nil {
		return "", err
	}
	return msg, nil
}
