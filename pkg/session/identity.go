package session

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrNoToken means no session token is stored.
	ErrNoToken = errors.New("session: no token stored")
	// ErrNoSubject means the stored token carries no subject claim.
	ErrNoSubject = errors.New("session: token carries no subject claim")
)

// Identity extracts the subject claim (the account email) from the stored
// token. The token may include a scheme prefix ("Bearer eyJ…"); only the JWT
// part is decoded. The signature is not verified client-side.
func Identity(s Store) (string, error) {
	raw := s.Token()
	if raw == "" {
		return "", ErrNoToken
	}
	if i := strings.LastIndexByte(raw, ' '); i >= 0 {
		raw = raw[i+1:]
	}
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrNoSubject
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}
