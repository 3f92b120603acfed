// Package session owns the durable authentication state for the client.
package session

import (
	"github.com/peterbourgon/diskv/v3"
)

// tokenKey is the single storage key for the session token. Login writes it,
// logout and the gateway's 401 policy clear it; everyone must agree on the
// name.
const tokenKey = "authToken"

// Store is the single source of truth for "is this client authenticated".
// The token is held verbatim, in whatever wire-ready form the server issued.
type Store interface {
	Token() string
	SetToken(token string) error
	Clear() error
	IsAuthenticated() bool
}

// Open returns a Store persisted under basePath. The token survives process
// restarts; no expiry is tracked client-side, a dead token is discovered
// reactively through a 401.
func Open(basePath string) Store {
	return &diskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024,
	})}
}

type diskStore struct {
	d *diskv.Diskv
}

func (s *diskStore) Token() string {
	val, err := s.d.Read(tokenKey)
	if err != nil {
		return ""
	}
	return string(val)
}

func (s *diskStore) SetToken(token string) error {
	return s.d.Write(tokenKey, []byte(token))
}

func (s *diskStore) Clear() error {
	if !s.d.Has(tokenKey) {
		return nil
	}
	return s.d.Erase(tokenKey)
}

func (s *diskStore) IsAuthenticated() bool {
	return s.Token() != ""
}
