// Package session turns a presented token into an Identity. The same Resolver
// serves the HTTP server, which reads the token from the request cookie, and
// the operator CLI, which reads it from a local cache file.
package session

import (
	"context"
	"errors"
	"net/http"
)

// CookieName is the cookie that carries the session token.
const CookieName = "auth_token"

// ErrNoToken is returned by a TokenSource that holds no token.
var ErrNoToken = errors.New("no session token")

// TokenSource yields the raw token presented by the caller.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CookieSource reads the token from an inbound request.
type CookieSource struct {
	req *http.Request
}

func FromRequest(r *http.Request) CookieSource {
	return CookieSource{req: r}
}

func (s CookieSource) Token(context.Context) (string, error) {
	if s.req == nil {
		return "", ErrNoToken
	}
	c, err := s.req.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", ErrNoToken
	}
	return c.Value, nil
}

// StaticSource is a fixed token, used after login before anything is cached.
type StaticSource string

func (s StaticSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}
