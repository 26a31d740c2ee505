package ports

import "time"

// TokenClaims is the verified payload of a session token.
type TokenClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed session tokens. Verify reports every
// failure as domain.ErrInvalidOrExpiredToken.
type TokenService interface {
	Issue(subjectID string) (string, error)
	Verify(token string) (TokenClaims, error)
}
