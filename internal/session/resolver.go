package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// TokenVerifier is the part of the token service the resolver needs.
type TokenVerifier interface {
	Verify(token string) (ports.TokenClaims, error)
}

// UserFinder looks users up by subject id.
type UserFinder interface {
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver maps a presented token to the current Identity of its subject.
type Resolver struct {
	tokens TokenVerifier
	users  UserFinder
	log    zerolog.Logger
}

func NewResolver(tokens TokenVerifier, users UserFinder, log zerolog.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, log: log}
}

// Resolve reads the token from src. A missing token, a token that fails
// verification and a subject that no longer exists all yield (nil, false).
func (r *Resolver) Resolve(ctx context.Context, src TokenSource) (*domain.Identity, bool) {
	if src == nil {
		return nil, false
	}
	raw, err := src.Token(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			r.log.Warn().Err(err).Msg("read session token")
		}
		return nil, false
	}
	return r.ResolveToken(ctx, raw)
}

func (r *Resolver) ResolveToken(ctx context.Context, raw string) (*domain.Identity, bool) {
	if raw == "" {
		return nil, false
	}

	claims, err := r.tokens.Verify(raw)
	if err != nil {
		r.log.Debug().Err(err).Msg("session token rejected")
		return nil, false
	}

	user, err := r.users.FindUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			r.log.Debug().Str("user_id", claims.Subject).Msg("session subject no longer exists")
		} else {
			r.log.Error().Err(err).Str("user_id", claims.Subject).Msg("session user lookup failed")
		}
		return nil, false
	}

	id := user.Identity()
	return &id, true
}
