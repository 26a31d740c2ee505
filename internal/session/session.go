package session

import (
	"context"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// Session is the auth state of one caller. It is created per request (or per
// CLI invocation) and handed to whatever serves it; nothing is shared
// between callers.
type Session struct {
	resolver    *Resolver
	source      TokenSource
	identity    *domain.Identity
	initialized bool
}

func NewSession(resolver *Resolver, source TokenSource) *Session {
	return &Session{resolver: resolver, source: source}
}

// FromIdentity builds a session that is already resolved, for callers that
// just obtained an identity from login.
func FromIdentity(id domain.Identity) *Session {
	return &Session{identity: &id, initialized: true}
}

// Init resolves the token once. Later calls return the cached outcome.
func (s *Session) Init(ctx context.Context) bool {
	if s.initialized {
		return s.identity != nil
	}
	s.initialized = true
	if s.resolver == nil {
		return false
	}
	s.identity, _ = s.resolver.Resolve(ctx, s.source)
	return s.identity != nil
}

func (s *Session) Initialized() bool { return s.initialized }

// Identity returns the resolved identity. It reports false before Init or
// when no valid session exists.
func (s *Session) Identity() (domain.Identity, bool) {
	if s == nil || s.identity == nil {
		return domain.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) Authenticated() bool {
	return s != nil && s.identity != nil
}

// Clear drops the resolved identity, as on logout.
func (s *Session) Clear() {
	s.identity = nil
	s.initialized = true
}
