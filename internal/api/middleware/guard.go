package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/metrics"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

// SessionKey is the echo context key holding the request's *session.Session.
const SessionKey = "session"

const (
	LoginPath      = "/login"
	authAPIPrefix  = "/api/auth"
	decisionPublic = "public"
	decisionAllow  = "allow"
)

var publicPaths = map[string]struct{}{
	"/":                {},
	LoginPath:          {},
	"/register":        {},
	"/forgot-password": {},
}

// scopedPrefixes maps each role's dashboard namespace to the role that owns it.
var scopedPrefixes = func() map[string]domain.Role {
	m := make(map[string]domain.Role, len(domain.Roles))
	for _, r := range domain.Roles {
		m[r.Dashboard()] = r
	}
	return m
}()

// GuardConfig configures the Guard middleware.
type GuardConfig struct {
	// Skipper bypasses the guard entirely, e.g. for health probes and metrics.
	Skipper  echomiddleware.Skipper
	Resolver *session.Resolver
	Log      zerolog.Logger
}

// IsPublicPath reports whether path is reachable without a session.
func IsPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return path == authAPIPrefix || strings.HasPrefix(path, authAPIPrefix+"/")
}

// ScopedRole returns the role owning the dashboard namespace path belongs to.
// Paths outside every namespace are unscoped.
func ScopedRole(path string) (domain.Role, bool) {
	for prefix, role := range scopedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return role, true
		}
	}
	return "", false
}

// Guard classifies each request as public or protected. Every request gets a
// session in the context; protected ones must resolve it, and dashboard
// namespaces additionally require the owning role. Failures redirect and are
// never rendered as errors.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			path := req.URL.Path
			src := session.FromRequest(req)
			sess := session.NewSession(cfg.Resolver, src)
			c.Set(SessionKey, sess)

			if IsPublicPath(path) {
				metrics.GuardDecisionsTotal.WithLabelValues(decisionPublic).Inc()
				return next(c)
			}

			if _, err := src.Token(req.Context()); err != nil {
				return deny(c, cfg.Log, "no_token", LoginPath)
			}

			if !sess.Init(req.Context()) {
				return deny(c, cfg.Log, "invalid_session", LoginPath)
			}
			id, _ := sess.Identity()

			if owner, scoped := ScopedRole(path); scoped && owner != id.Role {
				dest := id.Role.Dashboard()
				if dest == "" {
					dest = LoginPath
				}
				return deny(c, cfg.Log.With().Str("user_id", id.ID).Str("role", string(id.Role)).Logger(), "misrouted", dest)
			}

			metrics.GuardDecisionsTotal.WithLabelValues(decisionAllow).Inc()
			return next(c)
		}
	}
}

func deny(c echo.Context, log zerolog.Logger, decision, location string) error {
	metrics.GuardDecisionsTotal.WithLabelValues(decision).Inc()
	log.Debug().
		Str("path", c.Request().URL.Path).
		Str("decision", decision).
		Str("location", location).
		Msg("request redirected")
	return c.Redirect(http.StatusTemporaryRedirect, location)
}

// SessionFrom returns the session the guard attached, or nil when the guard
// did not run for this request.
func SessionFrom(c echo.Context) *session.Session {
	s, _ := c.Get(SessionKey).(*session.Session)
	return s
}

// IdentityFrom returns the resolved identity of the caller. It resolves the
// session on first use, which is how public routes read an optional session.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	s := SessionFrom(c)
	if s == nil {
		return domain.Identity{}, false
	}
	if !s.Initialized() {
		s.Init(c.Request().Context())
	}
	return s.Identity()
}
