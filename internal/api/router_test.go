package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/handler"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/service"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

// memUsers is an in-memory ports.UserRepository with a unique email index.
type memUsers struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[string]*domain.User{}} }

func (m *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	m.seq++
	c := *u
	c.ID = "u" + strconv.Itoa(m.seq)
	m.users[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	c.PasswordHash = ""
	return &c, nil
}

func (m *memUsers) ListPendingDoctors(context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.User
	for _, u := range m.users {
		if u.Role == domain.RoleDoctor && !u.Approved {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memUsers) SetApproved(_ context.Context, id string, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Approved = approved
	return nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func newTestRouter() *echo.Echo {
	log := zerolog.Nop()
	store := service.NewCredentialStore(newMemUsers(), 4, log)
	tokens := service.NewTokenService("router-test-secret", time.Hour)

	return NewRouter(Dependencies{
		Auth:     service.NewAuthService(store, tokens, log),
		Approver: store,
		Resolver: session.NewResolver(tokens, store, log),
		Health: map[string]handler.Pinger{
			"mongodb": handler.PingFunc(func(context.Context) error { return nil }),
		},
		Cookie: handler.CookieOptions{TTL: time.Hour},
		Log:    log,
	})
}

func do(e *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerPatient(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/auth/register",
		`{"name":"Ann","email":"ann@example.com","password":"secret1"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("register did not set the session cookie")
	return nil
}

func TestRouter_OpsEndpointsSkipGuard(t *testing.T) {
	e := newTestRouter()

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(e, http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_AnonymousRedirects(t *testing.T) {
	e := newTestRouter()

	for _, path := range []string{"/patient-dashboard", "/profile", "/api/appointments"} {
		rec := do(e, http.MethodGet, path, "", nil)
		if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get(echo.HeaderLocation) != "/login" {
			t.Fatalf("%s: expected 307 to /login, got %d %q", path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	rec := do(e, http.MethodGet, "/api/auth/session", "", nil)
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"user":null}` {
		t.Fatalf("anonymous session: got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SignedInPatient(t *testing.T) {
	e := newTestRouter()
	cookie := registerPatient(t, e)

	rec := do(e, http.MethodGet, "/api/auth/session", "", cookie)
	var sess struct {
		User *domain.Identity `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &sess); err != nil || sess.User == nil {
		t.Fatalf("expected a session user, got %s", rec.Body.String())
	}
	if sess.User.Email != "ann@example.com" || sess.User.Role != domain.RolePatient {
		t.Fatalf("unexpected identity: %+v", sess.User)
	}

	rec = do(e, http.MethodGet, "/profile", "", cookie)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("profile: got %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/admin-dashboard", "", cookie)
	if rec.Code != http.StatusTemporaryRedirect || rec.Header().Get(echo.HeaderLocation) != "/patient-dashboard" {
		t.Fatalf("misrouted dashboard: got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	rec = do(e, http.MethodGet, "/api/admin/doctors/pending", "", cookie)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin api as patient: expected 403, got %d", rec.Code)
	}
}

func TestRouter_DomainErrorsUseEnvelope(t *testing.T) {
	e := newTestRouter()
	registerPatient(t, e)

	rec := do(e, http.MethodPost, "/api/auth/register",
		`{"name":"Ann","email":"ANN@example.com","password":"secret1"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"wrong"}`, nil)
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusUnauthorized || resp.Error != "invalid email or password" {
		t.Fatalf("login: got %d %+v", rec.Code, resp)
	}
}
