package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]string
	seq     int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User), byEmail: make(map[string]string)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors the unique index on email.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[c.ID] = c
	r.byEmail[c.Email] = c.ID
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := cloneUser(u)
	c.PasswordHash = ""
	return c, nil
}

func (r *stubUserRepo) ListPendingDoctors(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		if u.Role == domain.RoleDoctor && !u.Approved {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) SetApproved(_ context.Context, id string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Approved = approved
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type stubAppointmentRepo struct {
	items map[string]*domain.Appointment
	seq   int
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{items: make(map[string]*domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.seq++
	c := *a
	c.ID = fmt.Sprintf("appt-%d", r.seq)
	r.items[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubAppointmentRepo) List(_ context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.items {
		if f.PatientID != "" && a.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != "" && a.DoctorID != f.DoctorID {
			continue
		}
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	if _, ok := r.items[a.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *a
	r.items[a.ID] = &c
	return nil
}

type stubResourceRepo struct {
	items map[string]*domain.HospitalResource
	seq   int
}

func newStubResourceRepo() *stubResourceRepo {
	return &stubResourceRepo{items: make(map[string]*domain.HospitalResource)}
}

func (r *stubResourceRepo) Create(_ context.Context, res *domain.HospitalResource) (*domain.HospitalResource, error) {
	r.seq++
	c := *res
	c.ID = fmt.Sprintf("res-%d", r.seq)
	r.items[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubResourceRepo) FindByID(_ context.Context, id string) (*domain.HospitalResource, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *res
	return &c, nil
}

func (r *stubResourceRepo) List(_ context.Context, t domain.ResourceType) ([]*domain.HospitalResource, error) {
	var out []*domain.HospitalResource
	for _, res := range r.items {
		if t != "" && res.Type != t {
			continue
		}
		c := *res
		out = append(out, &c)
	}
	return out, nil
}

func (r *stubResourceRepo) Update(_ context.Context, res *domain.HospitalResource) error {
	if _, ok := r.items[res.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *res
	r.items[res.ID] = &c
	return nil
}

func (r *stubResourceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type stubReportRepo struct {
	items []*domain.MedicalReport
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.MedicalReport) (*domain.MedicalReport, error) {
	c := *rep
	c.ID = fmt.Sprintf("rep-%d", len(r.items)+1)
	r.items = append(r.items, &c)
	out := c
	return &out, nil
}

func (r *stubReportRepo) List(_ context.Context, f ports.ReportFilter) ([]*domain.MedicalReport, error) {
	var out []*domain.MedicalReport
	for _, rep := range r.items {
		if f.PatientID != "" && rep.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != "" && rep.DoctorID != f.DoctorID {
			continue
		}
		c := *rep
		out = append(out, &c)
	}
	return out, nil
}

type stubResetStore struct {
	tokens map[string]string
	ttl    time.Duration
}

func newStubResetStore() *stubResetStore {
	return &stubResetStore{tokens: make(map[string]string)}
}

func (s *stubResetStore) Save(_ context.Context, hash, userID string, ttl time.Duration) error {
	s.tokens[hash] = userID
	s.ttl = ttl
	return nil
}

func (s *stubResetStore) Consume(_ context.Context, hash string) (string, error) {
	id, ok := s.tokens[hash]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.tokens, hash)
	return id, nil
}

type stubNotifier struct {
	sent map[string]string // email -> token
}

func (n *stubNotifier) SendReset(_ context.Context, to domain.Identity, token string) error {
	if n.sent == nil {
		n.sent = make(map[string]string)
	}
	n.sent[to.Email] = token
	return nil
}

// newTestCredentialStore uses the minimum bcrypt cost to keep tests fast.
func newTestCredentialStore() (*CredentialStore, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewCredentialStore(repo, 4, zerolog.Nop()), repo
}

func mustCreateUser(ctx context.Context, s *CredentialStore, in ports.RegisterInput) *domain.User {
	u, err := s.CreateUser(ctx, in)
	if err != nil {
		panic(fmt.Sprintf("create user %s: %v", in.Email, err))
	}
	return u
}
