package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/api/middleware"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

type stubAppointmentService struct {
	created ports.CreateAppointmentInput
	updated ports.UpdateAppointmentInput
	actor   domain.Identity
	list    []*domain.Appointment
	err     error
}

func (s *stubAppointmentService) List(_ context.Context, actor domain.Identity) ([]*domain.Appointment, error) {
	s.actor = actor
	return s.list, s.err
}

func (s *stubAppointmentService) Create(_ context.Context, actor domain.Identity, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	s.actor, s.created = actor, in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Appointment{ID: "appt-1", PatientID: actor.ID, DoctorID: in.DoctorID, Date: in.Date, Status: domain.AppointmentScheduled}, nil
}

func (s *stubAppointmentService) Update(_ context.Context, actor domain.Identity, id string, in ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	s.actor, s.updated = actor, in
	if s.err != nil {
		return nil, s.err
	}
	a := &domain.Appointment{ID: id, Status: domain.AppointmentScheduled}
	if in.Status != nil {
		a.Status = domain.AppointmentStatus(*in.Status)
	}
	return a, nil
}

type stubResourceService struct {
	lastType string
	input    ports.ResourceInput
	deleted  string
	err      error
}

func (s *stubResourceService) List(_ context.Context, t string) ([]*domain.HospitalResource, error) {
	s.lastType = t
	return nil, s.err
}

func (s *stubResourceService) Create(_ context.Context, in ports.ResourceInput) (*domain.HospitalResource, error) {
	s.input = in
	return &domain.HospitalResource{ID: "res-1", Name: in.Name, Type: domain.ResourceType(in.Type), Total: in.Total, Available: in.Available}, s.err
}

func (s *stubResourceService) Update(_ context.Context, id string, in ports.ResourceInput) (*domain.HospitalResource, error) {
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.HospitalResource{ID: id, Name: in.Name}, nil
}

func (s *stubResourceService) Delete(_ context.Context, id string) error {
	s.deleted = id
	return s.err
}

type stubReportService struct {
	input ports.CreateReportInput
	list  []*domain.MedicalReport
}

func (s *stubReportService) List(context.Context, domain.Identity) ([]*domain.MedicalReport, error) {
	return s.list, nil
}

func (s *stubReportService) Create(_ context.Context, actor domain.Identity, in ports.CreateReportInput) (*domain.MedicalReport, error) {
	s.input = in
	return &domain.MedicalReport{ID: "rep-1", DoctorID: actor.ID, PatientID: in.PatientID, Title: in.Title}, nil
}

type stubApprover struct {
	pending  []domain.Profile
	approved string
}

func (s *stubApprover) ListPendingDoctors(context.Context) ([]domain.Profile, error) {
	return s.pending, nil
}

func (s *stubApprover) ApproveDoctor(_ context.Context, id string) (*domain.Profile, error) {
	if id == "missing" {
		return nil, domain.ErrUserNotFound
	}
	s.approved = id
	return &domain.Profile{Identity: domain.Identity{ID: id, Role: domain.RoleDoctor}, Approved: true}, nil
}

// withIdentity attaches a resolved session the way the guard does.
func withIdentity(c echo.Context, id domain.Identity) echo.Context {
	c.Set(middleware.SessionKey, session.FromIdentity(id))
	return c
}

var (
	patientID = domain.Identity{ID: "p1", Name: "Pat", Role: domain.RolePatient}
	doctorID  = domain.Identity{ID: "d1", Name: "Doc", Role: domain.RoleDoctor}
	adminID   = domain.Identity{ID: "a1", Name: "Adm", Role: domain.RoleAdmin}
)

func TestAppointmentHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubAppointmentService{}
	h := NewAppointmentHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"doctor":"d1","date":"2026-03-01","time":"10:00","reason":"checkup"}`
	c := withIdentity(e.NewContext(jsonRequest(http.MethodPost, "/api/appointments", body), rec), patientID)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.actor != patientID {
		t.Fatalf("actor not passed through: %+v", svc.actor)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !svc.created.Date.Equal(want) || svc.created.DoctorID != "d1" || svc.created.Reason != "checkup" {
		t.Fatalf("unexpected input: %+v", svc.created)
	}
}

func TestAppointmentHandler_Create_Validation(t *testing.T) {
	e := newTestEcho()
	h := NewAppointmentHandler(&stubAppointmentService{})

	for _, body := range []string{
		`{"date":"2026-03-01","time":"10:00","reason":"x"}`,
		`{"doctor":"d1","date":"tomorrow","time":"10:00","reason":"x"}`,
		`{"doctor":"d1","date":"2026-03-01","time":"10:00","reason":"x","duration":-1}`,
	} {
		c := withIdentity(e.NewContext(jsonRequest(http.MethodPost, "/api/appointments", body), httptest.NewRecorder()), patientID)
		if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestAppointmentHandler_List_EmptyIsArray(t *testing.T) {
	e := newTestEcho()
	h := NewAppointmentHandler(&stubAppointmentService{})

	rec := httptest.NewRecorder()
	c := withIdentity(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/appointments", nil), rec), doctorID)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestAppointmentHandler_Update(t *testing.T) {
	e := newTestEcho()
	svc := &stubAppointmentService{}
	h := NewAppointmentHandler(svc)

	rec := httptest.NewRecorder()
	c := withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/appointments/appt-1", `{"status":"completed","notes":"ok"}`), rec), doctorID)
	c.SetParamNames("id")
	c.SetParamValues("appt-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.updated.Status == nil || *svc.updated.Status != "completed" || svc.updated.Notes == nil || *svc.updated.Notes != "ok" {
		t.Fatalf("unexpected update input: %+v", svc.updated)
	}

	c = withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/appointments/appt-1", `{"status":"lost"}`), httptest.NewRecorder()), doctorID)
	if err := h.Update(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	svc.err = domain.ErrForbidden
	c = withIdentity(e.NewContext(jsonRequest(http.MethodPut, "/api/appointments/appt-1", `{"status":"cancelled"}`), httptest.NewRecorder()), patientID)
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAppointmentHandler_RequiresIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewAppointmentHandler(&stubAppointmentService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/appointments", nil), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestResourceHandler_CRUD(t *testing.T) {
	e := newTestEcho()
	svc := &stubResourceService{}
	h := NewResourceHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/hospital-resources?type=bed", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if svc.lastType != "bed" || rec.Body.String() != "[]\n" {
		t.Fatalf("unexpected list: type=%q body=%q", svc.lastType, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPost, "/api/hospital-resources", `{"name":"Ventilator","type":"equipment","total":5,"available":3}`), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated || svc.input.Total != 5 || svc.input.Available != 3 {
		t.Fatalf("unexpected create: %d %+v", rec.Code, svc.input)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/hospital-resources", `{"name":"X","type":"spaceship"}`), httptest.NewRecorder())
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/hospital-resources/res-1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("res-1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusNoContent || svc.deleted != "res-1" {
		t.Fatalf("unexpected delete: %d %q", rec.Code, svc.deleted)
	}

	svc.err = domain.ErrNotFound
	c = e.NewContext(jsonRequest(http.MethodPut, "/api/hospital-resources/nope", `{"name":"X","type":"bed"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := h.Update(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReportHandler_Create(t *testing.T) {
	e := newTestEcho()
	svc := &stubReportService{}
	h := NewReportHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"patient":"p1","title":"MRI","type":"mri","fileUrl":"https://files/1","date":"2026-02-02T09:00:00Z"}`
	c := withIdentity(e.NewContext(jsonRequest(http.MethodPost, "/api/medical-reports", body), rec), doctorID)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.input.FileURL != "https://files/1" || svc.input.Date.IsZero() {
		t.Fatalf("unexpected input: %+v", svc.input)
	}

	c = withIdentity(e.NewContext(jsonRequest(http.MethodPost, "/api/medical-reports", `{"patient":"p1","title":"MRI"}`), httptest.NewRecorder()), doctorID)
	if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAdminHandler(t *testing.T) {
	e := newTestEcho()
	approver := &stubApprover{pending: []domain.Profile{{Identity: domain.Identity{ID: "d9", Role: domain.RoleDoctor}}}}
	h := NewAdminHandler(approver, zerolog.Nop())

	rec := httptest.NewRecorder()
	c := withIdentity(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/doctors/pending", nil), rec), adminID)
	if err := h.PendingDoctors(c); err != nil {
		t.Fatalf("PendingDoctors: %v", err)
	}
	var pending []domain.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil || len(pending) != 1 || pending[0].ID != "d9" {
		t.Fatalf("unexpected pending list: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	c = withIdentity(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/admin/doctors/d9/approve", nil), rec), adminID)
	c.SetParamNames("id")
	c.SetParamValues("d9")
	if err := h.ApproveDoctor(c); err != nil {
		t.Fatalf("ApproveDoctor: %v", err)
	}
	if approver.approved != "d9" || rec.Code != http.StatusOK {
		t.Fatalf("doctor not approved: %q %d", approver.approved, rec.Code)
	}

	c = withIdentity(e.NewContext(httptest.NewRequest(http.MethodPost, "/api/admin/doctors/missing/approve", nil), httptest.NewRecorder()), adminID)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.ApproveDoctor(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
