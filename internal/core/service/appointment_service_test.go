package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

type appointmentFixture struct {
	svc     *AppointmentService
	patient domain.Identity
	other   domain.Identity
	doctor  domain.Identity
	admin   domain.Identity
}

func newAppointmentFixture(t *testing.T) appointmentFixture {
	t.Helper()
	ctx := context.Background()
	creds, _ := newTestCredentialStore()

	patient := mustCreateUser(ctx, creds, ports.RegisterInput{Name: "P", Email: "p@example.com", Password: "pass123"})
	other := mustCreateUser(ctx, creds, ports.RegisterInput{Name: "Q", Email: "q@example.com", Password: "pass123"})
	doctor := mustCreateUser(ctx, creds, ports.RegisterInput{
		Name: "D", Email: "d@example.com", Password: "pass123", Role: "doctor",
		Specialization: "gp", LicenseNumber: "L-1",
	})
	admin := mustCreateUser(ctx, creds, ports.RegisterInput{Name: "A", Email: "a@example.com", Password: "pass123", Role: "admin"})

	return appointmentFixture{
		svc:     NewAppointmentService(newStubAppointmentRepo(), creds, zerolog.Nop()),
		patient: patient.Identity(),
		other:   other.Identity(),
		doctor:  doctor.Identity(),
		admin:   admin.Identity(),
	}
}

func (f appointmentFixture) book(t *testing.T, actor domain.Identity, patientID string) *domain.Appointment {
	t.Helper()
	a, err := f.svc.Create(context.Background(), actor, ports.CreateAppointmentInput{
		PatientID: patientID,
		DoctorID:  f.doctor.ID,
		Date:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Time:      "10:30",
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func TestAppointmentService_Create_PatientBooksForSelf(t *testing.T) {
	f := newAppointmentFixture(t)

	a := f.book(t, f.patient, f.other.ID)
	if a.PatientID != f.patient.ID {
		t.Fatalf("patient must book for themselves, got patient %q", a.PatientID)
	}
	if a.Status != domain.AppointmentScheduled {
		t.Fatalf("expected scheduled, got %s", a.Status)
	}
	if a.Duration != domain.DefaultAppointmentMinutes {
		t.Fatalf("expected default duration, got %d", a.Duration)
	}
}

func TestAppointmentService_Create_Rules(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := f.svc.Create(ctx, f.doctor, ports.CreateAppointmentInput{DoctorID: f.doctor.ID, Date: date, Time: "9:00", Reason: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("doctors cannot book, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.admin, ports.CreateAppointmentInput{DoctorID: f.doctor.ID, Date: date, Time: "9:00", Reason: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("admin must name a patient, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.patient, ports.CreateAppointmentInput{DoctorID: f.other.ID, Date: date, Time: "9:00", Reason: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("doctor must be a doctor account, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.patient, ports.CreateAppointmentInput{DoctorID: f.doctor.ID, Time: "9:00", Reason: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("date is required, got %v", err)
	}
	if _, err := f.svc.Create(ctx, f.patient, ports.CreateAppointmentInput{DoctorID: f.doctor.ID, Date: date, Time: "9:00", Reason: "x", Duration: -5}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("negative duration must fail, got %v", err)
	}

	a := f.book(t, f.admin, f.patient.ID)
	if a.PatientID != f.patient.ID {
		t.Fatalf("admin booking lost patient: %+v", a)
	}
}

func TestAppointmentService_List_ScopedByRole(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()

	f.book(t, f.patient, "")
	f.book(t, f.other, "")

	mine, _ := f.svc.List(ctx, f.patient)
	if len(mine) != 1 || mine[0].PatientID != f.patient.ID {
		t.Fatalf("patient should see only their appointment, got %d", len(mine))
	}
	doc, _ := f.svc.List(ctx, f.doctor)
	if len(doc) != 2 {
		t.Fatalf("doctor should see both bookings, got %d", len(doc))
	}
	all, _ := f.svc.List(ctx, f.admin)
	if len(all) != 2 {
		t.Fatalf("admin should see everything, got %d", len(all))
	}
	if _, err := f.svc.List(ctx, domain.Identity{ID: "x", Role: "nurse"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("unknown role must be forbidden, got %v", err)
	}
}

func TestAppointmentService_Update_Permissions(t *testing.T) {
	f := newAppointmentFixture(t)
	ctx := context.Background()
	a := f.book(t, f.patient, "")

	notes := "bring results"
	completed := string(domain.AppointmentCompleted)
	cancelled := string(domain.AppointmentCancelled)

	if _, err := f.svc.Update(ctx, f.patient, a.ID, ports.UpdateAppointmentInput{Notes: &notes}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("patients cannot write notes, got %v", err)
	}
	if _, err := f.svc.Update(ctx, f.patient, a.ID, ports.UpdateAppointmentInput{Status: &completed}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("patients can only cancel, got %v", err)
	}
	if _, err := f.svc.Update(ctx, f.other, a.ID, ports.UpdateAppointmentInput{Status: &cancelled}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("other patients cannot touch it, got %v", err)
	}

	updated, err := f.svc.Update(ctx, f.doctor, a.ID, ports.UpdateAppointmentInput{Notes: &notes, Status: &completed})
	if err != nil {
		t.Fatalf("doctor update failed: %v", err)
	}
	if updated.Notes != notes || updated.Status != domain.AppointmentCompleted {
		t.Fatalf("update not applied: %+v", updated)
	}

	bad := "postponed"
	if _, err := f.svc.Update(ctx, f.admin, a.ID, ports.UpdateAppointmentInput{Status: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown status, got %v", err)
	}

	if _, err := f.svc.Update(ctx, f.patient, a.ID, ports.UpdateAppointmentInput{Status: &cancelled}); err != nil {
		t.Fatalf("patient cancel failed: %v", err)
	}
	if _, err := f.svc.Update(ctx, f.admin, "missing", ports.UpdateAppointmentInput{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
