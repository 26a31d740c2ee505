package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// AppointmentService scopes appointment access by the caller's role:
// patients see their own, doctors see the ones booked with them, admins see
// everything. There is no conflict detection.
type AppointmentService struct {
	repo  ports.AppointmentRepository
	users ports.CredentialStore
	log   zerolog.Logger
}

func NewAppointmentService(repo ports.AppointmentRepository, users ports.CredentialStore, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{repo: repo, users: users, log: log}
}

func (s *AppointmentService) List(ctx context.Context, actor domain.Identity) ([]*domain.Appointment, error) {
	var filter ports.AppointmentFilter
	switch actor.Role {
	case domain.RolePatient:
		filter.PatientID = actor.ID
	case domain.RoleDoctor:
		filter.DoctorID = actor.ID
	case domain.RoleAdmin:
	default:
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, filter)
}

// Create books an appointment. Patients always book for themselves; admins
// must name the patient; doctors cannot book.
func (s *AppointmentService) Create(ctx context.Context, actor domain.Identity, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	switch actor.Role {
	case domain.RolePatient:
		in.PatientID = actor.ID
	case domain.RoleAdmin:
		if in.PatientID == "" {
			return nil, domain.NewValidationError("patient is required")
		}
	default:
		return nil, domain.ErrForbidden
	}

	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	if strings.TrimSpace(in.Time) == "" {
		return nil, domain.NewValidationError("time is required")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, domain.NewValidationError("reason is required")
	}
	if in.Duration < 0 {
		return nil, domain.NewValidationError("duration cannot be negative")
	}
	if in.Duration == 0 {
		in.Duration = domain.DefaultAppointmentMinutes
	}

	if err := s.requireRole(ctx, in.DoctorID, domain.RoleDoctor, "doctor"); err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleAdmin {
		if err := s.requireRole(ctx, in.PatientID, domain.RolePatient, "patient"); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date.UTC(),
		Time:      strings.TrimSpace(in.Time),
		Duration:  in.Duration,
		Status:    domain.AppointmentScheduled,
		Reason:    strings.TrimSpace(in.Reason),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.log.Info().Str("appointment_id", created.ID).Str("patient", created.PatientID).Str("doctor", created.DoctorID).Msg("appointment created")
	return created, nil
}

// Update applies notes and/or status. Doctors edit their own appointments,
// patients may only cancel their own, admins may edit any.
func (s *AppointmentService) Update(ctx context.Context, actor domain.Identity, id string, in ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleDoctor:
		if a.DoctorID != actor.ID {
			return nil, domain.ErrForbidden
		}
	case domain.RolePatient:
		if a.PatientID != actor.ID || in.Notes != nil {
			return nil, domain.ErrForbidden
		}
		if in.Status != nil && domain.AppointmentStatus(*in.Status) != domain.AppointmentCancelled {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	if in.Status != nil {
		status := domain.AppointmentStatus(*in.Status)
		if !status.Valid() {
			return nil, domain.NewValidationError("status must be one of scheduled, completed, cancelled")
		}
		a.Status = status
	}
	if in.Notes != nil {
		a.Notes = *in.Notes
	}
	a.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AppointmentService) requireRole(ctx context.Context, id string, role domain.Role, field string) error {
	if id == "" {
		return domain.NewValidationError(field + " is required")
	}
	u, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NewValidationError(field + " does not exist")
		}
		return err
	}
	if u.Role != role {
		return domain.NewValidationError(field + " must be a " + string(role) + " account")
	}
	return nil
}
