package ports

import (
	"context"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// AppointmentFilter narrows List; empty fields match everything.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
}

// CreateAppointmentInput is the booking request. PatientID is ignored when a
// patient books for themselves.
type CreateAppointmentInput struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Time      string
	Duration  int
	Reason    string
	Notes     string
}

// UpdateAppointmentInput changes notes and/or status; nil fields are kept.
type UpdateAppointmentInput struct {
	Notes  *string
	Status *string
}

type AppointmentService interface {
	List(ctx context.Context, actor domain.Identity) ([]*domain.Appointment, error)
	Create(ctx context.Context, actor domain.Identity, in CreateAppointmentInput) (*domain.Appointment, error)
	Update(ctx context.Context, actor domain.Identity, id string, in UpdateAppointmentInput) (*domain.Appointment, error)
}
