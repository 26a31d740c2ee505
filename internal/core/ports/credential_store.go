package ports

import (
	"context"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Specialization
// and LicenseNumber are required only for doctors.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	Specialization string
	LicenseNumber  string
}

// CredentialStore owns user records and their salted password hashes.
type CredentialStore interface {
	CreateUser(ctx context.Context, in RegisterInput) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
	VerifyPassword(user *domain.User, candidate string) bool
	UpdatePassword(ctx context.Context, id, password string) error
}

// DoctorApprover is the admin-facing side of the approval gate.
type DoctorApprover interface {
	ListPendingDoctors(ctx context.Context) ([]domain.Profile, error)
	ApproveDoctor(ctx context.Context, id string) (*domain.Profile, error)
}
