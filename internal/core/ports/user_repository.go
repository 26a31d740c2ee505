package ports

import (
	"context"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// UserRepository is the persistence boundary of the credential store.
// Email uniqueness is enforced by the backing store: Create returns
// domain.ErrDuplicateEmail when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID never populates PasswordHash.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListPendingDoctors(ctx context.Context) ([]*domain.User, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
