package ports

import (
	"context"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, r *domain.HospitalResource) (*domain.HospitalResource, error)
	FindByID(ctx context.Context, id string) (*domain.HospitalResource, error)
	// List filters by type when resourceType is non-empty.
	List(ctx context.Context, resourceType domain.ResourceType) ([]*domain.HospitalResource, error)
	Update(ctx context.Context, r *domain.HospitalResource) error
	Delete(ctx context.Context, id string) error
}

// ResourceInput is the full set of writable resource fields.
type ResourceInput struct {
	Name      string
	Type      string
	Total     int
	Available int
	Location  string
	Details   string
}

type ResourceService interface {
	List(ctx context.Context, resourceType string) ([]*domain.HospitalResource, error)
	Create(ctx context.Context, in ResourceInput) (*domain.HospitalResource, error)
	Update(ctx context.Context, id string, in ResourceInput) (*domain.HospitalResource, error)
	Delete(ctx context.Context, id string) error
}
