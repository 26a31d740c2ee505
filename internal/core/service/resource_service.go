package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// ResourceService manages hospital capacity records. Write access is gated to
// admins at the transport layer.
type ResourceService struct {
	repo ports.ResourceRepository
	log  zerolog.Logger
}

func NewResourceService(repo ports.ResourceRepository, log zerolog.Logger) *ResourceService {
	return &ResourceService{repo: repo, log: log}
}

func (s *ResourceService) List(ctx context.Context, resourceType string) ([]*domain.HospitalResource, error) {
	t := domain.ResourceType(resourceType)
	if t != "" && !t.Valid() {
		return nil, domain.NewValidationError("type must be one of bed, equipment, staff, room, other")
	}
	return s.repo.List(ctx, t)
}

func (s *ResourceService) Create(ctx context.Context, in ports.ResourceInput) (*domain.HospitalResource, error) {
	now := time.Now().UTC()
	r := &domain.HospitalResource{CreatedAt: now, UpdatedAt: now}
	applyResourceInput(r, in)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create resource")
		return nil, err
	}
	s.log.Info().Str("resource_id", created.ID).Str("type", string(created.Type)).Msg("resource created")
	return created, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, in ports.ResourceInput) (*domain.HospitalResource, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyResourceInput(r, in)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("resource_id", id).Msg("resource deleted")
	return nil
}

func applyResourceInput(r *domain.HospitalResource, in ports.ResourceInput) {
	r.Name = in.Name
	r.Type = domain.ResourceType(in.Type)
	r.Total = in.Total
	r.Available = in.Available
	r.Location = in.Location
	r.Details = in.Details
}
