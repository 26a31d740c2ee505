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

// ReportService records medical report metadata. Only doctors author reports.
type ReportService struct {
	repo  ports.ReportRepository
	users ports.CredentialStore
	log   zerolog.Logger
}

func NewReportService(repo ports.ReportRepository, users ports.CredentialStore, log zerolog.Logger) *ReportService {
	return &ReportService{repo: repo, users: users, log: log}
}

func (s *ReportService) List(ctx context.Context, actor domain.Identity) ([]*domain.MedicalReport, error) {
	var filter ports.ReportFilter
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

func (s *ReportService) Create(ctx context.Context, actor domain.Identity, in ports.CreateReportInput) (*domain.MedicalReport, error) {
	if actor.Role != domain.RoleDoctor {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title is required")
	}
	fileURL := strings.TrimSpace(in.FileURL)
	if fileURL == "" {
		return nil, domain.NewValidationError("fileUrl is required")
	}
	reportType := domain.ReportType(in.Type)
	if reportType == "" {
		reportType = domain.ReportGeneral
	}
	if !reportType.Valid() {
		return nil, domain.NewValidationError("type must be one of blood_test, x_ray, mri, ct_scan, general, other")
	}

	patient, err := s.users.FindUserByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewValidationError("patient does not exist")
		}
		return nil, err
	}
	if patient.Role != domain.RolePatient {
		return nil, domain.NewValidationError("patient must be a patient account")
	}

	now := time.Now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}

	created, err := s.repo.Create(ctx, &domain.MedicalReport{
		PatientID: patient.ID,
		DoctorID:  actor.ID,
		Title:     title,
		Type:      reportType,
		FileURL:   fileURL,
		Summary:   in.Summary,
		Date:      date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create report")
		return nil, err
	}
	s.log.Info().Str("report_id", created.ID).Str("patient", created.PatientID).Msg("report created")
	return created, nil
}
