package ports

import (
	"context"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// ReportFilter narrows List; empty fields match everything.
type ReportFilter struct {
	PatientID string
	DoctorID  string
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.MedicalReport) (*domain.MedicalReport, error)
	List(ctx context.Context, filter ReportFilter) ([]*domain.MedicalReport, error)
}

type CreateReportInput struct {
	PatientID string
	Title     string
	Type      string
	FileURL   string
	Summary   string
	Date      time.Time
}

type ReportService interface {
	List(ctx context.Context, actor domain.Identity) ([]*domain.MedicalReport, error)
	Create(ctx context.Context, actor domain.Identity, in CreateReportInput) (*domain.MedicalReport, error)
}
