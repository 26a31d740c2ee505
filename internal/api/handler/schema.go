package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name           string `json:"name"           validate:"required"`
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6,max=72"`
	Role           string `json:"role"           validate:"omitempty,oneof=patient doctor admin"`
	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
	LicenseNumber  string `json:"licenseNumber"  validate:"required_if=Role doctor"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  domain.Profile `json:"user"`
	Token string         `json:"token"`
}

type sessionResponse struct {
	User *domain.Identity `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// --- Appointments ---

type createAppointmentRequest struct {
	Patient  string `json:"patient"`
	Doctor   string `json:"doctor"   validate:"required"`
	Date     string `json:"date"     validate:"required"`
	Time     string `json:"time"     validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
	Reason   string `json:"reason"   validate:"required"`
	Notes    string `json:"notes"`
}

type updateAppointmentRequest struct {
	Notes  *string `json:"notes"`
	Status *string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// --- Hospital resources ---

type resourceRequest struct {
	Name      string `json:"name"      validate:"required"`
	Type      string `json:"type"      validate:"required,oneof=bed equipment staff room other"`
	Total     int    `json:"total"     validate:"gte=0"`
	Available int    `json:"available" validate:"gte=0"`
	Location  string `json:"location"`
	Details   string `json:"details"`
}

// --- Medical reports ---

type createReportRequest struct {
	Patient string `json:"patient" validate:"required"`
	Title   string `json:"title"   validate:"required"`
	Type    string `json:"type"    validate:"omitempty,oneof=blood_test x_ray mri ct_scan general other"`
	FileURL string `json:"fileUrl" validate:"required"`
	Summary string `json:"summary"`
	Date    string `json:"date"`
}

// --- Pages ---

type pageResponse struct {
	Page    string            `json:"page"`
	Title   string            `json:"title"`
	Actions map[string]string `json:"actions,omitempty"`
	User    *domain.Identity  `json:"user,omitempty"`
}

// dashboardResponse serves both the patient and the doctor dashboards; the
// lists are already scoped to the caller.
type dashboardResponse struct {
	User         domain.Identity         `json:"user"`
	Appointments []*domain.Appointment   `json:"appointments"`
	Reports      []*domain.MedicalReport `json:"reports"`
}

type adminDashboardResponse struct {
	User           domain.Identity            `json:"user"`
	PendingDoctors []domain.Profile           `json:"pendingDoctors"`
	Resources      []*domain.HospitalResource `json:"resources"`
}

// parseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("%s must be a date (YYYY-MM-DD) or RFC 3339 timestamp", field))
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
