package domain

import "time"

// ReportType classifies a medical report.
type ReportType string

const (
	ReportBloodTest ReportType = "blood_test"
	ReportXRay      ReportType = "x_ray"
	ReportMRI       ReportType = "mri"
	ReportCTScan    ReportType = "ct_scan"
	ReportGeneral   ReportType = "general"
	ReportOther     ReportType = "other"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportBloodTest, ReportXRay, ReportMRI, ReportCTScan, ReportGeneral, ReportOther:
		return true
	}
	return false
}

// MedicalReport references an uploaded document; the file itself lives
// elsewhere and only its URL is stored.
type MedicalReport struct {
	ID        string     `json:"id"`
	PatientID string     `json:"patient"`
	DoctorID  string     `json:"doctor"`
	Title     string     `json:"title"`
	Type      ReportType `json:"type"`
	FileURL   string     `json:"fileUrl"`
	Summary   string     `json:"summary,omitempty"`
	AISummary string     `json:"aiSummary,omitempty"`
	Date      time.Time  `json:"date"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
