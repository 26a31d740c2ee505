package domain

import "time"

// AppointmentStatus is the lifecycle state of an appointment. There are no
// transition rules; any valid status may be set.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// DefaultAppointmentMinutes is applied when a booking omits its duration.
const DefaultAppointmentMinutes = 30

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a flat booking between a patient and a doctor.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient"`
	DoctorID  string            `json:"doctor"`
	Date      time.Time         `json:"date"`
	Time      string            `json:"time"`
	Duration  int               `json:"duration"`
	Status    AppointmentStatus `json:"status"`
	Reason    string            `json:"reason"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Involves reports whether the identity is the appointment's patient or doctor.
func (a *Appointment) Involves(id Identity) bool {
	return a.PatientID == id.ID || a.DoctorID == id.ID
}
