package domain

import (
	"strings"
	"time"
)

// ResourceType classifies a hospital resource.
type ResourceType string

const (
	ResourceBed       ResourceType = "bed"
	ResourceEquipment ResourceType = "equipment"
	ResourceStaff     ResourceType = "staff"
	ResourceRoom      ResourceType = "room"
	ResourceOther     ResourceType = "other"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceBed, ResourceEquipment, ResourceStaff, ResourceRoom, ResourceOther:
		return true
	}
	return false
}

// HospitalResource tracks capacity for beds, equipment, staff and rooms.
type HospitalResource struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      ResourceType `json:"type"`
	Total     int          `json:"total"`
	Available int          `json:"available"`
	Location  string       `json:"location,omitempty"`
	Details   string       `json:"details,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Validate enforces 0 <= available <= total and a non-blank name.
func (r *HospitalResource) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	switch {
	case r.Name == "":
		return NewValidationError("name is required")
	case !r.Type.Valid():
		return NewValidationError("type must be one of bed, equipment, staff, room, other")
	case r.Total < 0:
		return NewValidationError("total count cannot be negative")
	case r.Available < 0:
		return NewValidationError("available count cannot be negative")
	case r.Available > r.Total:
		return NewValidationError("available count cannot exceed total count")
	}
	return nil
}
