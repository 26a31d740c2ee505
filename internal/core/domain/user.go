package domain

import "time"

// Role is the closed set of account kinds. Every value must be handled by
// Dashboard.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RolePatient, RoleDoctor, RoleAdmin}

// ParseRole converts a raw role string. An empty string yields RolePatient,
// matching the registration default.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case "":
		return RolePatient, nil
	case RolePatient, RoleDoctor, RoleAdmin:
		return r, nil
	}
	return "", NewValidationError("role must be one of patient, doctor, admin")
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Dashboard() != ""
}

// Dashboard returns the dashboard namespace owned by the role, or "" for a
// value outside the closed set.
func (r Role) Dashboard() string {
	switch r {
	case RolePatient:
		return "/patient-dashboard"
	case RoleDoctor:
		return "/doctor-dashboard"
	case RoleAdmin:
		return "/admin-dashboard"
	}
	return ""
}

// RequiresApproval reports whether new accounts of this role start unapproved.
func (r Role) RequiresApproval() bool {
	return r == RoleDoctor
}

// User is the persisted account, credential included.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	LicenseNumber  string    `json:"licenseNumber,omitempty"`
	Approved       bool      `json:"approved"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CanLogin reports whether the approval gate lets the user sign in.
func (u *User) CanLogin() bool {
	return !u.Role.RequiresApproval() || u.Approved
}

// Identity is the password-free view of a user carried by a session.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile extends Identity with the account details shown on /profile and to
// admins reviewing doctors.
type Profile struct {
	Identity
	Approved       bool   `json:"approved"`
	Specialization string `json:"specialization,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (u *User) Profile() Profile {
	return Profile{
		Identity:       u.Identity(),
		Approved:       u.Approved,
		Specialization: u.Specialization,
		LicenseNumber:  u.LicenseNumber,
	}
}
