package domain

import "time"

// Patient is a clinic patient. Name and phone are unique within a workspace.
type Patient struct {
	PatientID   string     `json:"patientID" db:"patient_id"`
	WorkspaceID string     `json:"workspaceID" db:"workspace_id"`
	Name        string     `json:"name" db:"name"`
	Phone       string     `json:"phone" db:"phone"`
	Email       string     `json:"email" db:"email"`
	Document    string     `json:"document" db:"document"`
	BirthDate   *time.Time `json:"birthDate,omitempty" db:"birth_date"`
	Notes       string     `json:"notes" db:"notes"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	AuditFields
}

// PatientFilter narrows patient listings.
type PatientFilter struct {
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// ImportResult is the per-row outcome of a bulk patient import.
type ImportResult struct {
	Index     int    `json:"index"`
	PatientID string `json:"patientID,omitempty"`
	Error     string `json:"error,omitempty"`
}
