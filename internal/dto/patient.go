package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// CreatePatientRequest defines the data needed to register a patient.
type CreatePatientRequest struct {
	Name      string     `json:"name" binding:"required,max=255"`
	Phone     string     `json:"phone" binding:"max=40"`
	Email     string     `json:"email" binding:"omitempty,email"`
	Document  string     `json:"document" binding:"max=40"`
	BirthDate *time.Time `json:"birthDate"`
	Notes     string     `json:"notes"`
}

// UpdatePatientRequest uses pointers to distinguish omitted fields.
type UpdatePatientRequest struct {
	Name      *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Phone     *string    `json:"phone" binding:"omitempty,max=40"`
	Email     *string    `json:"email" binding:"omitempty,email"`
	Document  *string    `json:"document" binding:"omitempty,max=40"`
	BirthDate *time.Time `json:"birthDate"`
	Notes     *string    `json:"notes"`
}

// ListPatientsParams defines query parameters for listing patients.
type ListPatientsParams struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"includeInactive"`
	Limit           int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset          int    `form:"offset,default=0" binding:"min=0"`
}

func (p ListPatientsParams) ToFilter() domain.PatientFilter {
	return domain.PatientFilter{
		Search:          p.Search,
		IncludeInactive: p.IncludeInactive,
		Limit:           p.Limit,
		Offset:          p.Offset,
	}
}

// ImportPatientsRequest is a bulk import; each row succeeds or fails on its own.
type ImportPatientsRequest struct {
	Patients []CreatePatientRequest `json:"patients" binding:"required,min=1,max=1000,dive"`
}

// ImportPatientsResponse reports the per-row outcome of a bulk import.
type ImportPatientsResponse struct {
	Created int                   `json:"created"`
	Failed  int                   `json:"failed"`
	Results []domain.ImportResult `json:"results"`
}

type PatientResponse struct {
	PatientID     string     `json:"patientID"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Document      string     `json:"document"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	Notes         string     `json:"notes"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	Version       int64      `json:"version"`
}

func ToPatientResponse(p *domain.Patient) PatientResponse {
	return PatientResponse{
		PatientID:     p.PatientID,
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		Document:      p.Document,
		BirthDate:     p.BirthDate,
		Notes:         p.Notes,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
		Version:       p.Version,
	}
}

func ToListPatientResponse(patients []domain.Patient) []PatientResponse {
	res := make([]PatientResponse, len(patients))
	for i := range patients {
		res[i] = ToPatientResponse(&patients[i])
	}
	return res
}
