package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

type CreateSessionRequest struct {
	PatientID      string    `json:"patientID" binding:"required"`
	ProcedureID    string    `json:"procedureID" binding:"required"`
	CollaboratorID *string   `json:"collaboratorID"`
	SaleID         *string   `json:"saleID"`
	ScheduledAt    time.Time `json:"scheduledAt" binding:"required"`
	Notes          string    `json:"notes"`
}

type UpdateSessionStatusRequest struct {
	Status domain.SessionStatus `json:"status" binding:"required,oneof=SCHEDULED COMPLETED CANCELLED NO_SHOW"`
}

type ListSessionsParams struct {
	PeriodParams
	PageParams
	Status         string `form:"status" binding:"omitempty,oneof=SCHEDULED COMPLETED CANCELLED NO_SHOW"`
	PatientID      string `form:"patientID"`
	CollaboratorID string `form:"collaboratorID"`
}

func (p ListSessionsParams) ToFilter() domain.SessionFilter {
	f := domain.SessionFilter{
		Period:         p.ToPeriod(),
		PatientID:      p.PatientID,
		CollaboratorID: p.CollaboratorID,
		Limit:          p.Limit,
		Offset:         p.Offset,
	}
	if p.Status != "" {
		s := domain.SessionStatus(p.Status)
		f.Status = &s
	}
	return f
}

type SessionResponse struct {
	SessionID      string               `json:"sessionID"`
	PatientID      string               `json:"patientID"`
	ProcedureID    string               `json:"procedureID"`
	CollaboratorID *string              `json:"collaboratorID,omitempty"`
	SaleID         *string              `json:"saleID,omitempty"`
	ScheduledAt    time.Time            `json:"scheduledAt"`
	Status         domain.SessionStatus `json:"status"`
	Notes          string               `json:"notes"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

func ToSessionResponse(s *domain.ProcedureSession) SessionResponse {
	return SessionResponse{
		SessionID:      s.SessionID,
		PatientID:      s.PatientID,
		ProcedureID:    s.ProcedureID,
		CollaboratorID: s.CollaboratorID,
		SaleID:         s.SaleID,
		ScheduledAt:    s.ScheduledAt,
		Status:         s.Status,
		Notes:          s.Notes,
		LastUpdatedAt:  s.LastUpdatedAt,
	}
}

func ToListSessionResponse(sessions []domain.ProcedureSession) []SessionResponse {
	res := make([]SessionResponse, len(sessions))
	for i := range sessions {
		res[i] = ToSessionResponse(&sessions[i])
	}
	return res
}
