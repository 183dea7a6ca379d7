package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateProcedureRequest struct {
	Name            string          `json:"name" binding:"required,max=255"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" binding:"decimal_nonneg"`
	DurationMinutes int             `json:"durationMinutes" binding:"min=0,max=1440"`
}

type UpdateProcedureRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price" binding:"omitempty,decimal_nonneg"`
	DurationMinutes *int             `json:"durationMinutes" binding:"omitempty,min=0,max=1440"`
	IsActive        *bool            `json:"isActive"`
}

type ProcedureResponse struct {
	ProcedureID     string          `json:"procedureID"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	Version         int64           `json:"version"`
}

func ToProcedureResponse(p *domain.Procedure) ProcedureResponse {
	return ProcedureResponse{
		ProcedureID:     p.ProcedureID,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		DurationMinutes: p.DurationMinutes,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		Version:         p.Version,
	}
}

func ToListProcedureResponse(procedures []domain.Procedure) []ProcedureResponse {
	res := make([]ProcedureResponse, len(procedures))
	for i := range procedures {
		res[i] = ToProcedureResponse(&procedures[i])
	}
	return res
}

// IncludeInactiveParams is shared by catalogue listings.
type IncludeInactiveParams struct {
	IncludeInactive bool `form:"includeInactive"`
}
