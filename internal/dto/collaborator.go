package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

type CreateCollaboratorRequest struct {
	Name            string                `json:"name" binding:"required,max=255"`
	JobTitle        string                `json:"jobTitle" binding:"max=255"`
	BaseSalary      decimal.Decimal       `json:"baseSalary" binding:"decimal_nonneg"`
	Charges         decimal.Decimal       `json:"charges" binding:"decimal_nonneg"`
	MonthlyHours    decimal.Decimal       `json:"monthlyHours" binding:"decimal_nonneg"`
	CommissionType  domain.CommissionType `json:"commissionType" binding:"omitempty,oneof=PERCENTAGE FIXED NONE"`
	CommissionValue decimal.Decimal       `json:"commissionValue" binding:"decimal_nonneg"`
}

type UpdateCollaboratorRequest struct {
	Name            *string                `json:"name" binding:"omitempty,min=1,max=255"`
	JobTitle        *string                `json:"jobTitle" binding:"omitempty,max=255"`
	BaseSalary      *decimal.Decimal       `json:"baseSalary" binding:"omitempty,decimal_nonneg"`
	Charges         *decimal.Decimal       `json:"charges" binding:"omitempty,decimal_nonneg"`
	MonthlyHours    *decimal.Decimal       `json:"monthlyHours" binding:"omitempty,decimal_nonneg"`
	CommissionType  *domain.CommissionType `json:"commissionType" binding:"omitempty,oneof=PERCENTAGE FIXED NONE"`
	CommissionValue *decimal.Decimal       `json:"commissionValue" binding:"omitempty,decimal_nonneg"`
	IsActive        *bool                  `json:"isActive"`
}

type CollaboratorResponse struct {
	CollaboratorID  string                `json:"collaboratorID"`
	Name            string                `json:"name"`
	JobTitle        string                `json:"jobTitle"`
	BaseSalary      decimal.Decimal       `json:"baseSalary"`
	Charges         decimal.Decimal       `json:"charges"`
	MonthlyHours    decimal.Decimal       `json:"monthlyHours"`
	HourlyCost      decimal.Decimal       `json:"hourlyCost"`
	CommissionType  domain.CommissionType `json:"commissionType"`
	CommissionValue decimal.Decimal       `json:"commissionValue"`
	IsActive        bool                  `json:"isActive"`
	CreatedAt       time.Time             `json:"createdAt"`
	Version         int64                 `json:"version"`
}

func ToCollaboratorResponse(c *domain.Collaborator) CollaboratorResponse {
	return CollaboratorResponse{
		CollaboratorID:  c.CollaboratorID,
		Name:            c.Name,
		JobTitle:        c.JobTitle,
		BaseSalary:      c.BaseSalary,
		Charges:         c.Charges,
		MonthlyHours:    c.MonthlyHours,
		HourlyCost:      c.HourlyCost(),
		CommissionType:  c.CommissionType,
		CommissionValue: c.CommissionValue,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
		Version:         c.Version,
	}
}

func ToListCollaboratorResponse(collaborators []domain.Collaborator) []CollaboratorResponse {
	res := make([]CollaboratorResponse, len(collaborators))
	for i := range collaborators {
		res[i] = ToCollaboratorResponse(&collaborators[i])
	}
	return res
}
