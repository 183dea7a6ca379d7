package domain

import "github.com/shopspring/decimal"

// Procedure is an aesthetic procedure offered by a clinic.
type Procedure struct {
	ProcedureID     string          `json:"procedureID" db:"procedure_id"`
	WorkspaceID     string          `json:"workspaceID" db:"workspace_id"`
	Name            string          `json:"name" db:"name"`
	Description     string          `json:"description" db:"description"`
	Price           decimal.Decimal `json:"price" db:"price"`
	DurationMinutes int             `json:"durationMinutes" db:"duration_minutes"`
	IsActive        bool            `json:"isActive" db:"is_active"`
	AuditFields
}
