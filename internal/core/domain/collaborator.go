package domain

import "github.com/shopspring/decimal"

// CommissionType selects how a collaborator's sale commission is computed.
type CommissionType string

const (
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionFixed      CommissionType = "FIXED"
	CommissionNone       CommissionType = "NONE"
)

// Collaborator is a staff member of a clinic.
type Collaborator struct {
	CollaboratorID  string          `json:"collaboratorID" db:"collaborator_id"`
	WorkspaceID     string          `json:"workspaceID" db:"workspace_id"`
	Name            string          `json:"name" db:"name"`
	JobTitle        string          `json:"jobTitle" db:"job_title"`
	BaseSalary      decimal.Decimal `json:"baseSalary" db:"base_salary"`
	Charges         decimal.Decimal `json:"charges" db:"charges"`
	MonthlyHours    decimal.Decimal `json:"monthlyHours" db:"monthly_hours"`
	CommissionType  CommissionType  `json:"commissionType" db:"commission_type"`
	CommissionValue decimal.Decimal `json:"commissionValue" db:"commission_value"`
	IsActive        bool            `json:"isActive" db:"is_active"`
	AuditFields
}

// HourlyCost is (baseSalary + charges) / monthlyHours, rounded to cents.
// It is zero when monthlyHours is not positive.
func (c Collaborator) HourlyCost() decimal.Decimal {
	if !c.MonthlyHours.IsPositive() {
		return decimal.Zero
	}
	return c.BaseSalary.Add(c.Charges).DivRound(c.MonthlyHours, 2)
}
