package domain

import "github.com/shopspring/decimal"

// CommissionLine is one seller's commission over a period.
type CommissionLine struct {
	CollaboratorID  string          `json:"collaboratorID"`
	Name            string          `json:"name"`
	CommissionType  CommissionType  `json:"commissionType"`
	CommissionValue decimal.Decimal `json:"commissionValue"`
	SalesCount      int             `json:"salesCount"`
	SalesTotal      decimal.Decimal `json:"salesTotal"`
	Commission      decimal.Decimal `json:"commission"`
}

// CommissionReport aggregates commission lines.
type CommissionReport struct {
	Lines           []CommissionLine `json:"lines"`
	TotalCommission decimal.Decimal  `json:"totalCommission"`
}

// DashboardSummary is the financial and attendance overview of a period.
type DashboardSummary struct {
	Revenue        decimal.Decimal `json:"revenue"`
	SalesCount     int             `json:"salesCount"`
	FixedCosts     decimal.Decimal `json:"fixedCosts"`
	VariableCosts  decimal.Decimal `json:"variableCosts"`
	Commissions    decimal.Decimal `json:"commissions"`
	Margin         decimal.Decimal `json:"margin"`
	ActivePatients int             `json:"activePatients"`
	Attendance     AttendanceStats `json:"attendance"`
}
