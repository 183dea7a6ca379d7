package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCategory classifies a financial line item.
type CostCategory string

const (
	CostOperational CostCategory = "OPERATIONAL"
	CostTax         CostCategory = "TAX"
	CostCommission  CostCategory = "COMMISSION"
	CostCard        CostCategory = "CARD"
)

// CostType says whether a cost is a fixed amount or a percentage of revenue.
type CostType string

const (
	CostTypeFixed      CostType = "FIXED"
	CostTypePercentage CostType = "PERCENTAGE"
)

// RecurrenceFrequency is the cadence of a recurring cost.
type RecurrenceFrequency string

const (
	FrequencyMonthly   RecurrenceFrequency = "MONTHLY"
	FrequencyQuarterly RecurrenceFrequency = "QUARTERLY"
	FrequencyYearly    RecurrenceFrequency = "YEARLY"
)

// Cost is a financial line item. A recurring cost acts as a template that
// spawns dated copies of itself; copies point back through RecurrenceSourceID.
type Cost struct {
	CostID              string               `json:"costID" db:"cost_id"`
	WorkspaceID         string               `json:"workspaceID" db:"workspace_id"`
	Description         string               `json:"description" db:"description"`
	Category            CostCategory         `json:"category" db:"category"`
	CostType            CostType             `json:"costType" db:"cost_type"`
	FixedValue          *decimal.Decimal     `json:"fixedValue,omitempty" db:"fixed_value"`
	Percentage          *decimal.Decimal     `json:"percentage,omitempty" db:"percentage"`
	CardOperator        *string              `json:"cardOperator,omitempty" db:"card_operator"`
	ReceivingDays       *int                 `json:"receivingDays,omitempty" db:"receiving_days"`
	PaymentDate         *time.Time           `json:"paymentDate,omitempty" db:"payment_date"`
	IsActive            bool                 `json:"isActive" db:"is_active"`
	IsRecurring         bool                 `json:"isRecurring" db:"is_recurring"`
	RecurrenceFrequency *RecurrenceFrequency `json:"recurrenceFrequency,omitempty" db:"recurrence_frequency"`
	NextRecurrenceDate  *time.Time           `json:"nextRecurrenceDate,omitempty" db:"next_recurrence_date"`
	RecurrenceSourceID  *string              `json:"recurrenceSourceID,omitempty" db:"recurrence_source_id"`
	AuditFields
}

// Amount is the fixed value of the cost, or zero for percentage costs.
func (c Cost) Amount() decimal.Decimal {
	if c.FixedValue == nil {
		return decimal.Zero
	}
	return *c.FixedValue
}

// CostFilter narrows cost listings.
type CostFilter struct {
	Category        *CostCategory
	Period          Period // applied to payment_date
	RecurringOnly   bool
	IncludeInactive bool
	Limit           int
	Offset          int
}

// RecurrenceItem is one successful replication of a recurring cost.
type RecurrenceItem struct {
	OriginalID  string          `json:"originalID"`
	NewID       string          `json:"newID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	NextDate    time.Time       `json:"nextDate"`
}

// RecurrenceFailure is one template that could not be replicated.
type RecurrenceFailure struct {
	OriginalID  string `json:"originalID"`
	Description string `json:"description"`
	Error       string `json:"error"`
}

// RecurrenceResult is the outcome of one replication run over a workspace.
type RecurrenceResult struct {
	Processed int                 `json:"processed"`
	Items     []RecurrenceItem    `json:"items"`
	Skipped   int                 `json:"skipped"`
	Failures  []RecurrenceFailure `json:"failures"`
}
