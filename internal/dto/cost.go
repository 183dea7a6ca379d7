package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCostRequest defines a cost line. FIXED costs carry FixedValue,
// PERCENTAGE costs carry Percentage; recurring costs must be FIXED.
type CreateCostRequest struct {
	Description         string                      `json:"description" binding:"required,max=255"`
	Category            domain.CostCategory         `json:"category" binding:"required,oneof=OPERATIONAL TAX COMMISSION CARD"`
	CostType            domain.CostType             `json:"costType" binding:"required,oneof=FIXED PERCENTAGE"`
	FixedValue          *decimal.Decimal            `json:"fixedValue" binding:"omitempty,decimal_nonneg"`
	Percentage          *decimal.Decimal            `json:"percentage" binding:"omitempty,decimal_pct"`
	CardOperator        *string                     `json:"cardOperator" binding:"omitempty,max=100"`
	ReceivingDays       *int                        `json:"receivingDays" binding:"omitempty,min=0,max=365"`
	PaymentDate         *time.Time                  `json:"paymentDate"`
	IsRecurring         bool                        `json:"isRecurring"`
	RecurrenceFrequency *domain.RecurrenceFrequency `json:"recurrenceFrequency" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	NextRecurrenceDate  *time.Time                  `json:"nextRecurrenceDate"`
}

// UpdateCostRequest replaces the editable fields of a cost; omitted pointers keep their value.
type UpdateCostRequest struct {
	Description         *string                     `json:"description" binding:"omitempty,min=1,max=255"`
	Category            *domain.CostCategory        `json:"category" binding:"omitempty,oneof=OPERATIONAL TAX COMMISSION CARD"`
	CostType            *domain.CostType            `json:"costType" binding:"omitempty,oneof=FIXED PERCENTAGE"`
	FixedValue          *decimal.Decimal            `json:"fixedValue" binding:"omitempty,decimal_nonneg"`
	Percentage          *decimal.Decimal            `json:"percentage" binding:"omitempty,decimal_pct"`
	CardOperator        *string                     `json:"cardOperator" binding:"omitempty,max=100"`
	ReceivingDays       *int                        `json:"receivingDays" binding:"omitempty,min=0,max=365"`
	PaymentDate         *time.Time                  `json:"paymentDate"`
	IsActive            *bool                       `json:"isActive"`
	IsRecurring         *bool                       `json:"isRecurring"`
	RecurrenceFrequency *domain.RecurrenceFrequency `json:"recurrenceFrequency" binding:"omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	NextRecurrenceDate  *time.Time                  `json:"nextRecurrenceDate"`
}

type ListCostsParams struct {
	PeriodParams
	PageParams
	Category        string `form:"category" binding:"omitempty,oneof=OPERATIONAL TAX COMMISSION CARD"`
	RecurringOnly   bool   `form:"recurringOnly"`
	IncludeInactive bool   `form:"includeInactive"`
}

func (p ListCostsParams) ToFilter() domain.CostFilter {
	f := domain.CostFilter{
		Period:          p.ToPeriod(),
		RecurringOnly:   p.RecurringOnly,
		IncludeInactive: p.IncludeInactive,
		Limit:           p.Limit,
		Offset:          p.Offset,
	}
	if p.Category != "" {
		c := domain.CostCategory(p.Category)
		f.Category = &c
	}
	return f
}

type CostResponse struct {
	CostID              string                      `json:"costID"`
	Description         string                      `json:"description"`
	Category            domain.CostCategory         `json:"category"`
	CostType            domain.CostType             `json:"costType"`
	FixedValue          *decimal.Decimal            `json:"fixedValue,omitempty"`
	Percentage          *decimal.Decimal            `json:"percentage,omitempty"`
	CardOperator        *string                     `json:"cardOperator,omitempty"`
	ReceivingDays       *int                        `json:"receivingDays,omitempty"`
	PaymentDate         *time.Time                  `json:"paymentDate,omitempty"`
	IsActive            bool                        `json:"isActive"`
	IsRecurring         bool                        `json:"isRecurring"`
	RecurrenceFrequency *domain.RecurrenceFrequency `json:"recurrenceFrequency,omitempty"`
	NextRecurrenceDate  *time.Time                  `json:"nextRecurrenceDate,omitempty"`
	RecurrenceSourceID  *string                     `json:"recurrenceSourceID,omitempty"`
	CreatedAt           time.Time                   `json:"createdAt"`
	Version             int64                       `json:"version"`
}

func ToCostResponse(c *domain.Cost) CostResponse {
	return CostResponse{
		CostID:              c.CostID,
		Description:         c.Description,
		Category:            c.Category,
		CostType:            c.CostType,
		FixedValue:          c.FixedValue,
		Percentage:          c.Percentage,
		CardOperator:        c.CardOperator,
		ReceivingDays:       c.ReceivingDays,
		PaymentDate:         c.PaymentDate,
		IsActive:            c.IsActive,
		IsRecurring:         c.IsRecurring,
		RecurrenceFrequency: c.RecurrenceFrequency,
		NextRecurrenceDate:  c.NextRecurrenceDate,
		RecurrenceSourceID:  c.RecurrenceSourceID,
		CreatedAt:           c.CreatedAt,
		Version:             c.Version,
	}
}

func ToListCostResponse(costs []domain.Cost) []CostResponse {
	res := make([]CostResponse, len(costs))
	for i := range costs {
		res[i] = ToCostResponse(&costs[i])
	}
	return res
}

// PendingRecurrenceResponse is the diagnostic listing of templates due today.
type PendingRecurrenceResponse struct {
	Today time.Time      `json:"today"`
	Count int            `json:"count"`
	Costs []CostResponse `json:"costs"`
}
