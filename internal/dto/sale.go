package dto

import (
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

type SaleItemRequest struct {
	ProcedureID string           `json:"procedureID" binding:"required"`
	Quantity    int              `json:"quantity" binding:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"unitPrice" binding:"omitempty,decimal_nonneg"` // defaults to the procedure price
}

type CreateSaleRequest struct {
	PatientID     string            `json:"patientID" binding:"required"`
	SellerID      *string           `json:"sellerID"`
	SaleDate      *time.Time        `json:"saleDate"`
	Discount      decimal.Decimal   `json:"discount" binding:"decimal_nonneg"`
	PaymentMethod string            `json:"paymentMethod" binding:"max=40"`
	Installments  int               `json:"installments" binding:"omitempty,min=1,max=48"`
	Notes         string            `json:"notes"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

type ListSalesParams struct {
	PeriodParams
	PageParams
	PatientID string `form:"patientID"`
	SellerID  string `form:"sellerID"`
	Status    string `form:"status" binding:"omitempty,oneof=COMPLETED CANCELLED"`
}

func (p ListSalesParams) ToFilter() domain.SaleFilter {
	f := domain.SaleFilter{
		Period:    p.ToPeriod(),
		PatientID: p.PatientID,
		SellerID:  p.SellerID,
		Limit:     p.Limit,
		Offset:    p.Offset,
	}
	if p.Status != "" {
		s := domain.SaleStatus(p.Status)
		f.Status = &s
	}
	return f
}

type SaleResponse struct {
	SaleID        string            `json:"saleID"`
	PatientID     string            `json:"patientID"`
	SellerID      *string           `json:"sellerID,omitempty"`
	SaleDate      time.Time         `json:"saleDate"`
	Discount      decimal.Decimal   `json:"discount"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod"`
	Installments  int               `json:"installments"`
	Status        domain.SaleStatus `json:"status"`
	Notes         string            `json:"notes"`
	Items         []domain.SaleItem `json:"items,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		PatientID:     s.PatientID,
		SellerID:      s.SellerID,
		SaleDate:      s.SaleDate,
		Discount:      s.Discount,
		TotalAmount:   s.TotalAmount,
		PaymentMethod: s.PaymentMethod,
		Installments:  s.Installments,
		Status:        s.Status,
		Notes:         s.Notes,
		Items:         s.Items,
		CreatedAt:     s.CreatedAt,
	}
}

func ToListSaleResponse(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}
