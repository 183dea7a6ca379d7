package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle status of a sale.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "COMPLETED"
	SaleCancelled SaleStatus = "CANCELLED"
)

// Sale records procedures sold to a patient, optionally attributed to a seller.
type Sale struct {
	SaleID        string          `json:"saleID" db:"sale_id"`
	WorkspaceID   string          `json:"workspaceID" db:"workspace_id"`
	PatientID     string          `json:"patientID" db:"patient_id"`
	SellerID      *string         `json:"sellerID,omitempty" db:"seller_id"` // FK -> collaborators
	SaleDate      time.Time       `json:"saleDate" db:"sale_date"`
	Discount      decimal.Decimal `json:"discount" db:"discount"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Installments  int             `json:"installments" db:"installments"`
	Status        SaleStatus      `json:"status" db:"status"`
	Notes         string          `json:"notes" db:"notes"`
	Items         []SaleItem      `json:"items" db:"-"`
	AuditFields
}

// SaleItem is one procedure line of a sale.
type SaleItem struct {
	SaleItemID  string          `json:"saleItemID" db:"sale_item_id"`
	SaleID      string          `json:"saleID" db:"sale_id"`
	ProcedureID string          `json:"procedureID" db:"procedure_id"`
	Quantity    int             `json:"quantity" db:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" db:"unit_price"`
}

// SaleFilter narrows sale listings.
type SaleFilter struct {
	Period    Period
	PatientID string
	SellerID  string
	Status    *SaleStatus
	Limit     int
	Offset    int
}
