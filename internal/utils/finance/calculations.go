package finance

import (
	"fmt"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns pct percent of base, rounded to cents.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred).Round(2)
}

// Commission computes what a seller earns on a sale of saleTotal.
// PERCENTAGE applies value as a percentage, FIXED pays value per sale.
func Commission(commissionType domain.CommissionType, value, saleTotal decimal.Decimal) (decimal.Decimal, error) {
	switch commissionType {
	case domain.CommissionPercentage:
		return Percent(saleTotal, value), nil
	case domain.CommissionFixed:
		return value.Round(2), nil
	case domain.CommissionNone, "":
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("unknown commission type %q", commissionType)
}

// CostAmount evaluates a cost against a revenue base. FIXED costs ignore the base.
func CostAmount(cost domain.Cost, revenue decimal.Decimal) (decimal.Decimal, error) {
	switch cost.CostType {
	case domain.CostTypeFixed:
		if cost.FixedValue == nil {
			return decimal.Zero, fmt.Errorf("fixed cost %s has no value", cost.CostID)
		}
		return cost.FixedValue.Round(2), nil
	case domain.CostTypePercentage:
		if cost.Percentage == nil {
			return decimal.Zero, fmt.Errorf("percentage cost %s has no percentage", cost.CostID)
		}
		return Percent(revenue, *cost.Percentage), nil
	}
	return decimal.Zero, fmt.Errorf("unknown cost type %q for cost %s", cost.CostType, cost.CostID)
}

// SaleTotal sums quantity*unitPrice over items and subtracts discount.
// It fails when the discount exceeds the gross amount.
func SaleTotal(items []domain.SaleItem, discount decimal.Decimal) (decimal.Decimal, error) {
	if discount.IsNegative() {
		return decimal.Zero, fmt.Errorf("discount cannot be negative")
	}
	gross := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("item %d: unit price cannot be negative", i)
		}
		gross = gross.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if discount.GreaterThan(gross) {
		return decimal.Zero, fmt.Errorf("discount %s exceeds gross amount %s", discount, gross)
	}
	return gross.Sub(discount).Round(2), nil
}

// AttendanceRate is completed / (completed + noShow) as a fraction rounded to
// four places. Cancelled sessions do not count. Zero when nothing was attended or missed.
func AttendanceRate(completed, noShow int) float64 {
	den := completed + noShow
	if den == 0 {
		return 0
	}
	rate, _ := decimal.NewFromInt(int64(completed)).DivRound(decimal.NewFromInt(int64(den)), 4).Float64()
	return rate
}

// Stats folds a list of sessions into attendance counters.
func Stats(sessions []domain.ProcedureSession) domain.AttendanceStats {
	var st domain.AttendanceStats
	for _, s := range sessions {
		st.Total++
		switch s.Status {
		case domain.SessionScheduled:
			st.Scheduled++
		case domain.SessionCompleted:
			st.Completed++
		case domain.SessionCancelled:
			st.Cancelled++
		case domain.SessionNoShow:
			st.NoShow++
		}
	}
	st.AttendanceRate = AttendanceRate(st.Completed, st.NoShow)
	return st
}
