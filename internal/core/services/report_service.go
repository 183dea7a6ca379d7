package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/finance"
	"github.com/shopspring/decimal"
)

type reportService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewReportService creates the read-only reporting service.
func NewReportService(repos portsrepo.RepositoryProvider) portssvc.ReportSvcFacade {
	return &reportService{BaseService: newBaseService(), repos: repos}
}

func (s *reportService) completedSales(ctx context.Context, workspaceID string, period domain.Period) ([]domain.Sale, error) {
	completed := domain.SaleCompleted
	return s.repos.SaleRepo.ListSales(ctx, workspaceID, domain.SaleFilter{Period: period, Status: &completed})
}

// CommissionReport computes, per seller, the commission earned on completed
// sales of the period. Sales without a seller earn nothing.
func (s *reportService) CommissionReport(ctx context.Context, workspaceID string, period domain.Period) (*domain.CommissionReport, error) {
	sales, err := s.completedSales(ctx, workspaceID, period)
	if err != nil {
		return nil, err
	}
	return s.commissions(ctx, workspaceID, sales)
}

func (s *reportService) commissions(ctx context.Context, workspaceID string, sales []domain.Sale) (*domain.CommissionReport, error) {
	collaborators, err := s.repos.CollaboratorRepo.ListCollaborators(ctx, workspaceID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Collaborator, len(collaborators))
	for _, c := range collaborators {
		byID[c.CollaboratorID] = c
	}

	lines := map[string]*domain.CommissionLine{}
	for _, sale := range sales {
		if sale.SellerID == nil {
			continue
		}
		seller, ok := byID[*sale.SellerID]
		if !ok {
			continue
		}
		line := lines[seller.CollaboratorID]
		if line == nil {
			line = &domain.CommissionLine{
				CollaboratorID:  seller.CollaboratorID,
				Name:            seller.Name,
				CommissionType:  seller.CommissionType,
				CommissionValue: seller.CommissionValue,
				SalesTotal:      decimal.Zero,
				Commission:      decimal.Zero,
			}
			lines[seller.CollaboratorID] = line
		}
		amount, err := finance.Commission(seller.CommissionType, seller.CommissionValue, sale.TotalAmount)
		if err != nil {
			return nil, fmt.Errorf("commission for sale %s: %w", sale.SaleID, err)
		}
		line.SalesCount++
		line.SalesTotal = line.SalesTotal.Add(sale.TotalAmount)
		line.Commission = line.Commission.Add(amount)
	}

	report := &domain.CommissionReport{Lines: make([]domain.CommissionLine, 0, len(lines)), TotalCommission: decimal.Zero}
	for _, line := range lines {
		report.Lines = append(report.Lines, *line)
		report.TotalCommission = report.TotalCommission.Add(line.Commission)
	}
	sort.Slice(report.Lines, func(i, j int) bool {
		if report.Lines[i].Name != report.Lines[j].Name {
			return report.Lines[i].Name < report.Lines[j].Name
		}
		return report.Lines[i].CollaboratorID < report.Lines[j].CollaboratorID
	})
	return report, nil
}

// DashboardSummary aggregates revenue, costs, commissions and attendance.
// Fixed costs count when their payment date falls in the period; percentage
// costs are applied to the period's revenue.
func (s *reportService) DashboardSummary(ctx context.Context, workspaceID string, period domain.Period) (*domain.DashboardSummary, error) {
	sales, err := s.completedSales(ctx, workspaceID, period)
	if err != nil {
		return nil, err
	}
	summary := &domain.DashboardSummary{
		Revenue:       decimal.Zero,
		FixedCosts:    decimal.Zero,
		VariableCosts: decimal.Zero,
		SalesCount:    len(sales),
	}
	for _, sale := range sales {
		summary.Revenue = summary.Revenue.Add(sale.TotalAmount)
	}

	costs, err := s.repos.CostRepo.ListCosts(ctx, workspaceID, domain.CostFilter{})
	if err != nil {
		return nil, err
	}
	replicated := replicatedPayments(costs)
	for _, c := range costs {
		switch c.CostType {
		case domain.CostTypeFixed:
			if c.PaymentDate == nil || !period.Contains(*c.PaymentDate) {
				continue
			}
			if c.IsRecurring && c.RecurrenceSourceID == nil && replicated[paymentKey(c.CostID, *c.PaymentDate)] {
				continue
			}
			amount, err := finance.CostAmount(c, summary.Revenue)
			if err != nil {
				return nil, err
			}
			summary.FixedCosts = summary.FixedCosts.Add(amount)
		case domain.CostTypePercentage:
			amount, err := finance.CostAmount(c, summary.Revenue)
			if err != nil {
				return nil, err
			}
			summary.VariableCosts = summary.VariableCosts.Add(amount)
		}
	}

	commissions, err := s.commissions(ctx, workspaceID, sales)
	if err != nil {
		return nil, err
	}
	summary.Commissions = commissions.TotalCommission
	summary.Margin = summary.Revenue.Sub(summary.FixedCosts).Sub(summary.VariableCosts).Sub(summary.Commissions)

	if summary.ActivePatients, err = s.repos.PatientRepo.CountActivePatients(ctx, workspaceID); err != nil {
		return nil, err
	}
	sessions, err := s.repos.SessionRepo.ListSessions(ctx, workspaceID, domain.SessionFilter{Period: period})
	if err != nil {
		return nil, err
	}
	summary.Attendance = finance.Stats(sessions)
	return summary, nil
}

// replicatedPayments indexes the replica rows by template and payment day.
// A template whose own payment date already has a replica is counted once.
func replicatedPayments(costs []domain.Cost) map[string]bool {
	out := make(map[string]bool)
	for _, c := range costs {
		if c.RecurrenceSourceID != nil && c.PaymentDate != nil {
			out[paymentKey(*c.RecurrenceSourceID, *c.PaymentDate)] = true
		}
	}
	return out
}

func paymentKey(costID string, paid time.Time) string {
	return costID + "|" + paid.UTC().Format(time.DateOnly)
}
