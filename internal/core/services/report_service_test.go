package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func reportFixture(t *testing.T) (portsrepo.RepositoryProvider, domain.Period) {
	t.Helper()
	period := domain.Period{From: day(2025, time.May, 1), To: day(2025, time.May, 31)}
	ana, bruno := "col-ana", "col-bruno"

	sales := new(MockSaleRepository)
	sales.On("ListSales", mock.Anything, "ws-1", mock.MatchedBy(func(f domain.SaleFilter) bool {
		return f.Status != nil && *f.Status == domain.SaleCompleted && f.Period == period
	})).Return([]domain.Sale{
		{SaleID: "s1", SellerID: &ana, TotalAmount: dec("1000.00")},
		{SaleID: "s2", SellerID: &ana, TotalAmount: dec("500.00")},
		{SaleID: "s3", SellerID: &bruno, TotalAmount: dec("300.00")},
		{SaleID: "s4", TotalAmount: dec("200.00")},
	}, nil)

	collaborators := new(MockCollaboratorRepository)
	collaborators.On("ListCollaborators", mock.Anything, "ws-1", true).Return([]domain.Collaborator{
		{CollaboratorID: ana, Name: "Ana", CommissionType: domain.CommissionPercentage, CommissionValue: dec("10")},
		{CollaboratorID: bruno, Name: "Bruno", CommissionType: domain.CommissionFixed, CommissionValue: dec("25")},
	}, nil)

	return portsrepo.RepositoryProvider{SaleRepo: sales, CollaboratorRepo: collaborators}, period
}

func TestReportService_CommissionReport(t *testing.T) {
	repos, period := reportFixture(t)
	svc := services.NewReportService(repos)

	report, err := svc.CommissionReport(context.Background(), "ws-1", period)

	require.NoError(t, err)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, "Ana", report.Lines[0].Name)
	assert.Equal(t, 2, report.Lines[0].SalesCount)
	assert.True(t, dec("1500").Equal(report.Lines[0].SalesTotal))
	assert.True(t, dec("150").Equal(report.Lines[0].Commission))
	assert.Equal(t, "Bruno", report.Lines[1].Name)
	assert.True(t, dec("25").Equal(report.Lines[1].Commission))
	assert.True(t, dec("175").Equal(report.TotalCommission))
}

func TestReportService_DashboardSummary(t *testing.T) {
	repos, period := reportFixture(t)
	inMay, inApril := day(2025, time.May, 10), day(2025, time.April, 10)
	rent, old, tax := dec("1000"), dec("999"), dec("6")

	costs := newMemCostRepo(
		domain.Cost{CostID: "rent", WorkspaceID: "ws-1", CostType: domain.CostTypeFixed, FixedValue: &rent, PaymentDate: &inMay, IsActive: true},
		domain.Cost{CostID: "old", WorkspaceID: "ws-1", CostType: domain.CostTypeFixed, FixedValue: &old, PaymentDate: &inApril, IsActive: true},
		domain.Cost{CostID: "tax", WorkspaceID: "ws-1", CostType: domain.CostTypePercentage, Percentage: &tax, IsActive: true},
	)
	patients := new(MockPatientRepository)
	patients.On("CountActivePatients", mock.Anything, "ws-1").Return(42, nil)
	sessions := new(MockSessionRepository)
	sessions.On("ListSessions", mock.Anything, "ws-1", domain.SessionFilter{Period: period}).Return([]domain.ProcedureSession{
		{Status: domain.SessionCompleted}, {Status: domain.SessionCompleted}, {Status: domain.SessionNoShow}, {Status: domain.SessionScheduled},
	}, nil)
	repos.CostRepo = costs
	repos.PatientRepo = patients
	repos.SessionRepo = sessions

	summary, err := services.NewReportService(repos).DashboardSummary(context.Background(), "ws-1", period)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.SalesCount)
	assert.True(t, dec("2000").Equal(summary.Revenue))
	assert.True(t, dec("1000").Equal(summary.FixedCosts), "costs paid outside the period are excluded")
	assert.True(t, dec("120").Equal(summary.VariableCosts))
	assert.True(t, dec("175").Equal(summary.Commissions))
	assert.True(t, dec("705").Equal(summary.Margin))
	assert.Equal(t, 42, summary.ActivePatients)
	assert.Equal(t, 2, summary.Attendance.Completed)
	assert.Equal(t, 1, summary.Attendance.NoShow)
}

func TestReportService_DashboardSummary_RecurringTemplateCountedOnce(t *testing.T) {
	repos, period := reportFixture(t)
	template := recurringTemplate("rent", domain.FrequencyMonthly, day(2025, time.May, 5))
	mayReplica := template
	mayReplica.CostID = "rent-2025-05"
	mayReplica.RecurrenceSourceID = &template.CostID
	juneReplica := mayReplica
	june := day(2025, time.June, 5)
	juneReplica.CostID = "rent-2025-06"
	juneReplica.PaymentDate = &june
	unprocessed := recurringTemplate("insurance", domain.FrequencyMonthly, day(2025, time.May, 20))

	patients := new(MockPatientRepository)
	patients.On("CountActivePatients", mock.Anything, "ws-1").Return(0, nil)
	sessions := new(MockSessionRepository)
	sessions.On("ListSessions", mock.Anything, "ws-1", mock.Anything).Return([]domain.ProcedureSession{}, nil)
	repos.CostRepo = newMemCostRepo(template, mayReplica, juneReplica, unprocessed)
	repos.PatientRepo = patients
	repos.SessionRepo = sessions

	summary, err := services.NewReportService(repos).DashboardSummary(context.Background(), "ws-1", period)

	require.NoError(t, err)
	// rent once through its replica, insurance once through its template
	assert.True(t, dec("3000").Equal(summary.FixedCosts), "got %s", summary.FixedCosts)
}
