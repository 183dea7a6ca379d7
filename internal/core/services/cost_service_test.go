package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/recurrence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// memCostRepo is an in-memory CostRepositoryFacade with the same replica
// uniqueness rule as the database.
type memCostRepo struct {
	mu        sync.Mutex
	costs     map[string]domain.Cost
	failSave  map[string]error // keyed by recurrence source id
	saveCalls int
}

func newMemCostRepo(costs ...domain.Cost) *memCostRepo {
	r := &memCostRepo{costs: map[string]domain.Cost{}, failSave: map[string]error{}}
	for _, c := range costs {
		r.costs[c.CostID] = c
	}
	return r
}

func (r *memCostRepo) FindCostByID(_ context.Context, workspaceID, costID string) (*domain.Cost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.costs[costID]
	if !ok || c.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError("cost not found")
	}
	return &c, nil
}

func (r *memCostRepo) ListCosts(_ context.Context, workspaceID string, _ domain.CostFilter) ([]domain.Cost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Cost
	for _, c := range r.costs {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCostRepo) ListDueRecurringCosts(_ context.Context, workspaceID string, today time.Time) ([]domain.Cost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Cost
	for _, c := range r.costs {
		if c.WorkspaceID == workspaceID && c.IsActive && c.IsRecurring && c.RecurrenceSourceID == nil &&
			c.CostType == domain.CostTypeFixed && c.RecurrenceFrequency != nil &&
			c.NextRecurrenceDate != nil && !c.NextRecurrenceDate.After(today) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CostID < out[j].CostID })
	return out, nil
}

func (r *memCostRepo) SaveCost(_ context.Context, cost domain.Cost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.costs[cost.CostID] = cost
	return nil
}

func (r *memCostRepo) UpdateCost(_ context.Context, cost domain.Cost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.costs[cost.CostID] = cost
	return nil
}

func (r *memCostRepo) DeactivateCost(_ context.Context, workspaceID, costID, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.costs[costID]
	if !ok || c.WorkspaceID != workspaceID {
		return apperrors.NewNotFoundError("cost not found")
	}
	c.IsActive = false
	r.costs[costID] = c
	return nil
}

func (r *memCostRepo) LockRecurringTemplate(ctx context.Context, workspaceID, costID string) (*domain.Cost, error) {
	return r.FindCostByID(ctx, workspaceID, costID)
}

func (r *memCostRepo) SaveReplica(_ context.Context, replica domain.Cost) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if err := r.failSave[*replica.RecurrenceSourceID]; err != nil {
		return false, err
	}
	for _, c := range r.costs {
		if c.RecurrenceSourceID != nil && *c.RecurrenceSourceID == *replica.RecurrenceSourceID &&
			c.PaymentDate.Equal(*replica.PaymentDate) {
			return false, nil
		}
	}
	r.costs[replica.CostID] = replica
	return true, nil
}

func (r *memCostRepo) AdvanceRecurrence(_ context.Context, workspaceID, costID string, next time.Time, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.costs[costID]
	if !ok || c.WorkspaceID != workspaceID {
		return apperrors.NewNotFoundError("cost not found")
	}
	c.NextRecurrenceDate = &next
	r.costs[costID] = c
	return nil
}

func (r *memCostRepo) replicasOf(sourceID string) []domain.Cost {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Cost
	for _, c := range r.costs {
		if c.RecurrenceSourceID != nil && *c.RecurrenceSourceID == sourceID {
			out = append(out, c)
		}
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recurringTemplate(id string, freq domain.RecurrenceFrequency, next time.Time) domain.Cost {
	value := decimal.RequireFromString("1500.00")
	f := freq
	n, p := next, next
	return domain.Cost{
		CostID:              id,
		WorkspaceID:         "ws-1",
		Description:         "Aluguel " + id,
		Category:            domain.CostOperational,
		CostType:            domain.CostTypeFixed,
		FixedValue:          &value,
		PaymentDate:         &p,
		IsActive:            true,
		IsRecurring:         true,
		RecurrenceFrequency: &f,
		NextRecurrenceDate:  &n,
	}
}

type CostServiceTestSuite struct {
	suite.Suite
	repo    *memCostRepo
	locker  *fakeLocker
	service portssvc.CostSvcFacade
}

func (suite *CostServiceTestSuite) setup(costs ...domain.Cost) {
	suite.repo = newMemCostRepo(costs...)
	suite.locker = newFakeLocker()
	tx := &fakeTxRunner{repos: portsrepo.RepositoryProvider{CostRepo: suite.repo}}
	suite.service = services.NewCostService(suite.repo, tx, suite.locker, time.Minute)
}

func TestCostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CostServiceTestSuite))
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_AdvancesByFrequency() {
	today := day(2025, time.January, 31)
	cases := []struct {
		freq domain.RecurrenceFrequency
		want time.Time
	}{
		{domain.FrequencyMonthly, day(2025, time.February, 28)},
		{domain.FrequencyQuarterly, day(2025, time.April, 30)},
		{domain.FrequencyYearly, day(2026, time.January, 31)},
	}
	for _, tc := range cases {
		suite.Run(string(tc.freq), func() {
			suite.setup(recurringTemplate("tmpl", tc.freq, today))

			res, err := suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today.Add(15*time.Hour))

			suite.Require().NoError(err)
			suite.Equal(1, res.Processed)
			suite.Require().Len(res.Items, 1)
			suite.Equal("tmpl", res.Items[0].OriginalID)
			suite.True(tc.want.Equal(res.Items[0].NextDate), "next date %s", res.Items[0].NextDate)
			suite.Equal("1500", res.Items[0].Amount.String())

			tmpl, _ := suite.repo.FindCostByID(context.Background(), "ws-1", "tmpl")
			suite.True(tc.want.Equal(*tmpl.NextRecurrenceDate))
			suite.True(tmpl.IsActive, "template is never deactivated")

			replicas := suite.repo.replicasOf("tmpl")
			suite.Require().Len(replicas, 1)
			r := replicas[0]
			suite.Equal(res.Items[0].NewID, r.CostID)
			suite.True(today.Equal(*r.PaymentDate))
			suite.True(tc.want.Equal(*r.NextRecurrenceDate))
			suite.True(r.IsRecurring)
			suite.True(r.IsActive)
			suite.Equal(tmpl.Description, r.Description)
			suite.True(tmpl.FixedValue.Equal(*r.FixedValue))
		})
	}
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_SecondRunSameDayIsNoop() {
	today := day(2025, time.March, 10)
	suite.setup(recurringTemplate("tmpl", domain.FrequencyMonthly, today))
	ctx := context.Background()

	first, err := suite.service.ProcessRecurrences(ctx, "ws-1", "actor", today)
	suite.Require().NoError(err)
	suite.Equal(1, first.Processed)

	second, err := suite.service.ProcessRecurrences(ctx, "ws-1", "actor", today.Add(23*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(0, second.Processed)
	suite.Empty(second.Items)
	suite.Len(suite.repo.replicasOf("tmpl"), 1)

	pending, err := suite.service.ListPendingRecurrences(ctx, "ws-1", today)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_ExistingReplicaIsSkipped() {
	today := day(2025, time.March, 10)
	tmpl := recurringTemplate("tmpl", domain.FrequencyMonthly, today)
	src := "tmpl"
	pay := today
	existing := recurringTemplate("old-replica", domain.FrequencyMonthly, day(2025, time.April, 10))
	existing.RecurrenceSourceID = &src
	existing.PaymentDate = &pay
	suite.setup(tmpl, existing)

	res, err := suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today)

	suite.Require().NoError(err)
	suite.Equal(0, res.Processed)
	suite.Equal(1, res.Skipped)
	suite.Len(suite.repo.replicasOf("tmpl"), 1)
	got, _ := suite.repo.FindCostByID(context.Background(), "ws-1", "tmpl")
	suite.True(day(2025, time.April, 10).Equal(*got.NextRecurrenceDate), "template still rolls forward")
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_PartialFailureContinues() {
	today := day(2025, time.June, 1)
	suite.setup(
		recurringTemplate("a", domain.FrequencyMonthly, today),
		recurringTemplate("b", domain.FrequencyMonthly, today.AddDate(0, 0, -3)),
		recurringTemplate("c", domain.FrequencyYearly, today),
	)
	suite.repo.failSave["b"] = errors.New("disk full")

	res, err := suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today)

	suite.Require().NoError(err)
	suite.Equal(2, res.Processed)
	suite.Require().Len(res.Failures, 1)
	suite.Equal("b", res.Failures[0].OriginalID)
	suite.Equal("internal error", res.Failures[0].Error)
	b, _ := suite.repo.FindCostByID(context.Background(), "ws-1", "b")
	suite.True(today.AddDate(0, 0, -3).Equal(*b.NextRecurrenceDate), "failed template is not advanced")
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_IgnoresInactiveAndPercentageAndFuture() {
	today := day(2025, time.June, 1)
	inactive := recurringTemplate("inactive", domain.FrequencyMonthly, today)
	inactive.IsActive = false
	pct := recurringTemplate("pct", domain.FrequencyMonthly, today)
	pct.CostType = domain.CostTypePercentage
	future := recurringTemplate("future", domain.FrequencyMonthly, today.AddDate(0, 0, 1))
	suite.setup(inactive, pct, future)

	res, err := suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today)

	suite.Require().NoError(err)
	suite.Equal(0, res.Processed)
	suite.Equal(0, suite.repo.saveCalls)
}

func (suite *CostServiceTestSuite) TestProcessRecurrences_ConcurrentRunIsRejected() {
	today := day(2025, time.June, 1)
	suite.setup(recurringTemplate("a", domain.FrequencyMonthly, today))
	release, ok, err := suite.locker.TryLock(context.Background(), "recurrence:ws-1", time.Minute)
	suite.Require().NoError(err)
	suite.Require().True(ok)

	_, err = suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Empty(suite.repo.replicasOf("a"))

	release()
	res, err := suite.service.ProcessRecurrences(context.Background(), "ws-1", "actor", today)
	suite.Require().NoError(err)
	suite.Equal(1, res.Processed)
}

func (suite *CostServiceTestSuite) TestCreateCost_Validation() {
	suite.setup()
	ctx := context.Background()
	session := domain.Session{UserID: "u1", Role: domain.RoleAdmin}
	monthly := domain.FrequencyMonthly
	value := decimal.NewFromInt(100)
	pct := decimal.NewFromInt(5)
	next := time.Date(2025, time.May, 5, 14, 30, 0, 0, time.UTC)

	_, err := suite.service.CreateCost(ctx, session, "ws-1", dto.CreateCostRequest{
		Description: "Taxa", Category: domain.CostTax, CostType: domain.CostTypePercentage,
		Percentage: &pct, IsRecurring: true, RecurrenceFrequency: &monthly, NextRecurrenceDate: &next,
	})
	suite.ErrorIs(err, apperrors.ErrValidation, "percentage costs cannot recur")

	_, err = suite.service.CreateCost(ctx, session, "ws-1", dto.CreateCostRequest{
		Description: "Aluguel", Category: domain.CostOperational, CostType: domain.CostTypeFixed,
		FixedValue: &value, IsRecurring: true, NextRecurrenceDate: &next,
	})
	suite.ErrorIs(err, apperrors.ErrValidation, "recurring needs a frequency")

	_, err = suite.service.CreateCost(ctx, session, "ws-1", dto.CreateCostRequest{
		Description: "Aluguel", Category: domain.CostOperational, CostType: domain.CostTypeFixed,
	})
	suite.ErrorIs(err, apperrors.ErrValidation, "fixed needs a value")

	cost, err := suite.service.CreateCost(ctx, session, "ws-1", dto.CreateCostRequest{
		Description: "Aluguel", Category: domain.CostOperational, CostType: domain.CostTypeFixed,
		FixedValue: &value, Percentage: &pct, IsRecurring: true, RecurrenceFrequency: &monthly, NextRecurrenceDate: &next,
	})
	suite.Require().NoError(err)
	suite.Nil(cost.Percentage)
	suite.True(recurrence.NormalizeDay(next).Equal(*cost.NextRecurrenceDate))

	plain, err := suite.service.CreateCost(ctx, session, "ws-1", dto.CreateCostRequest{
		Description: "Luz", Category: domain.CostOperational, CostType: domain.CostTypeFixed,
		FixedValue: &value, RecurrenceFrequency: &monthly, NextRecurrenceDate: &next,
	})
	suite.Require().NoError(err)
	suite.Nil(plain.RecurrenceFrequency)
	suite.Nil(plain.NextRecurrenceDate)
}

func (suite *CostServiceTestSuite) TestGetCost_OtherWorkspaceIsNotFound() {
	suite.setup(recurringTemplate("a", domain.FrequencyMonthly, day(2025, time.June, 1)))

	_, err := suite.service.GetCost(context.Background(), "ws-2", "a")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}
