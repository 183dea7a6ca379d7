package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/recurrence"
)

// recurrenceLockPrefix namespaces the per-workspace replication lock.
const recurrenceLockPrefix = "recurrence:"

type costService struct {
	BaseService
	costRepo portsrepo.CostRepositoryFacade
	tx       portsrepo.TxRunner
	locker   portsrepo.Locker
	lockTTL  time.Duration
}

// NewCostService creates the cost service. locker serialises replication runs
// per workspace; lockTTL bounds how long a crashed run can hold it.
func NewCostService(costRepo portsrepo.CostRepositoryFacade, tx portsrepo.TxRunner, locker portsrepo.Locker, lockTTL time.Duration) portssvc.CostSvcFacade {
	return &costService{
		BaseService: newBaseService(),
		costRepo:    costRepo,
		tx:          tx,
		locker:      locker,
		lockTTL:     lockTTL,
	}
}

var _ portssvc.CostSvcFacade = (*costService)(nil)

func (s *costService) CreateCost(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateCostRequest) (*domain.Cost, error) {
	cost := domain.Cost{
		CostID:              uuid.NewString(),
		WorkspaceID:         workspaceID,
		Description:         strings.TrimSpace(req.Description),
		Category:            req.Category,
		CostType:            req.CostType,
		FixedValue:          req.FixedValue,
		Percentage:          req.Percentage,
		CardOperator:        req.CardOperator,
		ReceivingDays:       req.ReceivingDays,
		PaymentDate:         req.PaymentDate,
		IsActive:            true,
		IsRecurring:         req.IsRecurring,
		RecurrenceFrequency: req.RecurrenceFrequency,
		NextRecurrenceDate:  req.NextRecurrenceDate,
		AuditFields:         domain.NewAuditFields(session.UserID, s.Now()),
	}
	if err := normalizeCost(&cost); err != nil {
		return nil, err
	}
	if err := s.costRepo.SaveCost(ctx, cost); err != nil {
		s.LogError(ctx, err, "Failed to save cost", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return &cost, nil
}

func (s *costService) GetCost(ctx context.Context, workspaceID, costID string) (*domain.Cost, error) {
	return s.costRepo.FindCostByID(ctx, workspaceID, costID)
}

func (s *costService) ListCosts(ctx context.Context, workspaceID string, filter domain.CostFilter) ([]domain.Cost, error) {
	return s.costRepo.ListCosts(ctx, workspaceID, filter)
}

func (s *costService) UpdateCost(ctx context.Context, session domain.Session, workspaceID, costID string, req dto.UpdateCostRequest) (*domain.Cost, error) {
	cost, err := s.costRepo.FindCostByID(ctx, workspaceID, costID)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		cost.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		cost.Category = *req.Category
	}
	if req.CostType != nil {
		cost.CostType = *req.CostType
	}
	if req.FixedValue != nil {
		cost.FixedValue = req.FixedValue
	}
	if req.Percentage != nil {
		cost.Percentage = req.Percentage
	}
	if req.CardOperator != nil {
		cost.CardOperator = req.CardOperator
	}
	if req.ReceivingDays != nil {
		cost.ReceivingDays = req.ReceivingDays
	}
	if req.PaymentDate != nil {
		cost.PaymentDate = req.PaymentDate
	}
	if req.IsActive != nil {
		cost.IsActive = *req.IsActive
	}
	if req.IsRecurring != nil {
		cost.IsRecurring = *req.IsRecurring
	}
	if req.RecurrenceFrequency != nil {
		cost.RecurrenceFrequency = req.RecurrenceFrequency
	}
	if req.NextRecurrenceDate != nil {
		cost.NextRecurrenceDate = req.NextRecurrenceDate
	}
	if err := normalizeCost(cost); err != nil {
		return nil, err
	}
	cost.Touch(session.UserID, s.Now())
	if err := s.costRepo.UpdateCost(ctx, *cost); err != nil {
		return nil, err
	}
	cost.Version++
	return cost, nil
}

func (s *costService) DeleteCost(ctx context.Context, session domain.Session, workspaceID, costID string) error {
	return s.costRepo.DeactivateCost(ctx, workspaceID, costID, session.UserID)
}

// ListPendingRecurrences lists the templates ProcessRecurrences would replicate today.
func (s *costService) ListPendingRecurrences(ctx context.Context, workspaceID string, today time.Time) ([]domain.Cost, error) {
	return s.costRepo.ListDueRecurringCosts(ctx, workspaceID, recurrence.NormalizeDay(today.UTC()))
}

// ProcessRecurrences replicates every due template of the workspace. Each
// template is handled in its own transaction; a failing template is reported
// and the rest of the batch continues. Runs for the same workspace are
// mutually exclusive and a second run on the same day finds nothing due.
func (s *costService) ProcessRecurrences(ctx context.Context, workspaceID, actorID string, today time.Time) (*domain.RecurrenceResult, error) {
	today = recurrence.NormalizeDay(today.UTC())
	logger := s.GetLogger(ctx).With(slog.String("workspace_id", workspaceID))

	release, ok, err := s.locker.TryLock(ctx, recurrenceLockPrefix+workspaceID, s.lockTTL)
	if err != nil {
		logger.Error("Failed to acquire recurrence lock", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to acquire recurrence lock: %w", err)
	}
	if !ok {
		return nil, apperrors.NewConflictError("Recurring costs are already being processed for this workspace")
	}
	defer release()

	due, err := s.costRepo.ListDueRecurringCosts(ctx, workspaceID, today)
	if err != nil {
		logger.Error("Failed to list due recurring costs", slog.String("error", err.Error()))
		return nil, err
	}

	result := &domain.RecurrenceResult{
		Items:    []domain.RecurrenceItem{},
		Failures: []domain.RecurrenceFailure{},
	}
	for _, tmpl := range due {
		item, err := s.replicate(ctx, workspaceID, actorID, tmpl.CostID, today)
		switch {
		case err != nil:
			logger.Error("Failed to replicate recurring cost",
				slog.String("cost_id", tmpl.CostID),
				slog.String("error", err.Error()))
			result.Failures = append(result.Failures, domain.RecurrenceFailure{
				OriginalID:  tmpl.CostID,
				Description: tmpl.Description,
				Error:       clientMessage(err),
			})
		case item == nil:
			result.Skipped++
		default:
			result.Items = append(result.Items, *item)
			result.Processed++
		}
	}

	logger.Info("Recurring costs processed",
		slog.Int("due", len(due)),
		slog.Int("processed", result.Processed),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", len(result.Failures)))
	return result, nil
}

// replicate creates the dated copy of one template and rolls the template
// forward, atomically. It returns a nil item when the template stopped being
// due or its copy for this date already exists.
func (s *costService) replicate(ctx context.Context, workspaceID, actorID, costID string, today time.Time) (*domain.RecurrenceItem, error) {
	var item *domain.RecurrenceItem
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		item = nil
		tmpl, err := repos.CostRepo.LockRecurringTemplate(ctx, workspaceID, costID)
		if err != nil {
			return err
		}
		if !isDueTemplate(tmpl, today) {
			return nil
		}

		dueDate := recurrence.NormalizeDay(*tmpl.NextRecurrenceDate)
		next, err := recurrence.Advance(dueDate, *tmpl.RecurrenceFrequency)
		if err != nil {
			return apperrors.NewValidationFailedError(err.Error())
		}

		replica := domain.Cost{
			CostID:              uuid.NewString(),
			WorkspaceID:         workspaceID,
			Description:         tmpl.Description,
			Category:            tmpl.Category,
			CostType:            tmpl.CostType,
			FixedValue:          tmpl.FixedValue,
			Percentage:          tmpl.Percentage,
			CardOperator:        tmpl.CardOperator,
			ReceivingDays:       tmpl.ReceivingDays,
			PaymentDate:         &dueDate,
			IsActive:            true,
			IsRecurring:         true,
			RecurrenceFrequency: tmpl.RecurrenceFrequency,
			NextRecurrenceDate:  &next,
			RecurrenceSourceID:  &tmpl.CostID,
			AuditFields:         domain.NewAuditFields(actorID, s.Now()),
		}
		created, err := repos.CostRepo.SaveReplica(ctx, replica)
		if err != nil {
			return err
		}
		if err := repos.CostRepo.AdvanceRecurrence(ctx, workspaceID, tmpl.CostID, next, actorID); err != nil {
			return err
		}
		if created {
			item = &domain.RecurrenceItem{
				OriginalID:  tmpl.CostID,
				NewID:       replica.CostID,
				Description: tmpl.Description,
				Amount:      tmpl.Amount(),
				NextDate:    next,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// isDueTemplate re-checks, under the row lock, what ListDueRecurringCosts selected.
func isDueTemplate(c *domain.Cost, today time.Time) bool {
	return c.IsActive && c.IsRecurring &&
		c.RecurrenceSourceID == nil &&
		c.CostType == domain.CostTypeFixed &&
		c.RecurrenceFrequency != nil &&
		c.NextRecurrenceDate != nil &&
		recurrence.IsDue(*c.NextRecurrenceDate, today)
}

// normalizeCost validates a cost and clears the fields that do not apply to its type.
func normalizeCost(c *domain.Cost) error {
	if c.Description == "" {
		return apperrors.NewValidationFailedError("description is required")
	}
	switch c.Category {
	case domain.CostOperational, domain.CostTax, domain.CostCommission, domain.CostCard:
	default:
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown category %q", c.Category))
	}

	switch c.CostType {
	case domain.CostTypeFixed:
		if c.FixedValue == nil {
			return apperrors.NewValidationFailedError("fixedValue is required for FIXED costs")
		}
		if c.FixedValue.IsNegative() {
			return apperrors.NewValidationFailedError("fixedValue cannot be negative")
		}
		v := c.FixedValue.Round(2)
		c.FixedValue, c.Percentage = &v, nil
	case domain.CostTypePercentage:
		if c.Percentage == nil {
			return apperrors.NewValidationFailedError("percentage is required for PERCENTAGE costs")
		}
		if c.Percentage.IsNegative() || c.Percentage.GreaterThan(hundredPercent) {
			return apperrors.NewValidationFailedError("percentage must be between 0 and 100")
		}
		c.FixedValue = nil
	default:
		return apperrors.NewValidationFailedError(fmt.Sprintf("unknown costType %q", c.CostType))
	}

	if c.PaymentDate != nil {
		d := recurrence.NormalizeDay(c.PaymentDate.UTC())
		c.PaymentDate = &d
	}

	if !c.IsRecurring {
		c.RecurrenceFrequency, c.NextRecurrenceDate = nil, nil
		return nil
	}
	if c.CostType != domain.CostTypeFixed {
		return apperrors.NewValidationFailedError("only FIXED costs can be recurring")
	}
	if c.RecurrenceFrequency == nil {
		return apperrors.NewValidationFailedError("recurrenceFrequency is required for recurring costs")
	}
	if _, err := recurrence.MonthsFor(*c.RecurrenceFrequency); err != nil {
		return apperrors.NewValidationFailedError(err.Error())
	}
	if c.NextRecurrenceDate == nil {
		return apperrors.NewValidationFailedError("nextRecurrenceDate is required for recurring costs")
	}
	d := recurrence.NormalizeDay(c.NextRecurrenceDate.UTC())
	c.NextRecurrenceDate = &d
	return nil
}
