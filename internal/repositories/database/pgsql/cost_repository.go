package pgsql

import (
	"context"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxCostRepository struct {
	BaseRepository
}

func newPgxCostRepository(db DBTX) portsrepo.CostRepositoryFacade {
	return &PgxCostRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.CostRepositoryFacade = (*PgxCostRepository)(nil)

const costSelectQuery = `
SELECT
	c.cost_id, c.workspace_id, c.description, c.category, c.cost_type, c.fixed_value, c.percentage,
	c.card_operator, c.receiving_days, c.payment_date, c.is_active, c.is_recurring,
	c.recurrence_frequency, c.next_recurrence_date, c.recurrence_source_id,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by, c.version
FROM costs c
`

const costInsertQuery = `
	INSERT INTO costs (
		cost_id, workspace_id, description, category, cost_type, fixed_value, percentage,
		card_operator, receiving_days, payment_date, is_active, is_recurring,
		recurrence_frequency, next_recurrence_date, recurrence_source_id,
		created_at, created_by, last_updated_at, last_updated_by, version
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, 1)
`

func costInsertArgs(cost domain.Cost) []any {
	return []any{
		cost.CostID,
		cost.WorkspaceID,
		cost.Description,
		cost.Category,
		cost.CostType,
		cost.FixedValue,
		cost.Percentage,
		cost.CardOperator,
		cost.ReceivingDays,
		cost.PaymentDate,
		cost.IsActive,
		cost.IsRecurring,
		cost.RecurrenceFrequency,
		cost.NextRecurrenceDate,
		cost.RecurrenceSourceID,
		cost.CreatedAt,
		cost.CreatedBy,
		cost.LastUpdatedAt,
		cost.LastUpdatedBy,
	}
}

func (r *PgxCostRepository) SaveCost(ctx context.Context, cost domain.Cost) error {
	if _, err := r.DB.Exec(ctx, costInsertQuery, costInsertArgs(cost)...); err != nil {
		return translateWriteError(err, "cost")
	}
	return nil
}

func (r *PgxCostRepository) FindCostByID(ctx context.Context, workspaceID, costID string) (*domain.Cost, error) {
	return collectOne[domain.Cost](ctx, r.DB, "cost",
		costSelectQuery+`WHERE c.workspace_id = $1 AND c.cost_id = $2`, workspaceID, costID)
}

func (r *PgxCostRepository) ListCosts(ctx context.Context, workspaceID string, filter domain.CostFilter) ([]domain.Cost, error) {
	var where whereBuilder
	where.add("c.workspace_id = ?", workspaceID)
	if !filter.IncludeInactive {
		where.addRaw("c.is_active")
	}
	if filter.Category != nil {
		where.add("c.category = ?", *filter.Category)
	}
	if filter.RecurringOnly {
		where.addRaw("c.is_recurring AND c.recurrence_source_id IS NULL")
	}
	if !filter.Period.From.IsZero() {
		where.add("c.payment_date >= ?", filter.Period.From)
	}
	if !filter.Period.To.IsZero() {
		where.add("c.payment_date <= ?", filter.Period.To)
	}
	query := costSelectQuery + where.String() + " ORDER BY c.payment_date DESC NULLS LAST, c.description"
	query += where.page(filter.Limit, filter.Offset)
	return collect[domain.Cost](ctx, r.DB, "costs", query, where.args...)
}

// ListDueRecurringCosts only returns templates; replicas carry the recurring
// flags too but point at their source and are never replicated themselves.
func (r *PgxCostRepository) ListDueRecurringCosts(ctx context.Context, workspaceID string, today time.Time) ([]domain.Cost, error) {
	query := costSelectQuery + `
		WHERE c.workspace_id = $1
			AND c.is_active AND c.is_recurring
			AND c.cost_type = 'FIXED'
			AND c.recurrence_source_id IS NULL
			AND c.recurrence_frequency IS NOT NULL
			AND c.next_recurrence_date IS NOT NULL
			AND c.next_recurrence_date <= $2
		ORDER BY c.next_recurrence_date, c.cost_id`
	return collect[domain.Cost](ctx, r.DB, "due costs", query, workspaceID, today)
}

func (r *PgxCostRepository) UpdateCost(ctx context.Context, cost domain.Cost) error {
	query := `
		UPDATE costs
		SET description = $1, category = $2, cost_type = $3, fixed_value = $4, percentage = $5,
			card_operator = $6, receiving_days = $7, payment_date = $8, is_active = $9, is_recurring = $10,
			recurrence_frequency = $11, next_recurrence_date = $12,
			last_updated_at = $13, last_updated_by = $14, version = version + 1
		WHERE workspace_id = $15 AND cost_id = $16 AND version = $17;
	`
	tag, err := r.DB.Exec(ctx, query,
		cost.Description,
		cost.Category,
		cost.CostType,
		cost.FixedValue,
		cost.Percentage,
		cost.CardOperator,
		cost.ReceivingDays,
		cost.PaymentDate,
		cost.IsActive,
		cost.IsRecurring,
		cost.RecurrenceFrequency,
		cost.NextRecurrenceDate,
		cost.LastUpdatedAt,
		cost.LastUpdatedBy,
		cost.WorkspaceID,
		cost.CostID,
		cost.Version,
	)
	if err != nil {
		return translateWriteError(err, "cost")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("cost was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxCostRepository) DeactivateCost(ctx context.Context, workspaceID, costID, updatedBy string) error {
	query := `
		UPDATE costs
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1, version = version + 1
		WHERE workspace_id = $2 AND cost_id = $3;
	`
	return r.execOne(ctx, "cost", query, updatedBy, workspaceID, costID)
}

func (r *PgxCostRepository) LockRecurringTemplate(ctx context.Context, workspaceID, costID string) (*domain.Cost, error) {
	return collectOne[domain.Cost](ctx, r.DB, "cost",
		costSelectQuery+`WHERE c.workspace_id = $1 AND c.cost_id = $2 FOR UPDATE`, workspaceID, costID)
}

func (r *PgxCostRepository) SaveReplica(ctx context.Context, replica domain.Cost) (bool, error) {
	query := costInsertQuery + ` ON CONFLICT (recurrence_source_id, payment_date) WHERE recurrence_source_id IS NOT NULL DO NOTHING`
	tag, err := r.DB.Exec(ctx, query, costInsertArgs(replica)...)
	if err != nil {
		return false, translateWriteError(err, "cost replica")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxCostRepository) AdvanceRecurrence(ctx context.Context, workspaceID, costID string, next time.Time, updatedBy string) error {
	query := `
		UPDATE costs
		SET next_recurrence_date = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3 AND cost_id = $4;
	`
	return r.execOne(ctx, "cost", query, next, updatedBy, workspaceID, costID)
}
