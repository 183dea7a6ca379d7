package repositories

import (
	"context"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// CostReader defines read operations for cost data
type CostReader interface {
	FindCostByID(ctx context.Context, workspaceID, costID string) (*domain.Cost, error)
	ListCosts(ctx context.Context, workspaceID string, filter domain.CostFilter) ([]domain.Cost, error)
	// ListDueRecurringCosts returns active FIXED templates with a frequency
	// whose next recurrence date is on or before today.
	ListDueRecurringCosts(ctx context.Context, workspaceID string, today time.Time) ([]domain.Cost, error)
}

// CostWriter defines write operations for cost data
type CostWriter interface {
	SaveCost(ctx context.Context, cost domain.Cost) error
	UpdateCost(ctx context.Context, cost domain.Cost) error
	DeactivateCost(ctx context.Context, workspaceID, costID, updatedBy string) error
}

// CostRecurrenceManager holds the steps of one template replication.
// They are meant to run inside a single transaction.
type CostRecurrenceManager interface {
	// LockRecurringTemplate re-reads a template and holds a row lock until the transaction ends.
	LockRecurringTemplate(ctx context.Context, workspaceID, costID string) (*domain.Cost, error)
	// SaveReplica inserts a dated copy; created is false when a copy for the
	// same template and payment date already exists.
	SaveReplica(ctx context.Context, replica domain.Cost) (created bool, err error)
	AdvanceRecurrence(ctx context.Context, workspaceID, costID string, next time.Time, updatedBy string) error
}

// CostRepositoryFacade combines all cost-related repository interfaces
type CostRepositoryFacade interface {
	CostReader
	CostWriter
	CostRecurrenceManager
}
