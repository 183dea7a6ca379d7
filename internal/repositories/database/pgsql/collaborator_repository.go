package pgsql

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxCollaboratorRepository struct {
	BaseRepository
}

func newPgxCollaboratorRepository(db DBTX) portsrepo.CollaboratorRepositoryFacade {
	return &PgxCollaboratorRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.CollaboratorRepositoryFacade = (*PgxCollaboratorRepository)(nil)

const collaboratorSelectQuery = `
SELECT
	c.collaborator_id, c.workspace_id, c.name, c.job_title, c.base_salary, c.charges, c.monthly_hours,
	c.commission_type, c.commission_value, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by, c.version
FROM collaborators c
`

func (r *PgxCollaboratorRepository) SaveCollaborator(ctx context.Context, collaborator domain.Collaborator) error {
	query := `
		INSERT INTO collaborators (
			collaborator_id, workspace_id, name, job_title, base_salary, charges, monthly_hours,
			commission_type, commission_value, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		collaborator.CollaboratorID,
		collaborator.WorkspaceID,
		collaborator.Name,
		collaborator.JobTitle,
		collaborator.BaseSalary,
		collaborator.Charges,
		collaborator.MonthlyHours,
		collaborator.CommissionType,
		collaborator.CommissionValue,
		collaborator.IsActive,
		collaborator.CreatedAt,
		collaborator.CreatedBy,
		collaborator.LastUpdatedAt,
		collaborator.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "collaborator")
	}
	return nil
}

func (r *PgxCollaboratorRepository) FindCollaboratorByID(ctx context.Context, workspaceID, collaboratorID string) (*domain.Collaborator, error) {
	return collectOne[domain.Collaborator](ctx, r.DB, "collaborator",
		collaboratorSelectQuery+`WHERE c.workspace_id = $1 AND c.collaborator_id = $2`, workspaceID, collaboratorID)
}

func (r *PgxCollaboratorRepository) ListCollaborators(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Collaborator, error) {
	query := collaboratorSelectQuery + `WHERE c.workspace_id = $1`
	if !includeInactive {
		query += ` AND c.is_active`
	}
	return collect[domain.Collaborator](ctx, r.DB, "collaborators", query+` ORDER BY c.name`, workspaceID)
}

func (r *PgxCollaboratorRepository) UpdateCollaborator(ctx context.Context, collaborator domain.Collaborator) error {
	query := `
		UPDATE collaborators
		SET name = $1, job_title = $2, base_salary = $3, charges = $4, monthly_hours = $5,
			commission_type = $6, commission_value = $7, is_active = $8,
			last_updated_at = $9, last_updated_by = $10, version = version + 1
		WHERE workspace_id = $11 AND collaborator_id = $12 AND version = $13;
	`
	tag, err := r.DB.Exec(ctx, query,
		collaborator.Name,
		collaborator.JobTitle,
		collaborator.BaseSalary,
		collaborator.Charges,
		collaborator.MonthlyHours,
		collaborator.CommissionType,
		collaborator.CommissionValue,
		collaborator.IsActive,
		collaborator.LastUpdatedAt,
		collaborator.LastUpdatedBy,
		collaborator.WorkspaceID,
		collaborator.CollaboratorID,
		collaborator.Version,
	)
	if err != nil {
		return translateWriteError(err, "collaborator")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("collaborator was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxCollaboratorRepository) DeactivateCollaborator(ctx context.Context, workspaceID, collaboratorID, updatedBy string) error {
	query := `
		UPDATE collaborators
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1, version = version + 1
		WHERE workspace_id = $2 AND collaborator_id = $3;
	`
	return r.execOne(ctx, "collaborator", query, updatedBy, workspaceID, collaboratorID)
}
