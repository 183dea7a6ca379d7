package pgsql

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxProcedureRepository struct {
	BaseRepository
}

func newPgxProcedureRepository(db DBTX) portsrepo.ProcedureRepositoryFacade {
	return &PgxProcedureRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.ProcedureRepositoryFacade = (*PgxProcedureRepository)(nil)

const procedureSelectQuery = `
SELECT
	p.procedure_id, p.workspace_id, p.name, p.description, p.price, p.duration_minutes, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by, p.version
FROM procedures p
`

func (r *PgxProcedureRepository) SaveProcedure(ctx context.Context, procedure domain.Procedure) error {
	query := `
		INSERT INTO procedures (
			procedure_id, workspace_id, name, description, price, duration_minutes, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		procedure.ProcedureID,
		procedure.WorkspaceID,
		procedure.Name,
		procedure.Description,
		procedure.Price,
		procedure.DurationMinutes,
		procedure.IsActive,
		procedure.CreatedAt,
		procedure.CreatedBy,
		procedure.LastUpdatedAt,
		procedure.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "procedure")
	}
	return nil
}

func (r *PgxProcedureRepository) FindProcedureByID(ctx context.Context, workspaceID, procedureID string) (*domain.Procedure, error) {
	return collectOne[domain.Procedure](ctx, r.DB, "procedure",
		procedureSelectQuery+`WHERE p.workspace_id = $1 AND p.procedure_id = $2`, workspaceID, procedureID)
}

func (r *PgxProcedureRepository) ListProcedures(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Procedure, error) {
	query := procedureSelectQuery + `WHERE p.workspace_id = $1`
	if !includeInactive {
		query += ` AND p.is_active`
	}
	return collect[domain.Procedure](ctx, r.DB, "procedures", query+` ORDER BY p.name`, workspaceID)
}

func (r *PgxProcedureRepository) UpdateProcedure(ctx context.Context, procedure domain.Procedure) error {
	query := `
		UPDATE procedures
		SET name = $1, description = $2, price = $3, duration_minutes = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE workspace_id = $8 AND procedure_id = $9 AND version = $10;
	`
	tag, err := r.DB.Exec(ctx, query,
		procedure.Name,
		procedure.Description,
		procedure.Price,
		procedure.DurationMinutes,
		procedure.IsActive,
		procedure.LastUpdatedAt,
		procedure.LastUpdatedBy,
		procedure.WorkspaceID,
		procedure.ProcedureID,
		procedure.Version,
	)
	if err != nil {
		return translateWriteError(err, "procedure")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("procedure was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxProcedureRepository) DeactivateProcedure(ctx context.Context, workspaceID, procedureID, updatedBy string) error {
	query := `
		UPDATE procedures
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1, version = version + 1
		WHERE workspace_id = $2 AND procedure_id = $3;
	`
	return r.execOne(ctx, "procedure", query, updatedBy, workspaceID, procedureID)
}
