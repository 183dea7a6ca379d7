package pgsql

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(db DBTX) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryFacade
var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

const workspaceSelectQuery = `
SELECT
	w.workspace_id, w.name, w.owner_user_id, w.status,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by, w.version
FROM workspaces w
`

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, owner_user_id, status,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.OwnerUserID,
		workspace.Status,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "workspace")
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	return collectOne[domain.Workspace](ctx, r.DB, "workspace", workspaceSelectQuery+`WHERE w.workspace_id = $1`, workspaceID)
}

func (r *PgxWorkspaceRepository) FindWorkspaceByOwner(ctx context.Context, ownerUserID string) (*domain.Workspace, error) {
	return collectOne[domain.Workspace](ctx, r.DB, "workspace", workspaceSelectQuery+`WHERE w.owner_user_id = $1`, ownerUserID)
}

func (r *PgxWorkspaceRepository) ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("w.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		where.add("w.name ILIKE ?", "%"+filter.Search+"%")
	}
	query := workspaceSelectQuery + where.String() + " ORDER BY w.created_at DESC"
	query += where.page(filter.Limit, filter.Offset)
	return collect[domain.Workspace](ctx, r.DB, "workspaces", query, where.args...)
}

func (r *PgxWorkspaceRepository) UpdateWorkspaceStatus(ctx context.Context, workspaceID string, status domain.WorkspaceStatus, updatedBy string) error {
	query := `
		UPDATE workspaces
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3;
	`
	return r.execOne(ctx, "workspace", query, status, updatedBy, workspaceID)
}

func (r *PgxWorkspaceRepository) UpdateWorkspaceName(ctx context.Context, workspaceID, name, updatedBy string) error {
	query := `
		UPDATE workspaces
		SET name = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3;
	`
	return r.execOne(ctx, "workspace", query, name, updatedBy, workspaceID)
}
