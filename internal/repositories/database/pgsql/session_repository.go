package pgsql

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(db DBTX) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

const sessionSelectQuery = `
SELECT
	ps.session_id, ps.workspace_id, ps.patient_id, ps.procedure_id, ps.collaborator_id, ps.sale_id,
	ps.scheduled_at, ps.status, ps.notes,
	ps.created_at, ps.created_by, ps.last_updated_at, ps.last_updated_by, ps.version
FROM procedure_sessions ps
`

func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.ProcedureSession) error {
	query := `
		INSERT INTO procedure_sessions (
			session_id, workspace_id, patient_id, procedure_id, collaborator_id, sale_id,
			scheduled_at, status, notes,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		session.SessionID,
		session.WorkspaceID,
		session.PatientID,
		session.ProcedureID,
		session.CollaboratorID,
		session.SaleID,
		session.ScheduledAt,
		session.Status,
		session.Notes,
		session.CreatedAt,
		session.CreatedBy,
		session.LastUpdatedAt,
		session.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "session")
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, workspaceID, sessionID string) (*domain.ProcedureSession, error) {
	return collectOne[domain.ProcedureSession](ctx, r.DB, "session",
		sessionSelectQuery+`WHERE ps.workspace_id = $1 AND ps.session_id = $2`, workspaceID, sessionID)
}

func (r *PgxSessionRepository) ListSessions(ctx context.Context, workspaceID string, filter domain.SessionFilter) ([]domain.ProcedureSession, error) {
	var where whereBuilder
	where.add("ps.workspace_id = ?", workspaceID)
	if !filter.Period.From.IsZero() {
		where.add("ps.scheduled_at >= ?", filter.Period.From)
	}
	if !filter.Period.To.IsZero() {
		where.add("ps.scheduled_at <= ?", filter.Period.To)
	}
	if filter.Status != nil {
		where.add("ps.status = ?", *filter.Status)
	}
	if filter.PatientID != "" {
		where.add("ps.patient_id = ?", filter.PatientID)
	}
	if filter.CollaboratorID != "" {
		where.add("ps.collaborator_id = ?", filter.CollaboratorID)
	}
	query := sessionSelectQuery + where.String() + " ORDER BY ps.scheduled_at"
	query += where.page(filter.Limit, filter.Offset)
	return collect[domain.ProcedureSession](ctx, r.DB, "sessions", query, where.args...)
}

func (r *PgxSessionRepository) UpdateSessionStatus(ctx context.Context, workspaceID, sessionID string, status domain.SessionStatus, updatedBy string) error {
	query := `
		UPDATE procedure_sessions
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3 AND session_id = $4;
	`
	return r.execOne(ctx, "session", query, status, updatedBy, workspaceID, sessionID)
}
