package pgsql

import (
	"context"
	"strings"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db DBTX) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userSelectQuery = `
SELECT
	u.user_id, u.email, u.password_hash, u.full_name, u.role, u.workspace_id, u.is_active,
	u.created_at, u.created_by, u.last_updated_at, u.last_updated_by, u.version
FROM users u
`

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (
			user_id, email, password_hash, full_name, role, workspace_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		user.UserID,
		strings.ToLower(user.Email),
		user.PasswordHash,
		user.FullName,
		user.Role,
		user.WorkspaceID,
		user.IsActive,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "user")
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.DB, "user", userSelectQuery+`WHERE u.user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.DB, "user", userSelectQuery+`WHERE LOWER(u.email) = LOWER($1)`, strings.TrimSpace(email))
}

func (r *PgxUserRepository) ListUsersByWorkspace(ctx context.Context, workspaceID string) ([]domain.User, error) {
	return collect[domain.User](ctx, r.DB, "users", userSelectQuery+`WHERE u.workspace_id = $1 ORDER BY u.full_name`, workspaceID)
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET email = $1, full_name = $2, role = $3, is_active = $4,
			last_updated_at = $5, last_updated_by = $6, version = version + 1
		WHERE user_id = $7 AND version = $8;
	`
	tag, err := r.DB.Exec(ctx, query,
		strings.ToLower(user.Email),
		user.FullName,
		user.Role,
		user.IsActive,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
		user.UserID,
		user.Version,
	)
	if err != nil {
		return translateWriteError(err, "user")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("user was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string) error {
	query := `
		UPDATE users
		SET password_hash = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE user_id = $3;
	`
	return r.execOne(ctx, "user", query, passwordHash, updatedBy, userID)
}

func (r *PgxUserRepository) LinkWorkspace(ctx context.Context, userID, workspaceID string) error {
	query := `UPDATE users SET workspace_id = $1 WHERE user_id = $2;`
	return r.execOne(ctx, "user", query, workspaceID, userID)
}
