package repositories

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	// FindUserByEmail matches case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsersByWorkspace(ctx context.Context, workspaceID string) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	// UpdateUser persists profile, role and active flag, guarded by user.Version.
	UpdateUser(ctx context.Context, user domain.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string) error
	LinkWorkspace(ctx context.Context, userID, workspaceID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
