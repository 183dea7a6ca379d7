package repositories

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	// FindWorkspaceByOwner is the 1:1 owner -> workspace lookup.
	FindWorkspaceByOwner(ctx context.Context, ownerUserID string) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error
	UpdateWorkspaceStatus(ctx context.Context, workspaceID string, status domain.WorkspaceStatus, updatedBy string) error
	UpdateWorkspaceName(ctx context.Context, workspaceID, name, updatedBy string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
