package services

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// WorkspaceResolverSvc decides which tenant a request operates on.
type WorkspaceResolverSvc interface {
	// ResolveEffectiveWorkspace returns the impersonated workspace for a MASTER
	// holding a valid impersonation, else the caller's own workspace. A nil
	// workspace with a nil error means nothing resolved.
	ResolveEffectiveWorkspace(ctx context.Context, session domain.Session, imp *domain.Impersonation) (*domain.Workspace, error)
}

// WorkspaceAdminSvc is the MASTER console.
type WorkspaceAdminSvc interface {
	ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error)
	GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	UpdateWorkspaceStatus(ctx context.Context, session domain.Session, workspaceID string, status domain.WorkspaceStatus) (*domain.Workspace, error)
	// StartImpersonation checks the target exists and is ACTIVE and returns it.
	StartImpersonation(ctx context.Context, session domain.Session, workspaceID string) (*domain.Workspace, error)
}

// WorkspaceOwnerSvc covers settings of the caller's own workspace.
type WorkspaceOwnerSvc interface {
	UpdateWorkspaceName(ctx context.Context, session domain.Session, workspaceID string, req dto.UpdateWorkspaceRequest) (*domain.Workspace, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceResolverSvc
	WorkspaceAdminSvc
	WorkspaceOwnerSvc
}

// TeamSvcFacade manages the users linked to a workspace.
type TeamSvcFacade interface {
	ListMembers(ctx context.Context, workspaceID string) ([]domain.User, error)
	// CreateMember returns the generated password when the request had none.
	CreateMember(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateTeamMemberRequest) (*domain.User, string, error)
	UpdateMember(ctx context.Context, session domain.Session, workspaceID, userID string, req dto.UpdateTeamMemberRequest) (*domain.User, error)
}
