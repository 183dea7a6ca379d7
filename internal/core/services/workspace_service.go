package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// workspaceService resolves tenants, runs the MASTER console and owner settings.
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		BaseService:   newBaseService(),
		workspaceRepo: workspaceRepo,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// ResolveEffectiveWorkspace applies the impersonation override for MASTER
// sessions and falls back to the caller's own workspace. Impersonation data is
// ignored for every other role.
func (s *workspaceService) ResolveEffectiveWorkspace(ctx context.Context, session domain.Session, imp *domain.Impersonation) (*domain.Workspace, error) {
	if session.IsMaster() && imp.ActiveAt(s.Now()) && imp.MasterUserID == session.UserID {
		// re-read: the workspace may have been deleted since the cookie was issued
		return s.findOrNil(ctx, imp.WorkspaceID)
	}

	owned, err := s.workspaceRepo.FindWorkspaceByOwner(ctx, session.UserID)
	if err == nil {
		return owned, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up owned workspace", slog.String("user_id", session.UserID))
		return nil, err
	}

	if session.WorkspaceID != nil {
		return s.findOrNil(ctx, *session.WorkspaceID)
	}
	return nil, nil
}

func (s *workspaceService) findOrNil(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Workspace no longer exists", slog.String("workspace_id", workspaceID))
			return nil, nil
		}
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown workspace status")
	}
	return s.workspaceRepo.ListWorkspaces(ctx, filter)
}

func (s *workspaceService) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

// UpdateWorkspaceStatus suspends, cancels or reactivates a tenant.
func (s *workspaceService) UpdateWorkspaceStatus(ctx context.Context, session domain.Session, workspaceID string, status domain.WorkspaceStatus) (*domain.Workspace, error) {
	if !session.IsMaster() {
		return nil, apperrors.NewForbiddenError("Only platform owners can change workspace status")
	}
	if !status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown workspace status %q", status))
	}
	if err := s.workspaceRepo.UpdateWorkspaceStatus(ctx, workspaceID, status, session.UserID); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Workspace status changed",
		slog.String("workspace_id", workspaceID),
		slog.String("status", string(status)))
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

// StartImpersonation validates the target of an impersonation. The caller
// turns the returned workspace into a signed cookie.
func (s *workspaceService) StartImpersonation(ctx context.Context, session domain.Session, workspaceID string) (*domain.Workspace, error) {
	if !session.IsMaster() {
		return nil, apperrors.NewForbiddenError("Only platform owners can impersonate a workspace")
	}
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Workspace not found")
		}
		return nil, err
	}
	if ws.Status != domain.WorkspaceActive {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("Workspace is %s and cannot be impersonated", ws.Status))
	}
	s.LogInfo(ctx, "Impersonation started",
		slog.String("master_user_id", session.UserID),
		slog.String("workspace_id", ws.WorkspaceID))
	return ws, nil
}

// UpdateWorkspaceName renames the effective workspace.
func (s *workspaceService) UpdateWorkspaceName(ctx context.Context, session domain.Session, workspaceID string, req dto.UpdateWorkspaceRequest) (*domain.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name cannot be empty")
	}
	if err := s.workspaceRepo.UpdateWorkspaceName(ctx, workspaceID, name, session.UserID); err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}
