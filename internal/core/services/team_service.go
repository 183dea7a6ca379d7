package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils"
)

// temporaryPasswordBytes yields an 18 character hex password.
const temporaryPasswordBytes = 9

type teamService struct {
	BaseService
	userRepo      portsrepo.UserRepositoryFacade
	workspaceRepo portsrepo.WorkspaceReader
}

// NewTeamService creates the workspace member management service.
func NewTeamService(userRepo portsrepo.UserRepositoryFacade, workspaceRepo portsrepo.WorkspaceReader) portssvc.TeamSvcFacade {
	return &teamService{
		BaseService:   newBaseService(),
		userRepo:      userRepo,
		workspaceRepo: workspaceRepo,
	}
}

func (s *teamService) ListMembers(ctx context.Context, workspaceID string) ([]domain.User, error) {
	return s.userRepo.ListUsersByWorkspace(ctx, workspaceID)
}

// CreateMember adds a user to the workspace. A random password is generated
// and returned when the request carries none.
func (s *teamService) CreateMember(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateTeamMemberRequest) (*domain.User, string, error) {
	if req.Role == domain.RoleMaster {
		return nil, "", apperrors.NewForbiddenError("MASTER users cannot be created from a workspace")
	}
	if _, err := domain.ParseRole(string(req.Role)); err != nil {
		return nil, "", apperrors.NewValidationFailedError(err.Error())
	}

	email := normalizeEmail(req.Email)
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewConflictError("Email is already registered")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", err
	}

	password, generated := req.Password, ""
	if password == "" {
		var err error
		if generated, err = utils.GenerateSecureRandomString(temporaryPasswordBytes); err != nil {
			return nil, "", fmt.Errorf("failed to generate temporary password: %w", err)
		}
		password = generated
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	ws := workspaceID
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		WorkspaceID:  &ws,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(session.UserID, s.Now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save team member", slog.String("workspace_id", workspaceID))
		return nil, "", err
	}
	s.LogInfo(ctx, "Team member created",
		slog.String("workspace_id", workspaceID),
		slog.String("member_id", user.UserID),
		slog.String("role", string(user.Role)))
	return &user, generated, nil
}

// UpdateMember changes the role or active flag of a member. The workspace
// owner and the caller themselves cannot be demoted or disabled.
func (s *teamService) UpdateMember(ctx context.Context, session domain.Session, workspaceID, userID string, req dto.UpdateTeamMemberRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.WorkspaceID == nil || *user.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError("User not found")
	}

	if req.Role != nil {
		if *req.Role == domain.RoleMaster {
			return nil, apperrors.NewForbiddenError("MASTER role cannot be granted from a workspace")
		}
		if _, err := domain.ParseRole(string(*req.Role)); err != nil {
			return nil, apperrors.NewValidationFailedError(err.Error())
		}
	}
	demoting := (req.Role != nil && *req.Role != user.Role) || (req.IsActive != nil && !*req.IsActive)
	if demoting {
		if userID == session.UserID {
			return nil, apperrors.NewValidationFailedError("You cannot change your own role or disable yourself")
		}
		ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
		if err != nil {
			return nil, err
		}
		if ws.OwnerUserID == userID {
			return nil, apperrors.NewForbiddenError("The workspace owner cannot be demoted or disabled")
		}
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.Touch(session.UserID, s.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	user.Version++
	return user, nil
}
