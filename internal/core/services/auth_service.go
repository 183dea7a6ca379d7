package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// errBadCredentials is returned for unknown emails and wrong passwords alike.
var errBadCredentials = apperrors.NewUnauthorizedError("Invalid email or password")

// tokenService implements the TokenSvcFacade on top of HS256 JWTs.
// Session and impersonation tokens are signed with different secrets.
type tokenService struct {
	BaseService
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{BaseService: newBaseService(), cfg: cfg}
}

// GenerateSessionToken creates a signed session token for the given user.
func (s *tokenService) GenerateSessionToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign session token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiryTime, nil
}

// ParseSessionToken validates a session token and returns its subject.
func (s *tokenService) ParseSessionToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return "", apperrors.NewAppError(http.StatusUnauthorized, "Invalid or expired session", err)
	}
	return claims.Subject, nil
}

// GenerateImpersonationToken signs an impersonation cookie binding masterUserID to workspace.
func (s *tokenService) GenerateImpersonationToken(ctx context.Context, masterUserID string, workspace *domain.Workspace) (string, *domain.Impersonation, error) {
	token, expiresAt, err := utils.GenerateImpersonationToken(masterUserID, workspace.WorkspaceID, workspace.Name,
		s.cfg.ImpersonationSecret, s.cfg.ImpersonationTTL, s.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign impersonation token", slog.String("workspace_id", workspace.WorkspaceID))
		return "", nil, err
	}
	return token, &domain.Impersonation{
		WorkspaceID:   workspace.WorkspaceID,
		WorkspaceName: workspace.Name,
		MasterUserID:  masterUserID,
		ExpiresAt:     expiresAt,
	}, nil
}

// ParseImpersonationToken validates an impersonation cookie value.
func (s *tokenService) ParseImpersonationToken(ctx context.Context, token string) (*domain.Impersonation, error) {
	claims, err := utils.ParseImpersonationToken(token, s.cfg.ImpersonationSecret)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Invalid or expired impersonation", err)
	}
	imp := &domain.Impersonation{
		WorkspaceID:   claims.WorkspaceID,
		WorkspaceName: claims.WorkspaceName,
		MasterUserID:  claims.Subject,
	}
	if claims.ExpiresAt != nil {
		imp.ExpiresAt = claims.ExpiresAt.Time
	}
	return imp, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// --- AuthSvcFacade Implementation ---

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tx       portsrepo.TxRunner
}

// NewAuthService creates the signup / login / profile service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tx portsrepo.TxRunner) portssvc.AuthSvcFacade {
	return &authService{
		BaseService: newBaseService(),
		userRepo:    userRepo,
		tx:          tx,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Signup creates the ADMIN user, its workspace and the starter data. Nothing
// is persisted unless every step succeeds.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.Workspace, error) {
	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password during signup")
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now()
	userID := uuid.NewString()
	workspaceID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	workspace := domain.Workspace{
		WorkspaceID: workspaceID,
		Name:        strings.TrimSpace(req.ClinicName),
		OwnerUserID: userID,
		Status:      domain.WorkspaceActive,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if err := repos.UserRepo.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if err := repos.WorkspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
			return fmt.Errorf("save workspace: %w", err)
		}
		if err := repos.UserRepo.LinkWorkspace(ctx, userID, workspaceID); err != nil {
			return fmt.Errorf("link workspace: %w", err)
		}
		return seedWorkspace(ctx, repos, workspaceID, userID, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Signup transaction failed", slog.String("email", email))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code != http.StatusInternalServerError {
			return nil, nil, err
		}
		return nil, nil, apperrors.NewAppError(http.StatusInternalServerError, "Failed to create account", err)
	}

	user.WorkspaceID = &workspaceID
	s.LogInfo(ctx, "Account created", slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
	return &user, &workspace, nil
}

// Login verifies email and password and returns the stored user.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errBadCredentials
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errBadCredentials
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("Account is disabled")
	}
	return user, nil
}

// LoadSession re-reads the user behind a token.
func (s *authService) LoadSession(ctx context.Context, userID string) (*domain.Session, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Session user no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("Account is disabled")
	}
	session := domain.SessionFromUser(*user)
	if err := session.Validate(); err != nil {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Invalid session", err)
	}
	return &session, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateProfile changes the caller's name and/or email.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("fullName cannot be empty")
		}
		user.FullName = name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, userID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}
	user.Touch(userID, s.Now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	user.Version++
	return user, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *authService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.NewValidationFailedError("Current password is incorrect")
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash, userID)
}

// LoginWithGoogleEmail signs in an existing account. Google sign in never creates accounts.
func (s *authService) LoginWithGoogleEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("No account is registered for this Google email")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("Account is disabled")
	}
	return user, nil
}

// ensureEmailFree fails with a conflict when email belongs to a user other than exceptUserID.
func (s *authService) ensureEmailFree(ctx context.Context, email, exceptUserID string) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil && existing.UserID != exceptUserID:
		return apperrors.NewConflictError("Email is already registered")
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check email availability")
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
