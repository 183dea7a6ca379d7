package services

import (
	"context"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade covers signup, credential checks and the caller's own profile.
type AuthSvcFacade interface {
	// Signup creates an ADMIN user, the workspace it owns and the starter
	// catalogue in one transaction.
	Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.Workspace, error)
	// Login verifies email and password and returns the stored user.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// LoadSession re-reads the user so the role always comes from storage.
	LoadSession(ctx context.Context, userID string) (*domain.Session, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error
	// LoginWithGoogleEmail signs in an existing active user by a verified Google email.
	LoginWithGoogleEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenSvcFacade issues and reads the signed session and impersonation tokens.
type TokenSvcFacade interface {
	GenerateSessionToken(ctx context.Context, user *domain.User) (token string, expiresAt time.Time, err error)
	ParseSessionToken(ctx context.Context, token string) (userID string, err error)
	GenerateImpersonationToken(ctx context.Context, masterUserID string, workspace *domain.Workspace) (string, *domain.Impersonation, error)
	ParseImpersonationToken(ctx context.Context, token string) (*domain.Impersonation, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns its payload.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
