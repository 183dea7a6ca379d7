package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users        *MockUserRepository
	workspaces   *MockWorkspaceRepository
	procedures   *MockProcedureRepository
	collabs      *MockCollaboratorRepository
	patients     *MockPatientRepository
	tx           *fakeTxRunner
	service      portssvc.AuthSvcFacade
	signupParams dto.SignupRequest
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.users = new(MockUserRepository)
	suite.workspaces = new(MockWorkspaceRepository)
	suite.procedures = new(MockProcedureRepository)
	suite.collabs = new(MockCollaboratorRepository)
	suite.patients = new(MockPatientRepository)
	suite.tx = &fakeTxRunner{repos: portsrepo.RepositoryProvider{
		UserRepo:         suite.users,
		WorkspaceRepo:    suite.workspaces,
		ProcedureRepo:    suite.procedures,
		CollaboratorRepo: suite.collabs,
		PatientRepo:      suite.patients,
	}}
	suite.service = services.NewAuthService(suite.users, suite.tx)
	suite.signupParams = dto.SignupRequest{
		Email:      "  Owner@Clinic.COM ",
		Password:   "s3cret-pass",
		FullName:   "Clinic Owner",
		ClinicName: "Clínica Bela",
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestSignup_CreatesAdminWorkspaceAndSeed() {
	ctx := context.Background()
	var savedUser domain.User
	var savedWorkspace domain.Workspace

	suite.users.On("FindUserByEmail", ctx, "owner@clinic.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.users.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		savedUser = args.Get(1).(domain.User)
	})
	suite.workspaces.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(nil).Once().Run(func(args mock.Arguments) {
		savedWorkspace = args.Get(1).(domain.Workspace)
	})
	suite.users.On("LinkWorkspace", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.procedures.On("SaveProcedure", ctx, mock.AnythingOfType("domain.Procedure")).Return(nil).Times(3)
	suite.collabs.On("SaveCollaborator", ctx, mock.AnythingOfType("domain.Collaborator")).Return(nil).Times(2)
	suite.patients.On("SavePatient", ctx, mock.AnythingOfType("domain.Patient")).Return(nil).Times(3)

	user, ws, err := suite.service.Signup(ctx, suite.signupParams)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, user.Role)
	suite.Equal("owner@clinic.com", user.Email)
	suite.NotEqual(suite.signupParams.Password, savedUser.PasswordHash)
	suite.True(utils.CheckPasswordHash(suite.signupParams.Password, savedUser.PasswordHash))
	suite.Nil(savedUser.WorkspaceID, "user is inserted before its workspace exists")

	suite.Equal(domain.WorkspaceActive, ws.Status)
	suite.Equal(user.UserID, ws.OwnerUserID)
	suite.Equal(savedWorkspace.WorkspaceID, ws.WorkspaceID)
	suite.Require().NotNil(user.WorkspaceID)
	suite.Equal(ws.WorkspaceID, *user.WorkspaceID)
	suite.users.AssertCalled(suite.T(), "LinkWorkspace", ctx, user.UserID, ws.WorkspaceID)

	for _, call := range suite.patients.Calls {
		suite.Equal(ws.WorkspaceID, call.Arguments.Get(1).(domain.Patient).WorkspaceID)
	}
	suite.Equal(1, suite.tx.commits)
	suite.users.AssertExpectations(suite.T())
	suite.workspaces.AssertExpectations(suite.T())
	suite.procedures.AssertExpectations(suite.T())
	suite.collabs.AssertExpectations(suite.T())
	suite.patients.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignup_WorkspaceFailureRollsBack() {
	ctx := context.Background()
	suite.users.On("FindUserByEmail", ctx, "owner@clinic.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.users.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()
	suite.workspaces.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(assert.AnError).Once()

	user, ws, err := suite.service.Signup(ctx, suite.signupParams)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Nil(user)
	suite.Nil(ws)
	suite.Equal(1, suite.tx.rollbacks)
	suite.Equal(0, suite.tx.commits)
	suite.users.AssertNotCalled(suite.T(), "LinkWorkspace", mock.Anything, mock.Anything, mock.Anything)
	suite.procedures.AssertNotCalled(suite.T(), "SaveProcedure", mock.Anything, mock.Anything)
	suite.patients.AssertNotCalled(suite.T(), "SavePatient", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestSignup_SeedFailureRollsBack() {
	ctx := context.Background()
	suite.users.On("FindUserByEmail", ctx, "owner@clinic.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.users.On("SaveUser", ctx, mock.Anything).Return(nil).Once()
	suite.workspaces.On("SaveWorkspace", ctx, mock.Anything).Return(nil).Once()
	suite.users.On("LinkWorkspace", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.procedures.On("SaveProcedure", ctx, mock.Anything).Return(assert.AnError).Once()

	_, _, err := suite.service.Signup(ctx, suite.signupParams)

	suite.Require().Error(err)
	suite.Equal(http.StatusInternalServerError, apperrors.StatusCode(err))
	suite.Equal(1, suite.tx.rollbacks)
}

func (suite *AuthServiceTestSuite) TestSignup_EmailTaken() {
	ctx := context.Background()
	suite.users.On("FindUserByEmail", ctx, "owner@clinic.com").Return(&domain.User{UserID: "other"}, nil).Once()

	_, _, err := suite.service.Signup(ctx, suite.signupParams)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(0, suite.tx.commits+suite.tx.rollbacks)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	ctx := context.Background()
	hash, err := utils.HashPassword("right-password")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "a@b.com", PasswordHash: hash, Role: domain.RoleManager, IsActive: true}

	suite.users.On("FindUserByEmail", ctx, "a@b.com").Return(stored, nil)
	suite.users.On("FindUserByEmail", ctx, "nobody@b.com").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.Login(ctx, "A@B.com", "right-password")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.Login(ctx, "a@b.com", "wrong-password")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.Login(ctx, "nobody@b.com", "whatever")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLoadSession_ReadsRoleFromStorage() {
	ctx := context.Background()
	ws := "ws-1"
	suite.users.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleReceptionist, WorkspaceID: &ws, IsActive: true}, nil).Once()
	suite.users.On("FindUserByID", ctx, "u2").Return(&domain.User{UserID: "u2", Role: domain.RoleAdmin, IsActive: false}, nil).Once()
	suite.users.On("FindUserByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	session, err := suite.service.LoadSession(ctx, "u1")
	suite.Require().NoError(err)
	suite.Equal(domain.RoleReceptionist, session.Role)
	suite.Equal(&ws, session.WorkspaceID)

	_, err = suite.service.LoadSession(ctx, "u2")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.LoadSession(ctx, "gone")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestChangePassword() {
	ctx := context.Background()
	hash, _ := utils.HashPassword("old-password")
	suite.users.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", PasswordHash: hash}, nil)
	suite.users.On("UpdatePassword", ctx, "u1", mock.MatchedBy(func(h string) bool {
		return utils.CheckPasswordHash("new-password", h)
	}), "u1").Return(nil).Once()

	err := suite.service.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.ChangePassword(ctx, "u1", dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
	suite.NoError(err)
	suite.users.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestUpdateProfile_EmailConflict() {
	ctx := context.Background()
	suite.users.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Email: "me@x.com"}, nil)
	suite.users.On("FindUserByEmail", ctx, "taken@x.com").Return(&domain.User{UserID: "u2"}, nil)

	email := "taken@x.com"
	_, err := suite.service.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Email: &email})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.users.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func TestTokenService_RoundTrips(t *testing.T) {
	cfg := &config.Config{
		JWTSecret:           "session-secret",
		JWTExpiryDuration:   time.Hour,
		JWTIssuer:           "test",
		ImpersonationSecret: "impersonation-secret",
		ImpersonationTTL:    4 * time.Hour,
	}
	tokens := services.NewTokenService(cfg)
	ctx := context.Background()

	token, expiresAt, err := tokens.GenerateSessionToken(ctx, &domain.User{UserID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	userID, err := tokens.ParseSessionToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	impToken, imp, err := tokens.GenerateImpersonationToken(ctx, "master-1", &domain.Workspace{WorkspaceID: "ws-1", Name: "Clinic"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(4*time.Hour), imp.ExpiresAt, time.Minute)

	parsed, err := tokens.ParseImpersonationToken(ctx, impToken)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", parsed.WorkspaceID)
	assert.Equal(t, "Clinic", parsed.WorkspaceName)
	assert.Equal(t, "master-1", parsed.MasterUserID)

	// the two tokens are signed with different secrets
	_, err = tokens.ParseSessionToken(ctx, impToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	_, err = tokens.ParseImpersonationToken(ctx, token)
	assert.Error(t, err)
}
