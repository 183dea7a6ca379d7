package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/policy"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *APITestSuite) TestSignupSetsSessionCookie() {
	user := &domain.User{UserID: "admin-1", Email: "dona@clinica.com", Role: domain.RoleAdmin, IsActive: true}
	ws := activeWorkspace("ws-1")
	s.auth.On("Signup", mock.Anything, mock.MatchedBy(func(req dto.SignupRequest) bool {
		return req.Email == "dona@clinica.com" && req.ClinicName == "Clinica Bella"
	})).Return(user, ws, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"email": "dona@clinica.com", "password": "segredo123", "fullName": "Dona", "clinicName": "Clinica Bella",
	}, "")

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.LoginResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.NotEmpty(resp.Token)
	s.Require().NotNil(resp.Workspace)
	s.Equal("ws-1", resp.Workspace.WorkspaceID)

	cookie := responseCookie(w, s.cfg.SessionCookieName)
	s.Require().NotNil(cookie)
	s.Equal(resp.Token, cookie.Value)
	s.True(cookie.HttpOnly)
}

func (s *APITestSuite) TestSignupValidation() {
	w := s.do(http.MethodPost, "/api/v1/auth/signup", map[string]any{
		"email": "not-an-email", "password": "segredo123", "fullName": "Dona", "clinicName": "Clinica",
	}, "")

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid field Email: failed email", s.errorBody(w))
}

func (s *APITestSuite) TestLoginThenUseCookie() {
	user := &domain.User{UserID: "manager-1", Email: "gerente@clinica.com", Role: domain.RoleManager, WorkspaceID: strPtr("ws-1"), IsActive: true}
	s.auth.On("Login", mock.Anything, "gerente@clinica.com", "segredo123").Return(user, nil).Once()
	s.auth.On("LoadSession", mock.Anything, "manager-1").
		Return(&domain.Session{UserID: "manager-1", Role: domain.RoleManager, WorkspaceID: strPtr("ws-1")}, nil).Once()
	s.resolvesTo("manager-1", activeWorkspace("ws-1"))

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "gerente@clinica.com", "password": "segredo123"}, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookie := responseCookie(w, s.cfg.SessionCookieName)
	s.Require().NotNil(cookie)

	w = s.do(http.MethodGet, "/api/v1/permissions", nil, "", cookie)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PermissionsResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(domain.RoleManager, resp.Role)
	s.Equal(policy.Matrix(domain.RoleManager), resp.Permissions)
}

func (s *APITestSuite) TestLoginRateLimited() {
	s.auth.On("Login", mock.Anything, "x@clinica.com", "wrong-pass").
		Return(nil, apperrors.NewUnauthorizedError("Invalid email or password")).Times(3)

	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "x@clinica.com", "password": "wrong-pass"}, "")
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Equal("Invalid email or password", s.errorBody(w))
	}

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "x@clinica.com", "password": "wrong-pass"}, "")
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.Equal("0", w.Header().Get("X-RateLimit-Remaining"))
}

func (s *APITestSuite) TestLogoutClearsCookies() {
	w := s.do(http.MethodPost, "/api/v1/auth/logout", nil, "")

	s.Equal(http.StatusNoContent, w.Code)
	for _, name := range []string{s.cfg.SessionCookieName, s.cfg.ImpersonationCookieName} {
		cookie := responseCookie(w, name)
		s.Require().NotNil(cookie, name)
		s.Empty(cookie.Value)
		s.Negative(cookie.MaxAge)
	}
}

func (s *APITestSuite) TestMeReportsImpersonation() {
	token := s.signIn("master-1", domain.RoleMaster, nil)
	target := activeWorkspace("ws-target")
	s.auth.On("GetUser", mock.Anything, "master-1").Return(&domain.User{UserID: "master-1", Role: domain.RoleMaster}, nil).Once()
	s.workspaces.On("ResolveEffectiveWorkspace", mock.Anything, mock.Anything,
		mock.MatchedBy(func(imp *domain.Impersonation) bool { return imp != nil && imp.WorkspaceID == "ws-target" })).
		Return(target, nil).Once()

	impToken, _, err := s.tokens.GenerateImpersonationToken(s.T().Context(), "master-1", target)
	s.Require().NoError(err)
	w := s.do(http.MethodGet, "/api/v1/me", nil, token, &http.Cookie{Name: s.cfg.ImpersonationCookieName, Value: impToken})

	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.MeResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.True(resp.Impersonating)
	s.Equal("ws-target", resp.Workspace.WorkspaceID)
}
