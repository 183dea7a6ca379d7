package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/handlers"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/middleware"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// APITestSuite drives the real router with mocked services and real tokens.
type APITestSuite struct {
	suite.Suite
	cfg        *config.Config
	router     *gin.Engine
	tokens     portssvc.TokenSvcFacade
	auth       *MockAuthService
	workspaces *MockWorkspaceService
	costs      *MockCostService
	patients   *MockPatientService
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(handlers.RegisterValidators())

	s.cfg = &config.Config{
		IsProduction:            true,
		JWTSecret:               "test-secret",
		JWTIssuer:               "clinihof-test",
		JWTExpiryDuration:       time.Hour,
		SessionCookieName:       "clinihof_session",
		ImpersonationSecret:     "test-impersonation-secret",
		ImpersonationCookieName: "clinihof_impersonation",
		ImpersonationTTL:        4 * time.Hour,
	}
	s.tokens = services.NewTokenService(s.cfg)
	s.auth = new(MockAuthService)
	s.workspaces = new(MockWorkspaceService)
	s.costs = new(MockCostService)
	s.patients = new(MockPatientService)

	container := &portssvc.ServiceContainer{
		Auth:      s.auth,
		Token:     s.tokens,
		Workspace: s.workspaces,
		Cost:      s.costs,
		Patient:   s.patients,
	}

	authLimiter, err := middleware.NewLimiter("3-M", nil)
	s.Require().NoError(err)

	s.router = gin.New()
	s.router.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	handlers.RegisterRoutes(s.router, s.cfg, container, middleware.RateLimit(authLimiter))
}

func (s *APITestSuite) TearDownTest() {
	s.auth.AssertExpectations(s.T())
	s.workspaces.AssertExpectations(s.T())
	s.costs.AssertExpectations(s.T())
	s.patients.AssertExpectations(s.T())
}

// signIn returns a bearer token for a stored user of the given role.
func (s *APITestSuite) signIn(userID string, role domain.Role, workspaceID *string) string {
	token, _, err := s.tokens.GenerateSessionToken(context.Background(), &domain.User{UserID: userID, Role: role})
	s.Require().NoError(err)
	s.auth.On("LoadSession", mock.Anything, userID).
		Return(&domain.Session{UserID: userID, Role: role, WorkspaceID: workspaceID}, nil).Maybe()
	return token
}

// resolvesTo makes the effective workspace of userID ws whatever impersonation is presented.
func (s *APITestSuite) resolvesTo(userID string, ws *domain.Workspace) {
	s.workspaces.On("ResolveEffectiveWorkspace", mock.Anything,
		mock.MatchedBy(func(sess domain.Session) bool { return sess.UserID == userID }), mock.Anything).
		Return(ws, nil).Maybe()
}

func (s *APITestSuite) do(method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var resp handlers.ErrorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func activeWorkspace(id string) *domain.Workspace {
	return &domain.Workspace{WorkspaceID: id, Name: "Clinica " + id, OwnerUserID: "owner-" + id, Status: domain.WorkspaceActive}
}

func (s *APITestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *APITestSuite) TestMissingSessionIsUnauthorized() {
	w := s.do(http.MethodGet, "/api/v1/costs", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Authentication required", s.errorBody(w))

	w = s.do(http.MethodGet, "/api/v1/costs", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestRoleGate() {
	ws := activeWorkspace("ws-1")
	token := s.signIn("recep-1", domain.RoleReceptionist, strPtr("ws-1"))
	s.resolvesTo("recep-1", ws)

	w := s.do(http.MethodPost, "/api/v1/costs", map[string]any{"description": "Aluguel"}, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Forbidden", s.errorBody(w))

	w = s.do(http.MethodPost, "/api/v1/patients", map[string]any{"name": "Maria"}, token)
	s.Equal(http.StatusForbidden, w.Code, "patients are read-only for receptionists")

	s.patients.On("ListPatients", mock.Anything, "ws-1", mock.Anything).Return([]domain.Patient{}, nil).Once()
	w = s.do(http.MethodGet, "/api/v1/patients", nil, token)
	s.Equal(http.StatusOK, w.Code)

	s.costs.AssertNotCalled(s.T(), "CreateCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestSuspendedWorkspaceIsBlocked() {
	ws := activeWorkspace("ws-1")
	ws.Status = domain.WorkspaceSuspended
	token := s.signIn("admin-1", domain.RoleAdmin, nil)
	s.resolvesTo("admin-1", ws)

	w := s.do(http.MethodGet, "/api/v1/costs", nil, token)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Workspace is not active", s.errorBody(w))
}

func (s *APITestSuite) TestNoWorkspaceIsNotFound() {
	token := s.signIn("user-1", domain.RoleUser, nil)
	s.resolvesTo("user-1", nil)

	w := s.do(http.MethodGet, "/api/v1/patients", nil, token)

	s.Equal(http.StatusNotFound, w.Code)
}
