package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/stretchr/testify/mock"
)

func isMaster(userID string) any {
	return mock.MatchedBy(func(sess domain.Session) bool { return sess.UserID == userID && sess.IsMaster() })
}

func (s *APITestSuite) TestImpersonationRoundTrip() {
	token := s.signIn("master-1", domain.RoleMaster, nil)
	target := activeWorkspace("ws-target")
	target.Status = domain.WorkspaceSuspended
	s.workspaces.On("StartImpersonation", mock.Anything, isMaster("master-1"), "ws-target").Return(target, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/master/impersonation", map[string]any{"workspaceID": "ws-target"}, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var started dto.ImpersonationResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &started))
	s.True(started.Active)
	s.Equal("ws-target", started.WorkspaceID)
	impCookie := responseCookie(w, s.cfg.ImpersonationCookieName)
	s.Require().NotNil(impCookie)
	s.True(impCookie.HttpOnly)

	// scoped routes now act on the target; MASTER keeps access to suspended tenants
	s.workspaces.On("ResolveEffectiveWorkspace", mock.Anything, isMaster("master-1"),
		mock.MatchedBy(func(imp *domain.Impersonation) bool { return imp != nil && imp.WorkspaceID == "ws-target" })).
		Return(target, nil).Once()
	s.costs.On("ListCosts", mock.Anything, "ws-target", mock.Anything).Return([]domain.Cost{{CostID: "c-1"}}, nil).Once()

	w = s.do(http.MethodGet, "/api/v1/costs", nil, token, impCookie)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, "/api/v1/master/impersonation", nil, token, impCookie)
	s.Equal(http.StatusNoContent, w.Code)
	cleared := responseCookie(w, s.cfg.ImpersonationCookieName)
	s.Require().NotNil(cleared)
	s.Negative(cleared.MaxAge)
}

func (s *APITestSuite) TestImpersonationCookieOfAnotherMasterIsIgnored() {
	impToken, _, err := s.tokens.GenerateImpersonationToken(s.T().Context(), "master-1", activeWorkspace("ws-target"))
	s.Require().NoError(err)
	token := s.signIn("master-2", domain.RoleMaster, nil)
	s.workspaces.On("ResolveEffectiveWorkspace", mock.Anything, isMaster("master-2"),
		mock.MatchedBy(func(imp *domain.Impersonation) bool { return imp == nil })).
		Return(nil, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/costs", nil, token, &http.Cookie{Name: s.cfg.ImpersonationCookieName, Value: impToken})

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Workspace not found", s.errorBody(w))
}

func (s *APITestSuite) TestImpersonationCookieIgnoredForNonMaster() {
	impToken, _, err := s.tokens.GenerateImpersonationToken(s.T().Context(), "admin-1", activeWorkspace("ws-other"))
	s.Require().NoError(err)
	token := s.signIn("admin-1", domain.RoleAdmin, nil)
	s.workspaces.On("ResolveEffectiveWorkspace", mock.Anything, mock.Anything,
		mock.MatchedBy(func(imp *domain.Impersonation) bool { return imp == nil })).
		Return(activeWorkspace("ws-1"), nil).Once()
	s.costs.On("ListCosts", mock.Anything, "ws-1", mock.Anything).Return([]domain.Cost{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/costs", nil, token, &http.Cookie{Name: s.cfg.ImpersonationCookieName, Value: impToken})

	s.Equal(http.StatusOK, w.Code)
}

func (s *APITestSuite) TestMasterConsoleIsMasterOnly() {
	token := s.signIn("admin-1", domain.RoleAdmin, nil)

	w := s.do(http.MethodPost, "/api/v1/master/impersonation", map[string]any{"workspaceID": "ws-target"}, token)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/master/workspaces", nil, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.workspaces.AssertNotCalled(s.T(), "StartImpersonation", mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestStartImpersonationOfInactiveWorkspace() {
	token := s.signIn("master-1", domain.RoleMaster, nil)
	s.workspaces.On("StartImpersonation", mock.Anything, isMaster("master-1"), "ws-gone").
		Return(nil, apperrors.NewInvalidStateError("Workspace is not active")).Once()

	w := s.do(http.MethodPost, "/api/v1/master/impersonation", map[string]any{"workspaceID": "ws-gone"}, token)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
	s.Nil(responseCookie(w, s.cfg.ImpersonationCookieName))
}

func (s *APITestSuite) TestListWorkspaces() {
	token := s.signIn("master-1", domain.RoleMaster, nil)
	s.workspaces.On("ListWorkspaces", mock.Anything, mock.MatchedBy(func(f domain.WorkspaceFilter) bool {
		return f.Status != nil && *f.Status == domain.WorkspaceSuspended && f.Limit == 50
	})).Return([]domain.Workspace{*activeWorkspace("ws-1")}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/master/workspaces?status=SUSPENDED", nil, token)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/master/workspaces?status=PAUSED", nil, token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestWorkspaceProfileReadableByEveryMember() {
	ws := "ws-1"
	token := s.signIn("recep-1", domain.RoleReceptionist, &ws)
	s.resolvesTo("recep-1", activeWorkspace(ws))

	w := s.do(http.MethodGet, "/api/v1/workspace", nil, token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.WorkspaceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	s.Equal(ws, got.WorkspaceID)

	w = s.do(http.MethodPut, "/api/v1/workspace", map[string]any{"name": "Renamed"}, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.workspaces.AssertNotCalled(s.T(), "UpdateWorkspaceName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

