package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func (s *APITestSuite) adminOf(ws *domain.Workspace) string {
	token := s.signIn("admin-1", domain.RoleAdmin, nil)
	s.resolvesTo("admin-1", ws)
	return token
}

func (s *APITestSuite) TestCreateCost() {
	token := s.adminOf(activeWorkspace("ws-1"))
	value := decimal.RequireFromString("1500.00")
	s.costs.On("CreateCost", mock.Anything,
		mock.MatchedBy(func(sess domain.Session) bool { return sess.UserID == "admin-1" }), "ws-1",
		mock.MatchedBy(func(req dto.CreateCostRequest) bool { return req.FixedValue != nil && req.FixedValue.Equal(value) })).
		Return(&domain.Cost{CostID: "cost-1", WorkspaceID: "ws-1", CostType: domain.CostTypeFixed, FixedValue: &value, IsActive: true}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/costs", map[string]any{
		"description": "Aluguel", "category": "OPERATIONAL", "costType": "FIXED", "fixedValue": "1500.00",
	}, token)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.CostResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("cost-1", resp.CostID)
}

func (s *APITestSuite) TestCreateCost_DecimalValidation() {
	token := s.adminOf(activeWorkspace("ws-1"))

	w := s.do(http.MethodPost, "/api/v1/costs", map[string]any{
		"description": "Aluguel", "category": "OPERATIONAL", "costType": "FIXED", "fixedValue": "-5",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid field FixedValue: failed decimal_nonneg", s.errorBody(w))

	w = s.do(http.MethodPost, "/api/v1/costs", map[string]any{
		"description": "Taxa", "category": "TAX", "costType": "PERCENTAGE", "percentage": "150",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid field Percentage: failed decimal_pct", s.errorBody(w))

	w = s.do(http.MethodPost, "/api/v1/costs", map[string]any{
		"description": "Aluguel", "category": "RENT", "costType": "FIXED",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid field Category: failed oneof", s.errorBody(w))

	s.costs.AssertNotCalled(s.T(), "CreateCost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *APITestSuite) TestGetCost_ErrorMapping() {
	token := s.adminOf(activeWorkspace("ws-1"))
	s.costs.On("GetCost", mock.Anything, "ws-1", "foreign").Return(nil, apperrors.NewNotFoundError("Cost not found")).Once()
	s.costs.On("GetCost", mock.Anything, "ws-1", "broken").Return(nil, errors.New("pgx: connection refused")).Once()

	w := s.do(http.MethodGet, "/api/v1/costs/foreign", nil, token)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Cost not found", s.errorBody(w))

	w = s.do(http.MethodGet, "/api/v1/costs/broken", nil, token)
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Internal server error", s.errorBody(w), "driver errors never reach the client")
}

func (s *APITestSuite) TestProcessRecurrences() {
	token := s.adminOf(activeWorkspace("ws-1"))
	s.costs.On("ProcessRecurrences", mock.Anything, "ws-1", "admin-1", mock.Anything).
		Return(&domain.RecurrenceResult{
			Processed: 1,
			Items:     []domain.RecurrenceItem{{OriginalID: "rent", NewID: "rent-copy", Amount: decimal.NewFromInt(1500)}},
			Skipped:   1,
		}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/costs/recurrence/process", nil, token)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var result domain.RecurrenceResult
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	s.Equal(1, result.Processed)
	s.Equal(1, result.Skipped)
	s.Equal("rent-copy", result.Items[0].NewID)
}

func (s *APITestSuite) TestProcessRecurrences_AlreadyRunning() {
	token := s.adminOf(activeWorkspace("ws-1"))
	s.costs.On("ProcessRecurrences", mock.Anything, "ws-1", "admin-1", mock.Anything).
		Return(nil, apperrors.NewConflictError("Recurring costs are already being processed for this workspace")).Once()

	w := s.do(http.MethodPost, "/api/v1/costs/recurrence/process", nil, token)

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Recurring costs are already being processed for this workspace", s.errorBody(w))
}

func (s *APITestSuite) TestPendingRecurrences() {
	token := s.adminOf(activeWorkspace("ws-1"))
	s.costs.On("ListPendingRecurrences", mock.Anything, "ws-1", mock.Anything).
		Return([]domain.Cost{{CostID: "rent", IsRecurring: true}, {CostID: "software", IsRecurring: true}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/costs/recurrence/pending", nil, token)

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.PendingRecurrenceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(2, resp.Count)
	s.Len(resp.Costs, 2)
}
