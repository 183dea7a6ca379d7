package handlers_test

import (
	"context"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.Workspace, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*domain.Workspace), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) LoadSession(ctx context.Context, userID string) (*domain.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}
func (m *MockAuthService) LoginWithGoogleEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock WorkspaceService ---
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) ResolveEffectiveWorkspace(ctx context.Context, session domain.Session, imp *domain.Impersonation) (*domain.Workspace, error) {
	args := m.Called(ctx, session, imp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) UpdateWorkspaceStatus(ctx context.Context, session domain.Session, workspaceID string, status domain.WorkspaceStatus) (*domain.Workspace, error) {
	args := m.Called(ctx, session, workspaceID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) StartImpersonation(ctx context.Context, session domain.Session, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, session, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) UpdateWorkspaceName(ctx context.Context, session domain.Session, workspaceID string, req dto.UpdateWorkspaceRequest) (*domain.Workspace, error) {
	args := m.Called(ctx, session, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

var _ portssvc.WorkspaceSvcFacade = (*MockWorkspaceService)(nil)

// --- Mock CostService ---
type MockCostService struct {
	mock.Mock
}

func (m *MockCostService) CreateCost(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateCostRequest) (*domain.Cost, error) {
	args := m.Called(ctx, session, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cost), args.Error(1)
}
func (m *MockCostService) GetCost(ctx context.Context, workspaceID, costID string) (*domain.Cost, error) {
	args := m.Called(ctx, workspaceID, costID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cost), args.Error(1)
}
func (m *MockCostService) ListCosts(ctx context.Context, workspaceID string, filter domain.CostFilter) ([]domain.Cost, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cost), args.Error(1)
}
func (m *MockCostService) UpdateCost(ctx context.Context, session domain.Session, workspaceID, costID string, req dto.UpdateCostRequest) (*domain.Cost, error) {
	args := m.Called(ctx, session, workspaceID, costID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cost), args.Error(1)
}
func (m *MockCostService) DeleteCost(ctx context.Context, session domain.Session, workspaceID, costID string) error {
	args := m.Called(ctx, session, workspaceID, costID)
	return args.Error(0)
}
func (m *MockCostService) ListPendingRecurrences(ctx context.Context, workspaceID string, today time.Time) ([]domain.Cost, error) {
	args := m.Called(ctx, workspaceID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cost), args.Error(1)
}
func (m *MockCostService) ProcessRecurrences(ctx context.Context, workspaceID, actorID string, today time.Time) (*domain.RecurrenceResult, error) {
	args := m.Called(ctx, workspaceID, actorID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecurrenceResult), args.Error(1)
}

var _ portssvc.CostSvcFacade = (*MockCostService)(nil)

// --- Mock PatientService ---
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) CreatePatient(ctx context.Context, session domain.Session, workspaceID string, req dto.CreatePatientRequest) (*domain.Patient, error) {
	args := m.Called(ctx, session, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}
func (m *MockPatientService) GetPatient(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, workspaceID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}
func (m *MockPatientService) ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error) {
	args := m.Called(ctx, workspaceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Patient), args.Error(1)
}
func (m *MockPatientService) UpdatePatient(ctx context.Context, session domain.Session, workspaceID, patientID string, req dto.UpdatePatientRequest) (*domain.Patient, error) {
	args := m.Called(ctx, session, workspaceID, patientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}
func (m *MockPatientService) DeletePatient(ctx context.Context, session domain.Session, workspaceID, patientID string) error {
	args := m.Called(ctx, session, workspaceID, patientID)
	return args.Error(0)
}
func (m *MockPatientService) ImportPatients(ctx context.Context, session domain.Session, workspaceID string, rows []dto.CreatePatientRequest) ([]domain.ImportResult, error) {
	args := m.Called(ctx, session, workspaceID, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImportResult), args.Error(1)
}

var _ portssvc.PatientSvcFacade = (*MockPatientService)(nil)
