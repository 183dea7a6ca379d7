package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsersByWorkspace(ctx context.Context, workspaceID string) ([]domain.User, error) {
	args := m.Called(ctx, workspaceID)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash, updatedBy string) error {
	return m.Called(ctx, userID, passwordHash, updatedBy).Error(0)
}

func (m *MockUserRepository) LinkWorkspace(ctx context.Context, userID, workspaceID string) error {
	return m.Called(ctx, userID, workspaceID).Error(0)
}

// --- Mock WorkspaceRepository ---
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) FindWorkspaceByOwner(ctx context.Context, ownerUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, ownerUserID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspaces(ctx context.Context, filter domain.WorkspaceFilter) ([]domain.Workspace, error) {
	args := m.Called(ctx, filter)
	var list []domain.Workspace
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Workspace)
	}
	return list, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspaceStatus(ctx context.Context, workspaceID string, status domain.WorkspaceStatus, updatedBy string) error {
	return m.Called(ctx, workspaceID, status, updatedBy).Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspaceName(ctx context.Context, workspaceID, name, updatedBy string) error {
	return m.Called(ctx, workspaceID, name, updatedBy).Error(0)
}

// --- Mock PatientRepository ---
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) SavePatient(ctx context.Context, patient domain.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *MockPatientRepository) FindPatientByID(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, workspaceID, patientID)
	var p *domain.Patient
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Patient)
	}
	return p, args.Error(1)
}

func (m *MockPatientRepository) ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error) {
	args := m.Called(ctx, workspaceID, filter)
	var list []domain.Patient
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Patient)
	}
	return list, args.Error(1)
}

func (m *MockPatientRepository) UpdatePatient(ctx context.Context, patient domain.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *MockPatientRepository) DeactivatePatient(ctx context.Context, workspaceID, patientID, updatedBy string) error {
	return m.Called(ctx, workspaceID, patientID, updatedBy).Error(0)
}

func (m *MockPatientRepository) CountActivePatients(ctx context.Context, workspaceID string) (int, error) {
	args := m.Called(ctx, workspaceID)
	return args.Int(0), args.Error(1)
}

// --- Mock ProcedureRepository ---
type MockProcedureRepository struct {
	mock.Mock
}

func (m *MockProcedureRepository) SaveProcedure(ctx context.Context, procedure domain.Procedure) error {
	return m.Called(ctx, procedure).Error(0)
}

func (m *MockProcedureRepository) FindProcedureByID(ctx context.Context, workspaceID, procedureID string) (*domain.Procedure, error) {
	args := m.Called(ctx, workspaceID, procedureID)
	var p *domain.Procedure
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Procedure)
	}
	return p, args.Error(1)
}

func (m *MockProcedureRepository) ListProcedures(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Procedure, error) {
	args := m.Called(ctx, workspaceID, includeInactive)
	var list []domain.Procedure
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Procedure)
	}
	return list, args.Error(1)
}

func (m *MockProcedureRepository) UpdateProcedure(ctx context.Context, procedure domain.Procedure) error {
	return m.Called(ctx, procedure).Error(0)
}

func (m *MockProcedureRepository) DeactivateProcedure(ctx context.Context, workspaceID, procedureID, updatedBy string) error {
	return m.Called(ctx, workspaceID, procedureID, updatedBy).Error(0)
}

// --- Mock CollaboratorRepository ---
type MockCollaboratorRepository struct {
	mock.Mock
}

func (m *MockCollaboratorRepository) SaveCollaborator(ctx context.Context, collaborator domain.Collaborator) error {
	return m.Called(ctx, collaborator).Error(0)
}

func (m *MockCollaboratorRepository) FindCollaboratorByID(ctx context.Context, workspaceID, collaboratorID string) (*domain.Collaborator, error) {
	args := m.Called(ctx, workspaceID, collaboratorID)
	var c *domain.Collaborator
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Collaborator)
	}
	return c, args.Error(1)
}

func (m *MockCollaboratorRepository) ListCollaborators(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Collaborator, error) {
	args := m.Called(ctx, workspaceID, includeInactive)
	var list []domain.Collaborator
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Collaborator)
	}
	return list, args.Error(1)
}

func (m *MockCollaboratorRepository) UpdateCollaborator(ctx context.Context, collaborator domain.Collaborator) error {
	return m.Called(ctx, collaborator).Error(0)
}

func (m *MockCollaboratorRepository) DeactivateCollaborator(ctx context.Context, workspaceID, collaboratorID, updatedBy string) error {
	return m.Called(ctx, workspaceID, collaboratorID, updatedBy).Error(0)
}

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, workspaceID, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, workspaceID, saleID)
	var s *domain.Sale
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Sale)
	}
	return s, args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, workspaceID string, filter domain.SaleFilter) ([]domain.Sale, error) {
	args := m.Called(ctx, workspaceID, filter)
	var list []domain.Sale
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.Sale)
	}
	return list, args.Error(1)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, workspaceID, saleID string, status domain.SaleStatus, updatedBy string) error {
	return m.Called(ctx, workspaceID, saleID, status, updatedBy).Error(0)
}

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.ProcedureSession) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, workspaceID, sessionID string) (*domain.ProcedureSession, error) {
	args := m.Called(ctx, workspaceID, sessionID)
	var s *domain.ProcedureSession
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.ProcedureSession)
	}
	return s, args.Error(1)
}

func (m *MockSessionRepository) ListSessions(ctx context.Context, workspaceID string, filter domain.SessionFilter) ([]domain.ProcedureSession, error) {
	args := m.Called(ctx, workspaceID, filter)
	var list []domain.ProcedureSession
	if args.Get(0) != nil {
		list = args.Get(0).([]domain.ProcedureSession)
	}
	return list, args.Error(1)
}

func (m *MockSessionRepository) UpdateSessionStatus(ctx context.Context, workspaceID, sessionID string, status domain.SessionStatus, updatedBy string) error {
	return m.Called(ctx, workspaceID, sessionID, status, updatedBy).Error(0)
}

// --- Fakes ---

// fakeTxRunner hands fn a fixed provider. It records how transactions ended
// so tests can assert on commit versus rollback.
type fakeTxRunner struct {
	repos      portsrepo.RepositoryProvider
	commits    int
	rollbacks  int
	lastResult error
}

func (f *fakeTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	err := fn(ctx, f.repos)
	f.lastResult = err
	if err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// fakeLocker is an in-memory Locker whose keys can be pre-held by tests.
type fakeLocker struct {
	mu   sync.Mutex
	held map[string]bool
	err  error
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	if l.err != nil {
		return nil, false, l.err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, true, nil
}
