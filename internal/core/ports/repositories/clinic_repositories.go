package repositories

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
)

// Every lookup by ID takes the workspace as well; an entity of another
// workspace is reported as apperrors.ErrNotFound.

// PatientRepositoryFacade persists patients.
type PatientRepositoryFacade interface {
	SavePatient(ctx context.Context, patient domain.Patient) error
	FindPatientByID(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error)
	ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error)
	UpdatePatient(ctx context.Context, patient domain.Patient) error
	DeactivatePatient(ctx context.Context, workspaceID, patientID, updatedBy string) error
	CountActivePatients(ctx context.Context, workspaceID string) (int, error)
}

// ProcedureRepositoryFacade persists the procedure catalogue.
type ProcedureRepositoryFacade interface {
	SaveProcedure(ctx context.Context, procedure domain.Procedure) error
	FindProcedureByID(ctx context.Context, workspaceID, procedureID string) (*domain.Procedure, error)
	ListProcedures(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Procedure, error)
	UpdateProcedure(ctx context.Context, procedure domain.Procedure) error
	DeactivateProcedure(ctx context.Context, workspaceID, procedureID, updatedBy string) error
}

// CollaboratorRepositoryFacade persists staff members.
type CollaboratorRepositoryFacade interface {
	SaveCollaborator(ctx context.Context, collaborator domain.Collaborator) error
	FindCollaboratorByID(ctx context.Context, workspaceID, collaboratorID string) (*domain.Collaborator, error)
	ListCollaborators(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Collaborator, error)
	UpdateCollaborator(ctx context.Context, collaborator domain.Collaborator) error
	DeactivateCollaborator(ctx context.Context, workspaceID, collaboratorID, updatedBy string) error
}

// SaleRepositoryFacade persists sales together with their items.
type SaleRepositoryFacade interface {
	// SaveSale inserts the sale and all of sale.Items.
	SaveSale(ctx context.Context, sale domain.Sale) error
	FindSaleByID(ctx context.Context, workspaceID, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, workspaceID string, filter domain.SaleFilter) ([]domain.Sale, error)
	UpdateSaleStatus(ctx context.Context, workspaceID, saleID string, status domain.SaleStatus, updatedBy string) error
}

// SessionRepositoryFacade persists procedure sessions.
type SessionRepositoryFacade interface {
	SaveSession(ctx context.Context, session domain.ProcedureSession) error
	FindSessionByID(ctx context.Context, workspaceID, sessionID string) (*domain.ProcedureSession, error)
	ListSessions(ctx context.Context, workspaceID string, filter domain.SessionFilter) ([]domain.ProcedureSession, error)
	UpdateSessionStatus(ctx context.Context, workspaceID, sessionID string, status domain.SessionStatus, updatedBy string) error
}
