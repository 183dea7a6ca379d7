package services

import (
	"context"
	"time"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

// All clinic services take the effective workspace explicitly. Entities of
// another workspace are reported as not found.

type PatientSvcFacade interface {
	CreatePatient(ctx context.Context, session domain.Session, workspaceID string, req dto.CreatePatientRequest) (*domain.Patient, error)
	GetPatient(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error)
	ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error)
	UpdatePatient(ctx context.Context, session domain.Session, workspaceID, patientID string, req dto.UpdatePatientRequest) (*domain.Patient, error)
	DeletePatient(ctx context.Context, session domain.Session, workspaceID, patientID string) error
	// ImportPatients creates each row independently and reports per-row results.
	ImportPatients(ctx context.Context, session domain.Session, workspaceID string, rows []dto.CreatePatientRequest) ([]domain.ImportResult, error)
}

type ProcedureSvcFacade interface {
	CreateProcedure(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateProcedureRequest) (*domain.Procedure, error)
	GetProcedure(ctx context.Context, workspaceID, procedureID string) (*domain.Procedure, error)
	ListProcedures(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Procedure, error)
	UpdateProcedure(ctx context.Context, session domain.Session, workspaceID, procedureID string, req dto.UpdateProcedureRequest) (*domain.Procedure, error)
	DeleteProcedure(ctx context.Context, session domain.Session, workspaceID, procedureID string) error
}

type CollaboratorSvcFacade interface {
	CreateCollaborator(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateCollaboratorRequest) (*domain.Collaborator, error)
	GetCollaborator(ctx context.Context, workspaceID, collaboratorID string) (*domain.Collaborator, error)
	ListCollaborators(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Collaborator, error)
	UpdateCollaborator(ctx context.Context, session domain.Session, workspaceID, collaboratorID string, req dto.UpdateCollaboratorRequest) (*domain.Collaborator, error)
	DeleteCollaborator(ctx context.Context, session domain.Session, workspaceID, collaboratorID string) error
}

type SaleSvcFacade interface {
	CreateSale(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateSaleRequest) (*domain.Sale, error)
	GetSale(ctx context.Context, workspaceID, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, workspaceID string, filter domain.SaleFilter) ([]domain.Sale, error)
	CancelSale(ctx context.Context, session domain.Session, workspaceID, saleID string) (*domain.Sale, error)
}

type SessionSvcFacade interface {
	ScheduleSession(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateSessionRequest) (*domain.ProcedureSession, error)
	GetSession(ctx context.Context, workspaceID, sessionID string) (*domain.ProcedureSession, error)
	ListSessions(ctx context.Context, workspaceID string, filter domain.SessionFilter) ([]domain.ProcedureSession, error)
	UpdateSessionStatus(ctx context.Context, session domain.Session, workspaceID, sessionID string, status domain.SessionStatus) (*domain.ProcedureSession, error)
	AttendanceStats(ctx context.Context, workspaceID string, period domain.Period) (*domain.AttendanceStats, error)
}

type CostSvcFacade interface {
	CreateCost(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateCostRequest) (*domain.Cost, error)
	GetCost(ctx context.Context, workspaceID, costID string) (*domain.Cost, error)
	ListCosts(ctx context.Context, workspaceID string, filter domain.CostFilter) ([]domain.Cost, error)
	UpdateCost(ctx context.Context, session domain.Session, workspaceID, costID string, req dto.UpdateCostRequest) (*domain.Cost, error)
	DeleteCost(ctx context.Context, session domain.Session, workspaceID, costID string) error
	// ListPendingRecurrences lists the templates the replicator would process today.
	ListPendingRecurrences(ctx context.Context, workspaceID string, today time.Time) ([]domain.Cost, error)
	// ProcessRecurrences replicates every due template of the workspace once per due date.
	ProcessRecurrences(ctx context.Context, workspaceID, actorID string, today time.Time) (*domain.RecurrenceResult, error)
}

type ReportSvcFacade interface {
	CommissionReport(ctx context.Context, workspaceID string, period domain.Period) (*domain.CommissionReport, error)
	DashboardSummary(ctx context.Context, workspaceID string, period domain.Period) (*domain.DashboardSummary, error)
}
