package services

import (
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, tx portsrepo.TxRunner, locker portsrepo.Locker) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Auth:         NewAuthService(repos.UserRepo, tx),
		Token:        NewTokenService(cfg),
		GoogleOAuth:  NewGoogleOAuthHandlerService(cfg),
		Workspace:    NewWorkspaceService(repos.WorkspaceRepo),
		Team:         NewTeamService(repos.UserRepo, repos.WorkspaceRepo),
		Patient:      NewPatientService(repos.PatientRepo),
		Procedure:    NewProcedureService(repos.ProcedureRepo),
		Collaborator: NewCollaboratorService(repos.CollaboratorRepo),
		Sale:         NewSaleService(repos.SaleRepo, tx),
		Session:      NewSessionService(repos),
		Cost:         NewCostService(repos.CostRepo, tx, locker, cfg.RecurrenceLockTTL),
		Report:       NewReportService(repos),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
	_ portssvc.TeamSvcFacade         = (*teamService)(nil)
	_ portssvc.PatientSvcFacade      = (*patientService)(nil)
	_ portssvc.ProcedureSvcFacade    = (*procedureService)(nil)
	_ portssvc.CollaboratorSvcFacade = (*collaboratorService)(nil)
	_ portssvc.SaleSvcFacade         = (*saleService)(nil)
	_ portssvc.SessionSvcFacade      = (*sessionService)(nil)
	_ portssvc.ReportSvcFacade       = (*reportService)(nil)
)
