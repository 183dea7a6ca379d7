package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	WorkspaceRepo    WorkspaceRepositoryFacade
	PatientRepo      PatientRepositoryFacade
	ProcedureRepo    ProcedureRepositoryFacade
	CollaboratorRepo CollaboratorRepositoryFacade
	SaleRepo         SaleRepositoryFacade
	SessionRepo      SessionRepositoryFacade
	CostRepo         CostRepositoryFacade
}
