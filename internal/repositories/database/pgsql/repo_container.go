package pgsql

import (
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newProvider(dbPool)
}

func newProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(db),
		WorkspaceRepo:    newPgxWorkspaceRepository(db),
		PatientRepo:      newPgxPatientRepository(db),
		ProcedureRepo:    newPgxProcedureRepository(db),
		CollaboratorRepo: newPgxCollaboratorRepository(db),
		SaleRepo:         newPgxSaleRepository(db),
		SessionRepo:      newPgxSessionRepository(db),
		CostRepo:         newPgxCostRepository(db),
	}
}
