package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Starter catalogue written into every new workspace so the dashboard is not empty.
var (
	seedProcedures = []struct {
		name     string
		desc     string
		price    string
		duration int
	}{
		{"Limpeza de pele", "Limpeza de pele profunda com extração", "180.00", 60},
		{"Toxina botulínica", "Aplicação de toxina botulínica, terço superior", "1200.00", 30},
		{"Preenchimento labial", "Preenchimento com ácido hialurônico, 1 ml", "1500.00", 45},
	}
	seedCollaborators = []struct {
		name       string
		title      string
		salary     string
		charges    string
		hours      string
		commission domain.CommissionType
		value      string
	}{
		{"Dra. Exemplo", "Biomédica esteta", "6000.00", "1800.00", "160", domain.CommissionPercentage, "10"},
		{"Recepção", "Recepcionista", "2200.00", "660.00", "176", domain.CommissionNone, "0"},
	}
	seedPatients = []struct {
		name  string
		phone string
		email string
	}{
		{"Paciente Exemplo 1", "(11) 90000-0001", "paciente1@exemplo.com"},
		{"Paciente Exemplo 2", "(11) 90000-0002", "paciente2@exemplo.com"},
		{"Paciente Exemplo 3", "(11) 90000-0003", "paciente3@exemplo.com"},
	}
)

// seedWorkspace inserts the starter procedures, collaborators and patients.
// It must run inside the signup transaction.
func seedWorkspace(ctx context.Context, repos portsrepo.RepositoryProvider, workspaceID, actorID string, now time.Time) error {
	audit := domain.NewAuditFields(actorID, now)

	for _, p := range seedProcedures {
		proc := domain.Procedure{
			ProcedureID:     uuid.NewString(),
			WorkspaceID:     workspaceID,
			Name:            p.name,
			Description:     p.desc,
			Price:           decimal.RequireFromString(p.price),
			DurationMinutes: p.duration,
			IsActive:        true,
			AuditFields:     audit,
		}
		if err := repos.ProcedureRepo.SaveProcedure(ctx, proc); err != nil {
			return fmt.Errorf("seed procedure %q: %w", p.name, err)
		}
	}

	for _, c := range seedCollaborators {
		collab := domain.Collaborator{
			CollaboratorID:  uuid.NewString(),
			WorkspaceID:     workspaceID,
			Name:            c.name,
			JobTitle:        c.title,
			BaseSalary:      decimal.RequireFromString(c.salary),
			Charges:         decimal.RequireFromString(c.charges),
			MonthlyHours:    decimal.RequireFromString(c.hours),
			CommissionType:  c.commission,
			CommissionValue: decimal.RequireFromString(c.value),
			IsActive:        true,
			AuditFields:     audit,
		}
		if err := repos.CollaboratorRepo.SaveCollaborator(ctx, collab); err != nil {
			return fmt.Errorf("seed collaborator %q: %w", c.name, err)
		}
	}

	for _, p := range seedPatients {
		patient := domain.Patient{
			PatientID:   uuid.NewString(),
			WorkspaceID: workspaceID,
			Name:        p.name,
			Phone:       p.phone,
			Email:       p.email,
			IsActive:    true,
			AuditFields: audit,
		}
		if err := repos.PatientRepo.SavePatient(ctx, patient); err != nil {
			return fmt.Errorf("seed patient %q: %w", p.name, err)
		}
	}
	return nil
}
