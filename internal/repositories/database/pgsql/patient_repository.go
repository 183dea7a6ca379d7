package pgsql

import (
	"context"

	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxPatientRepository struct {
	BaseRepository
}

func newPgxPatientRepository(db DBTX) portsrepo.PatientRepositoryFacade {
	return &PgxPatientRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.PatientRepositoryFacade = (*PgxPatientRepository)(nil)

const patientSelectQuery = `
SELECT
	p.patient_id, p.workspace_id, p.name, p.phone, p.email, p.document, p.birth_date, p.notes, p.is_active,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by, p.version
FROM patients p
`

func (r *PgxPatientRepository) SavePatient(ctx context.Context, patient domain.Patient) error {
	query := `
		INSERT INTO patients (
			patient_id, workspace_id, name, phone, email, document, birth_date, notes, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1);
	`
	_, err := r.DB.Exec(ctx, query,
		patient.PatientID,
		patient.WorkspaceID,
		patient.Name,
		patient.Phone,
		patient.Email,
		patient.Document,
		patient.BirthDate,
		patient.Notes,
		patient.IsActive,
		patient.CreatedAt,
		patient.CreatedBy,
		patient.LastUpdatedAt,
		patient.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "patient with this name and phone")
	}
	return nil
}

func (r *PgxPatientRepository) FindPatientByID(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error) {
	return collectOne[domain.Patient](ctx, r.DB, "patient",
		patientSelectQuery+`WHERE p.workspace_id = $1 AND p.patient_id = $2`, workspaceID, patientID)
}

func (r *PgxPatientRepository) ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error) {
	var where whereBuilder
	where.add("p.workspace_id = ?", workspaceID)
	if !filter.IncludeInactive {
		where.addRaw("p.is_active")
	}
	if filter.Search != "" {
		where.add("(p.name ILIKE ? OR p.phone ILIKE ? OR p.email ILIKE ?)", "%"+filter.Search+"%")
	}
	query := patientSelectQuery + where.String() + " ORDER BY p.name"
	query += where.page(filter.Limit, filter.Offset)
	return collect[domain.Patient](ctx, r.DB, "patients", query, where.args...)
}

func (r *PgxPatientRepository) UpdatePatient(ctx context.Context, patient domain.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, phone = $2, email = $3, document = $4, birth_date = $5, notes = $6,
			last_updated_at = $7, last_updated_by = $8, version = version + 1
		WHERE workspace_id = $9 AND patient_id = $10 AND version = $11;
	`
	tag, err := r.DB.Exec(ctx, query,
		patient.Name,
		patient.Phone,
		patient.Email,
		patient.Document,
		patient.BirthDate,
		patient.Notes,
		patient.LastUpdatedAt,
		patient.LastUpdatedBy,
		patient.WorkspaceID,
		patient.PatientID,
		patient.Version,
	)
	if err != nil {
		return translateWriteError(err, "patient with this name and phone")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("patient was modified concurrently, reload and retry")
	}
	return nil
}

func (r *PgxPatientRepository) DeactivatePatient(ctx context.Context, workspaceID, patientID, updatedBy string) error {
	query := `
		UPDATE patients
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $1, version = version + 1
		WHERE workspace_id = $2 AND patient_id = $3;
	`
	return r.execOne(ctx, "patient", query, updatedBy, workspaceID, patientID)
}

func (r *PgxPatientRepository) CountActivePatients(ctx context.Context, workspaceID string) (int, error) {
	var count int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM patients WHERE workspace_id = $1 AND is_active`, workspaceID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count patients", err)
	}
	return count, nil
}
