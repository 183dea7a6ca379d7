package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
)

type patientService struct {
	BaseService
	patientRepo portsrepo.PatientRepositoryFacade
}

// NewPatientService creates the patient records service.
func NewPatientService(patientRepo portsrepo.PatientRepositoryFacade) portssvc.PatientSvcFacade {
	return &patientService{BaseService: newBaseService(), patientRepo: patientRepo}
}

func (s *patientService) CreatePatient(ctx context.Context, session domain.Session, workspaceID string, req dto.CreatePatientRequest) (*domain.Patient, error) {
	patient, err := s.newPatient(session, workspaceID, req)
	if err != nil {
		return nil, err
	}
	if err := s.patientRepo.SavePatient(ctx, *patient); err != nil {
		s.LogError(ctx, err, "Failed to save patient", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return patient, nil
}

func (s *patientService) newPatient(session domain.Session, workspaceID string, req dto.CreatePatientRequest) (*domain.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	return &domain.Patient{
		PatientID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Document:    strings.TrimSpace(req.Document),
		BirthDate:   req.BirthDate,
		Notes:       req.Notes,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(session.UserID, s.Now()),
	}, nil
}

func (s *patientService) GetPatient(ctx context.Context, workspaceID, patientID string) (*domain.Patient, error) {
	return s.patientRepo.FindPatientByID(ctx, workspaceID, patientID)
}

func (s *patientService) ListPatients(ctx context.Context, workspaceID string, filter domain.PatientFilter) ([]domain.Patient, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.patientRepo.ListPatients(ctx, workspaceID, filter)
}

func (s *patientService) UpdatePatient(ctx context.Context, session domain.Session, workspaceID, patientID string, req dto.UpdatePatientRequest) (*domain.Patient, error) {
	patient, err := s.patientRepo.FindPatientByID(ctx, workspaceID, patientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		patient.Name = name
	}
	if req.Phone != nil {
		patient.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		patient.Email = strings.TrimSpace(*req.Email)
	}
	if req.Document != nil {
		patient.Document = strings.TrimSpace(*req.Document)
	}
	if req.BirthDate != nil {
		patient.BirthDate = req.BirthDate
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	patient.Touch(session.UserID, s.Now())
	if err := s.patientRepo.UpdatePatient(ctx, *patient); err != nil {
		return nil, err
	}
	patient.Version++
	return patient, nil
}

// DeletePatient is a soft delete; sales and sessions keep pointing at the row.
func (s *patientService) DeletePatient(ctx context.Context, session domain.Session, workspaceID, patientID string) error {
	return s.patientRepo.DeactivatePatient(ctx, workspaceID, patientID, session.UserID)
}

// ImportPatients saves each row on its own so one bad row does not reject the batch.
func (s *patientService) ImportPatients(ctx context.Context, session domain.Session, workspaceID string, rows []dto.CreatePatientRequest) ([]domain.ImportResult, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationFailedError("no patients to import")
	}
	results := make([]domain.ImportResult, 0, len(rows))
	failed := 0
	for i, row := range rows {
		res := domain.ImportResult{Index: i}
		patient, err := s.newPatient(session, workspaceID, row)
		if err == nil {
			err = s.patientRepo.SavePatient(ctx, *patient)
		}
		if err != nil {
			failed++
			res.Error = clientMessage(err)
			s.LogDebug(ctx, "Patient import row failed", slog.Int("index", i), slog.String("error", err.Error()))
		} else {
			res.PatientID = patient.PatientID
		}
		results = append(results, res)
	}
	s.LogInfo(ctx, "Patient import finished",
		slog.String("workspace_id", workspaceID),
		slog.Int("rows", len(rows)),
		slog.Int("failed", failed))
	return results, nil
}

// clientMessage is the part of err that is safe to show to API clients.
func clientMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && apperrors.StatusCode(err) < 500 {
		return appErr.Message
	}
	return "internal error"
}
