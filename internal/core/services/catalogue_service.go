package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/shopspring/decimal"
)

// --- Procedures ---

type procedureService struct {
	BaseService
	procedureRepo portsrepo.ProcedureRepositoryFacade
}

// NewProcedureService creates the procedure catalogue service.
func NewProcedureService(procedureRepo portsrepo.ProcedureRepositoryFacade) portssvc.ProcedureSvcFacade {
	return &procedureService{BaseService: newBaseService(), procedureRepo: procedureRepo}
}

func (s *procedureService) CreateProcedure(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateProcedureRequest) (*domain.Procedure, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	if req.Price.IsNegative() {
		return nil, apperrors.NewValidationFailedError("price cannot be negative")
	}
	procedure := domain.Procedure{
		ProcedureID:     uuid.NewString(),
		WorkspaceID:     workspaceID,
		Name:            name,
		Description:     req.Description,
		Price:           req.Price.Round(2),
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(session.UserID, s.Now()),
	}
	if err := s.procedureRepo.SaveProcedure(ctx, procedure); err != nil {
		return nil, err
	}
	return &procedure, nil
}

func (s *procedureService) GetProcedure(ctx context.Context, workspaceID, procedureID string) (*domain.Procedure, error) {
	return s.procedureRepo.FindProcedureByID(ctx, workspaceID, procedureID)
}

func (s *procedureService) ListProcedures(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Procedure, error) {
	return s.procedureRepo.ListProcedures(ctx, workspaceID, includeInactive)
}

func (s *procedureService) UpdateProcedure(ctx context.Context, session domain.Session, workspaceID, procedureID string, req dto.UpdateProcedureRequest) (*domain.Procedure, error) {
	procedure, err := s.procedureRepo.FindProcedureByID(ctx, workspaceID, procedureID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationFailedError("name cannot be empty")
		}
		procedure.Name = name
	}
	if req.Description != nil {
		procedure.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.NewValidationFailedError("price cannot be negative")
		}
		procedure.Price = req.Price.Round(2)
	}
	if req.DurationMinutes != nil {
		procedure.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		procedure.IsActive = *req.IsActive
	}
	procedure.Touch(session.UserID, s.Now())
	if err := s.procedureRepo.UpdateProcedure(ctx, *procedure); err != nil {
		return nil, err
	}
	procedure.Version++
	return procedure, nil
}

func (s *procedureService) DeleteProcedure(ctx context.Context, session domain.Session, workspaceID, procedureID string) error {
	return s.procedureRepo.DeactivateProcedure(ctx, workspaceID, procedureID, session.UserID)
}

// --- Collaborators ---

type collaboratorService struct {
	BaseService
	collaboratorRepo portsrepo.CollaboratorRepositoryFacade
}

// NewCollaboratorService creates the staff service.
func NewCollaboratorService(collaboratorRepo portsrepo.CollaboratorRepositoryFacade) portssvc.CollaboratorSvcFacade {
	return &collaboratorService{BaseService: newBaseService(), collaboratorRepo: collaboratorRepo}
}

func (s *collaboratorService) CreateCollaborator(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateCollaboratorRequest) (*domain.Collaborator, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	commissionType := req.CommissionType
	if commissionType == "" {
		commissionType = domain.CommissionNone
	}
	collaborator := domain.Collaborator{
		CollaboratorID:  uuid.NewString(),
		WorkspaceID:     workspaceID,
		Name:            name,
		JobTitle:        strings.TrimSpace(req.JobTitle),
		BaseSalary:      req.BaseSalary.Round(2),
		Charges:         req.Charges.Round(2),
		MonthlyHours:    req.MonthlyHours,
		CommissionType:  commissionType,
		CommissionValue: req.CommissionValue,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(session.UserID, s.Now()),
	}
	if err := validateCollaborator(collaborator); err != nil {
		return nil, err
	}
	if err := s.collaboratorRepo.SaveCollaborator(ctx, collaborator); err != nil {
		return nil, err
	}
	return &collaborator, nil
}

func (s *collaboratorService) GetCollaborator(ctx context.Context, workspaceID, collaboratorID string) (*domain.Collaborator, error) {
	return s.collaboratorRepo.FindCollaboratorByID(ctx, workspaceID, collaboratorID)
}

func (s *collaboratorService) ListCollaborators(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.Collaborator, error) {
	return s.collaboratorRepo.ListCollaborators(ctx, workspaceID, includeInactive)
}

func (s *collaboratorService) UpdateCollaborator(ctx context.Context, session domain.Session, workspaceID, collaboratorID string, req dto.UpdateCollaboratorRequest) (*domain.Collaborator, error) {
	c, err := s.collaboratorRepo.FindCollaboratorByID(ctx, workspaceID, collaboratorID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.JobTitle != nil {
		c.JobTitle = strings.TrimSpace(*req.JobTitle)
	}
	if req.BaseSalary != nil {
		c.BaseSalary = req.BaseSalary.Round(2)
	}
	if req.Charges != nil {
		c.Charges = req.Charges.Round(2)
	}
	if req.MonthlyHours != nil {
		c.MonthlyHours = *req.MonthlyHours
	}
	if req.CommissionType != nil {
		c.CommissionType = *req.CommissionType
	}
	if req.CommissionValue != nil {
		c.CommissionValue = *req.CommissionValue
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := validateCollaborator(*c); err != nil {
		return nil, err
	}
	c.Touch(session.UserID, s.Now())
	if err := s.collaboratorRepo.UpdateCollaborator(ctx, *c); err != nil {
		return nil, err
	}
	c.Version++
	return c, nil
}

func (s *collaboratorService) DeleteCollaborator(ctx context.Context, session domain.Session, workspaceID, collaboratorID string) error {
	return s.collaboratorRepo.DeactivateCollaborator(ctx, workspaceID, collaboratorID, session.UserID)
}

var hundredPercent = decimal.NewFromInt(100)

func validateCollaborator(c domain.Collaborator) error {
	switch {
	case c.Name == "":
		return apperrors.NewValidationFailedError("name cannot be empty")
	case c.BaseSalary.IsNegative(), c.Charges.IsNegative(), c.MonthlyHours.IsNegative():
		return apperrors.NewValidationFailedError("salary, charges and monthly hours cannot be negative")
	case c.CommissionValue.IsNegative():
		return apperrors.NewValidationFailedError("commissionValue cannot be negative")
	}
	switch c.CommissionType {
	case domain.CommissionPercentage:
		if c.CommissionValue.GreaterThan(hundredPercent) {
			return apperrors.NewValidationFailedError("percentage commission cannot exceed 100")
		}
	case domain.CommissionFixed, domain.CommissionNone:
	default:
		return apperrors.NewValidationFailedError("unknown commissionType")
	}
	return nil
}
