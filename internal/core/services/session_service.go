package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/finance"
)

type sessionService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewSessionService creates the scheduling service. It reads patients,
// procedures, collaborators and sales to validate references.
func NewSessionService(repos portsrepo.RepositoryProvider) portssvc.SessionSvcFacade {
	return &sessionService{BaseService: newBaseService(), repos: repos}
}

func (s *sessionService) ScheduleSession(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateSessionRequest) (*domain.ProcedureSession, error) {
	if req.ScheduledAt.IsZero() {
		return nil, apperrors.NewValidationFailedError("scheduledAt is required")
	}
	if _, err := s.repos.PatientRepo.FindPatientByID(ctx, workspaceID, req.PatientID); err != nil {
		return nil, referenceError(err, "Patient not found")
	}
	procedure, err := s.repos.ProcedureRepo.FindProcedureByID(ctx, workspaceID, req.ProcedureID)
	if err != nil {
		return nil, referenceError(err, "Procedure not found")
	}
	if !procedure.IsActive {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("procedure %q is inactive", procedure.Name))
	}
	if id := optional(req.CollaboratorID); id != nil {
		if _, err := s.repos.CollaboratorRepo.FindCollaboratorByID(ctx, workspaceID, *id); err != nil {
			return nil, referenceError(err, "Collaborator not found")
		}
	}
	if id := optional(req.SaleID); id != nil {
		sale, err := s.repos.SaleRepo.FindSaleByID(ctx, workspaceID, *id)
		if err != nil {
			return nil, referenceError(err, "Sale not found")
		}
		if sale.PatientID != req.PatientID {
			return nil, apperrors.NewValidationFailedError("sale belongs to another patient")
		}
	}

	ps := domain.ProcedureSession{
		SessionID:      uuid.NewString(),
		WorkspaceID:    workspaceID,
		PatientID:      req.PatientID,
		ProcedureID:    req.ProcedureID,
		CollaboratorID: optional(req.CollaboratorID),
		SaleID:         optional(req.SaleID),
		ScheduledAt:    req.ScheduledAt.UTC(),
		Status:         domain.SessionScheduled,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(session.UserID, s.Now()),
	}
	if err := s.repos.SessionRepo.SaveSession(ctx, ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

func (s *sessionService) GetSession(ctx context.Context, workspaceID, sessionID string) (*domain.ProcedureSession, error) {
	return s.repos.SessionRepo.FindSessionByID(ctx, workspaceID, sessionID)
}

func (s *sessionService) ListSessions(ctx context.Context, workspaceID string, filter domain.SessionFilter) ([]domain.ProcedureSession, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationFailedError("unknown session status")
	}
	return s.repos.SessionRepo.ListSessions(ctx, workspaceID, filter)
}

func (s *sessionService) UpdateSessionStatus(ctx context.Context, session domain.Session, workspaceID, sessionID string, status domain.SessionStatus) (*domain.ProcedureSession, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("unknown session status %q", status))
	}
	ps, err := s.repos.SessionRepo.FindSessionByID(ctx, workspaceID, sessionID)
	if err != nil {
		return nil, err
	}
	if ps.Status == status {
		return ps, nil
	}
	if !ps.Status.CanTransitionTo(status) {
		return nil, apperrors.NewInvalidStateError(fmt.Sprintf("session cannot move from %s to %s", ps.Status, status))
	}
	if err := s.repos.SessionRepo.UpdateSessionStatus(ctx, workspaceID, sessionID, status, session.UserID); err != nil {
		return nil, err
	}
	ps.Status = status
	ps.Touch(session.UserID, s.Now())
	ps.Version++
	return ps, nil
}

// AttendanceStats counts the sessions scheduled within period by status.
func (s *sessionService) AttendanceStats(ctx context.Context, workspaceID string, period domain.Period) (*domain.AttendanceStats, error) {
	sessions, err := s.repos.SessionRepo.ListSessions(ctx, workspaceID, domain.SessionFilter{Period: period})
	if err != nil {
		return nil, err
	}
	stats := finance.Stats(sessions)
	return &stats, nil
}

// optional maps an empty string pointer to nil.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
