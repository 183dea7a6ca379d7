package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/apperrors"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
	portssvc "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/services"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/dto"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/utils/finance"
)

type saleService struct {
	BaseService
	saleRepo portsrepo.SaleRepositoryFacade
	tx       portsrepo.TxRunner
}

// NewSaleService creates the sales service. Sales are written in a
// transaction together with their items.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, tx portsrepo.TxRunner) portssvc.SaleSvcFacade {
	return &saleService{BaseService: newBaseService(), saleRepo: saleRepo, tx: tx}
}

// CreateSale checks that the patient, seller and every procedure belong to
// the workspace, prices the items and stores the sale.
func (s *saleService) CreateSale(ctx context.Context, session domain.Session, workspaceID string, req dto.CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.NewValidationFailedError("a sale needs at least one item")
	}
	now := s.Now()
	sale := domain.Sale{
		SaleID:        uuid.NewString(),
		WorkspaceID:   workspaceID,
		PatientID:     req.PatientID,
		SellerID:      req.SellerID,
		SaleDate:      now,
		Discount:      req.Discount.Round(2),
		PaymentMethod: req.PaymentMethod,
		Installments:  req.Installments,
		Status:        domain.SaleCompleted,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(session.UserID, now),
	}
	if req.SaleDate != nil {
		sale.SaleDate = req.SaleDate.UTC()
	}
	if sale.Installments <= 0 {
		sale.Installments = 1
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := repos.PatientRepo.FindPatientByID(ctx, workspaceID, req.PatientID); err != nil {
			return referenceError(err, "Patient not found")
		}
		if req.SellerID != nil && *req.SellerID != "" {
			if _, err := repos.CollaboratorRepo.FindCollaboratorByID(ctx, workspaceID, *req.SellerID); err != nil {
				return referenceError(err, "Seller not found")
			}
		} else {
			sale.SellerID = nil
		}

		sale.Items = make([]domain.SaleItem, 0, len(req.Items))
		for i, item := range req.Items {
			procedure, err := repos.ProcedureRepo.FindProcedureByID(ctx, workspaceID, item.ProcedureID)
			if err != nil {
				return referenceError(err, fmt.Sprintf("Procedure of item %d not found", i))
			}
			if !procedure.IsActive {
				return apperrors.NewValidationFailedError(fmt.Sprintf("procedure %q is inactive", procedure.Name))
			}
			unitPrice := procedure.Price
			if item.UnitPrice != nil {
				unitPrice = item.UnitPrice.Round(2)
			}
			sale.Items = append(sale.Items, domain.SaleItem{
				SaleItemID:  uuid.NewString(),
				SaleID:      sale.SaleID,
				ProcedureID: procedure.ProcedureID,
				Quantity:    item.Quantity,
				UnitPrice:   unitPrice,
			})
		}

		total, err := finance.SaleTotal(sale.Items, sale.Discount)
		if err != nil {
			return apperrors.NewValidationFailedError(err.Error())
		}
		sale.TotalAmount = total
		return repos.SaleRepo.SaveSale(ctx, sale)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create sale", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.LogInfo(ctx, "Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("total", sale.TotalAmount.String()))
	return &sale, nil
}

func (s *saleService) GetSale(ctx context.Context, workspaceID, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, workspaceID, saleID)
}

func (s *saleService) ListSales(ctx context.Context, workspaceID string, filter domain.SaleFilter) ([]domain.Sale, error) {
	return s.saleRepo.ListSales(ctx, workspaceID, filter)
}

// CancelSale marks a completed sale as cancelled. Cancelling twice is an invalid state.
func (s *saleService) CancelSale(ctx context.Context, session domain.Session, workspaceID, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByID(ctx, workspaceID, saleID)
	if err != nil {
		return nil, err
	}
	if sale.Status == domain.SaleCancelled {
		return nil, apperrors.NewInvalidStateError("Sale is already cancelled")
	}
	if err := s.saleRepo.UpdateSaleStatus(ctx, workspaceID, saleID, domain.SaleCancelled, session.UserID); err != nil {
		return nil, err
	}
	sale.Status = domain.SaleCancelled
	sale.Touch(session.UserID, s.Now())
	sale.Version++
	return sale, nil
}

// referenceError turns a missing referenced entity into a not-found with msg.
func referenceError(err error, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(msg)
	}
	return err
}
