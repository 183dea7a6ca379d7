package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/marcobahe/projeto-clinihof-sub002/internal/core/domain"
	portsrepo "github.com/marcobahe/projeto-clinihof-sub002/internal/core/ports/repositories"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(db DBTX) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

const saleSelectQuery = `
SELECT
	s.sale_id, s.workspace_id, s.patient_id, s.seller_id, s.sale_date, s.discount, s.total_amount,
	s.payment_method, s.installments, s.status, s.notes,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by, s.version
FROM sales s
`

// SaveSale writes the header and its items in one batch. Callers wrap it in
// a transaction so a failed item leaves no header behind.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO sales (
			sale_id, workspace_id, patient_id, seller_id, sale_date, discount, total_amount,
			payment_method, installments, status, notes,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, 1);`,
		sale.SaleID,
		sale.WorkspaceID,
		sale.PatientID,
		sale.SellerID,
		sale.SaleDate,
		sale.Discount,
		sale.TotalAmount,
		sale.PaymentMethod,
		sale.Installments,
		sale.Status,
		sale.Notes,
		sale.CreatedAt,
		sale.CreatedBy,
		sale.LastUpdatedAt,
		sale.LastUpdatedBy,
	)
	itemQuery := `
		INSERT INTO sale_items (sale_item_id, sale_id, procedure_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, item := range sale.Items {
		batch.Queue(itemQuery, item.SaleItemID, sale.SaleID, item.ProcedureID, item.Quantity, item.UnitPrice)
	}

	br := r.DB.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err, "sale")
	}
	return nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, workspaceID, saleID string) (*domain.Sale, error) {
	sale, err := collectOne[domain.Sale](ctx, r.DB, "sale",
		saleSelectQuery+`WHERE s.workspace_id = $1 AND s.sale_id = $2`, workspaceID, saleID)
	if err != nil {
		return nil, err
	}
	items, err := collect[domain.SaleItem](ctx, r.DB, "sale items", `
		SELECT sale_item_id, sale_id, procedure_id, quantity, unit_price
		FROM sale_items WHERE sale_id = $1 ORDER BY sale_item_id`, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

// ListSales returns sale headers only; Items stay empty.
func (r *PgxSaleRepository) ListSales(ctx context.Context, workspaceID string, filter domain.SaleFilter) ([]domain.Sale, error) {
	var where whereBuilder
	where.add("s.workspace_id = ?", workspaceID)
	if !filter.Period.From.IsZero() {
		where.add("s.sale_date >= ?", filter.Period.From)
	}
	if !filter.Period.To.IsZero() {
		where.add("s.sale_date <= ?", filter.Period.To)
	}
	if filter.PatientID != "" {
		where.add("s.patient_id = ?", filter.PatientID)
	}
	if filter.SellerID != "" {
		where.add("s.seller_id = ?", filter.SellerID)
	}
	if filter.Status != nil {
		where.add("s.status = ?", *filter.Status)
	}
	query := saleSelectQuery + where.String() + " ORDER BY s.sale_date DESC"
	query += where.page(filter.Limit, filter.Offset)
	return collect[domain.Sale](ctx, r.DB, "sales", query, where.args...)
}

func (r *PgxSaleRepository) UpdateSaleStatus(ctx context.Context, workspaceID, saleID string, status domain.SaleStatus, updatedBy string) error {
	query := `
		UPDATE sales
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2, version = version + 1
		WHERE workspace_id = $3 AND sale_id = $4;
	`
	return r.execOne(ctx, "sale", query, status, updatedBy, workspaceID, saleID)
}
