package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, supplier_id, order_date, status, subtotal, tax, total, created_at, updated_at`

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var status string
	if err := row.Scan(&po.ID, &po.SupplierID, &po.OrderDate, &status,
		&po.Subtotal, &po.Tax, &po.Total, &po.CreatedAt, &po.UpdatedAt); err != nil {
		return nil, err
	}
	po.Status = entity.DocumentStatus(status)
	return &po, nil
}

// Create persiste cabecera y líneas del pedido.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_orders (`+purchaseOrderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		po.ID, po.SupplierID, po.OrderDate, string(po.Status),
		po.Subtotal, po.Tax, po.Total, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("proveedor inexistente: %w", domain.ErrInvalidInput)
		}
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return purchaseOrderLines.insert(ctx, r.q, po.ID, po.Lines)
}

// GetByID obtiene el pedido con sus líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera del pedido hasta el fin de la tx.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Lines, err = purchaseOrderLines.load(ctx, r.q, po.ID)
	if err != nil {
		return nil, err
	}
	return po, nil
}

// UpdateStatus persiste estado y totales.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, po *entity.PurchaseOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET status = $2, subtotal = $3, tax = $4, total = $5, updated_at = $6
		WHERE id = $1`,
		po.ID, string(po.Status), po.Subtotal, po.Tax, po.Total, po.UpdatedAt)
	if err != nil {
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// List lista cabeceras (sin líneas), las más recientes primero.
func (r *PurchaseOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders
		ORDER BY order_date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	return list, rows.Err()
}

// Delete elimina el pedido y sus líneas.
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
