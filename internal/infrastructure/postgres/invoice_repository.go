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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, employee_id, customer_id, date, status, subtotal, tax, total, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	if err := row.Scan(&inv.ID, &inv.EmployeeID, &inv.CustomerID, &inv.Date, &status,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	inv.Status = entity.DocumentStatus(status)
	return &inv, nil
}

// Create persiste la cabecera y sus líneas.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.EmployeeID, inv.CustomerID, inv.Date, string(inv.Status),
		inv.Subtotal, inv.Tax, inv.Total, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("empleado o cliente inexistente: %w", domain.ErrInvalidInput)
		}
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return invoiceLines.insert(ctx, r.q, inv.ID, inv.Lines)
}

// GetByID obtiene la factura con sus líneas.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila de la cabecera hasta el fin de la tx.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *InvoiceRepo) get(ctx context.Context, query, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.Lines, err = invoiceLines.load(ctx, r.q, inv.ID)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateStatus persiste estado, totales y fecha de la venta.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE invoices SET status = $2, subtotal = $3, tax = $4, total = $5, date = $6, updated_at = $7
		WHERE id = $1`,
		inv.ID, string(inv.Status), inv.Subtotal, inv.Tax, inv.Total, inv.Date, inv.UpdatedAt)
	if err != nil {
		if isNumericOverflow(err) {
			return fmt.Errorf("monto fuera de rango: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// List lista cabeceras (sin líneas) ordenadas por fecha descendente.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	limit, offset = normalizePage(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices
		ORDER BY date DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
