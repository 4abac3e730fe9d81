package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes general y mensual.
// Solo se consideran documentos en estado FINALIZED.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// periodArgs devuelve los límites del período como parámetros; NULL si no aplica.
func periodArgs(p repository.Period) (start, end any) {
	if !p.Start.IsZero() {
		start = p.Start.UTC()
	}
	if !p.End.IsZero() {
		end = p.End.UTC()
	}
	return start, end
}

// GetSalesTotals suma los agregados persistidos de facturas finalizadas.
func (r *ReportRepo) GetSalesTotals(ctx context.Context, p repository.Period) (repository.DocumentTotalsResult, error) {
	const query = `
	SELECT COUNT(*),
	       COALESCE(SUM(subtotal), 0),
	       COALESCE(SUM(tax), 0),
	       COALESCE(SUM(total), 0)
	FROM invoices
	WHERE status = 'FINALIZED'
	  AND ($1::timestamptz IS NULL OR date >= $1)
	  AND ($2::timestamptz IS NULL OR date <  $2)`
	start, end := periodArgs(p)
	var res repository.DocumentTotalsResult
	if err := r.q.QueryRow(ctx, query, start, end).Scan(
		&res.Count, &res.Subtotal, &res.Tax, &res.Total,
	); err != nil {
		return res, fmt.Errorf("report.GetSalesTotals: %w", err)
	}
	return res, nil
}

// GetPurchaseTotals suma los agregados persistidos de pedidos completados.
func (r *ReportRepo) GetPurchaseTotals(ctx context.Context, p repository.Period) (repository.DocumentTotalsResult, error) {
	const query = `
	SELECT COUNT(*),
	       COALESCE(SUM(subtotal), 0),
	       COALESCE(SUM(tax), 0),
	       COALESCE(SUM(total), 0)
	FROM purchase_orders
	WHERE status = 'FINALIZED'
	  AND ($1::timestamptz IS NULL OR order_date >= $1)
	  AND ($2::timestamptz IS NULL OR order_date <  $2)`
	start, end := periodArgs(p)
	var res repository.DocumentTotalsResult
	if err := r.q.QueryRow(ctx, query, start, end).Scan(
		&res.Count, &res.Subtotal, &res.Tax, &res.Total,
	); err != nil {
		return res, fmt.Errorf("report.GetPurchaseTotals: %w", err)
	}
	return res, nil
}

// GetTopProducts productos más vendidos por unidades.
func (r *ReportRepo) GetTopProducts(ctx context.Context, p repository.Period, limit int) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT pr.id, pr.name, SUM(l.quantity) AS units, SUM(l.subtotal) AS revenue
	FROM invoices i
	JOIN invoice_lines l ON l.invoice_id = i.id
	JOIN products     pr ON pr.id        = l.product_id
	WHERE i.status = 'FINALIZED'
	  AND ($1::timestamptz IS NULL OR i.date >= $1)
	  AND ($2::timestamptz IS NULL OR i.date <  $2)
	GROUP BY pr.id, pr.name
	ORDER BY units DESC, pr.name
	LIMIT $3`
	start, end := periodArgs(p)
	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetTopProducts: %w", err)
	}
	defer rows.Close()
	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("report.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopSuppliers proveedores ordenados por total comprado en pedidos completados.
func (r *ReportRepo) GetTopSuppliers(ctx context.Context, p repository.Period, limit int) ([]repository.SupplierPurchasesResult, error) {
	const query = `
	SELECT s.id, s.name, COUNT(po.id), COALESCE(SUM(po.total), 0) AS total
	FROM suppliers s
	JOIN purchase_orders po ON po.supplier_id = s.id
	WHERE po.status = 'FINALIZED'
	  AND ($1::timestamptz IS NULL OR po.order_date >= $1)
	  AND ($2::timestamptz IS NULL OR po.order_date <  $2)
	GROUP BY s.id, s.name
	ORDER BY total DESC, s.name
	LIMIT $3`
	start, end := periodArgs(p)
	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetTopSuppliers: %w", err)
	}
	defer rows.Close()
	var results []repository.SupplierPurchasesResult
	for rows.Next() {
		var row repository.SupplierPurchasesResult
		if err := rows.Scan(&row.SupplierID, &row.SupplierName, &row.OrderCount, &row.Total); err != nil {
			return nil, fmt.Errorf("report.GetTopSuppliers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListSoldLines líneas de facturas finalizadas del período, con el precio congelado.
func (r *ReportRepo) ListSoldLines(ctx context.Context, p repository.Period) ([]repository.SoldLineResult, error) {
	const query = `
	SELECT i.id, pr.id, pr.name, l.quantity, l.unit_price, l.subtotal
	FROM invoices i
	JOIN invoice_lines l ON l.invoice_id = i.id
	JOIN products     pr ON pr.id        = l.product_id
	WHERE i.status = 'FINALIZED'
	  AND ($1::timestamptz IS NULL OR i.date >= $1)
	  AND ($2::timestamptz IS NULL OR i.date <  $2)
	ORDER BY i.date, i.id, l.position`
	start, end := periodArgs(p)
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.ListSoldLines: %w", err)
	}
	defer rows.Close()
	var results []repository.SoldLineResult
	for rows.Next() {
		var row repository.SoldLineResult
		if err := rows.Scan(&row.InvoiceID, &row.ProductID, &row.ProductName, &row.Quantity, &row.UnitPrice, &row.Subtotal); err != nil {
			return nil, fmt.Errorf("report.ListSoldLines scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
