package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// lineTable describe la tabla de líneas de un tipo de documento.
type lineTable struct {
	name      string // invoice_lines | purchase_order_lines
	docColumn string // invoice_id | purchase_order_id
}

var (
	invoiceLines       = lineTable{name: "invoice_lines", docColumn: "invoice_id"}
	purchaseOrderLines = lineTable{name: "purchase_order_lines", docColumn: "purchase_order_id"}
)

func (t lineTable) insert(ctx context.Context, q Querier, documentID string, lines []entity.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, product_id, quantity, unit_price, subtotal, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, t.name, t.docColumn)
	for i := range lines {
		l := &lines[i]
		l.DocumentID = documentID
		if _, err := q.Exec(ctx, query, l.ID, documentID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal, i); err != nil {
			if isForeignKeyViolation(err) {
				return &domain.ProductNotFoundError{ProductID: l.ProductID}
			}
			if isNumericOverflow(err) {
				return fmt.Errorf("subtotal de línea fuera de rango: %w", domain.ErrInvalidInput)
			}
			return fmt.Errorf("insert %s: %w", t.name, err)
		}
	}
	return nil
}

func (t lineTable) load(ctx context.Context, q Querier, documentID string) ([]entity.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT id, %s, product_id, quantity, unit_price, subtotal
		FROM %s WHERE %s = $1 ORDER BY position`, t.docColumn, t.name, t.docColumn)
	rows, err := q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", t.name, err)
	}
	defer rows.Close()
	var lines []entity.LineItem
	for rows.Next() {
		var l entity.LineItem
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
