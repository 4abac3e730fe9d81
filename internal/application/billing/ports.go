package billing

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// InvoiceLineForPDF línea de factura enriquecida con el nombre del producto.
type InvoiceLineForPDF struct {
	entity.LineItem
	ProductName string
}

// InvoicePDFGenerator genera la representación impresa de una factura finalizada.
// Solo lee los montos ya persistidos; no recalcula nada.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		employee *entity.Employee,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}
