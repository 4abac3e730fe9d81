package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante impreso de una factura.
// Solo se permite para facturas FINALIZED: antes de eso los montos pueden cambiar.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF arma el PDF con los montos guardados de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrDocumentNotFound si la factura no existe.
//   - domain.ErrConflict         si la factura todavía no está finalizada.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrDocumentNotFound
	}
	if inv.Status != entity.StatusFinalized {
		return nil, "", fmt.Errorf("%w: la factura está en estado %s, finalícela antes de descargar el PDF",
			domain.ErrConflict, inv.Status)
	}

	customer, err := uc.customerRepo.GetByID(ctx, inv.CustomerID)
	if err != nil || customer == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", errOrNotFound(err))
	}
	employee, err := uc.employeeRepo.GetByID(ctx, inv.EmployeeID)
	if err != nil || employee == nil {
		return nil, "", fmt.Errorf("pdf: obtener empleado: %w", errOrNotFound(err))
	}

	lines := make([]InvoiceLineForPDF, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		name := "Producto " + l.ProductID
		if product, pErr := uc.productRepo.GetByID(ctx, l.ProductID); pErr == nil && product != nil {
			name = product.Name
		}
		lines = append(lines, InvoiceLineForPDF{LineItem: l, ProductName: name})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, customer, employee, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.ID), nil
}

func errOrNotFound(err error) error {
	if err != nil {
		return err
	}
	return domain.ErrNotFound
}
