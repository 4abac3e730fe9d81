package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler. pdf puede ser nil si no se expone la descarga.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear factura
// @Description  Calcula líneas y totales (IGV 18%) y, salvo draft=true, finaliza la factura
// @Description  descontando stock en la misma transacción.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Empleado, cliente y líneas"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/v1/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	invoice, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// Finalize godoc
// @Summary      Finalizar factura en borrador
// @Description  Idempotente: una factura ya finalizada se devuelve sin volver a tocar stock.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/invoices/{id}/finalize [post]
func (h *InvoiceHandler) Finalize(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	invoice, err := h.uc.Finalize(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// GetByID godoc
// @Summary      Detalle de factura
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	invoice, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(invoice)
}

// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), pageFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura en borrador
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "factura finalizada"
// @Router       /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "factura no finalizada"
// @Router       /api/v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok, err := pathID(c, domain.ErrDocumentNotFound)
	if !ok {
		return err
	}
	if h.pdf == nil {
		return fail(c, fiber.StatusNotImplemented, "PDF_DISABLED", "generación de PDF no configurada")
	}
	data, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, filename, data)
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
