package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/report"
)

// ReportHandler expone los reportes general y mensual en JSON o PDF (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// General godoc
// @Summary      Reporte general
// @Description  Ventas e IGV de facturas finalizadas, compras, utilidad neta y rankings.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        format  query  string  false  "json | pdf"
// @Success      200  {object}  dto.GeneralReportDTO
// @Router       /api/v1/reports/general [get]
func (h *ReportHandler) General(c *fiber.Ctx) error {
	if c.Query("format") == "pdf" {
		data, err := h.uc.GeneralPDF(c.Context())
		if err != nil {
			return respondError(c, err)
		}
		return sendPDF(c, "reporte_general.pdf", data)
	}
	out, err := h.uc.General(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Monthly godoc
// @Summary      Reporte mensual
// @Description  Igual que el general, limitado al mes, con el detalle por producto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      application/pdf
// @Param        month   query  int     true   "Mes (1-12)"
// @Param        year    query  int     true   "Año"
// @Param        format  query  string  false  "json | pdf"
// @Success      200  {object}  dto.MonthlyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	var q dto.MonthlyReportQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	if q.Format == "pdf" {
		data, err := h.uc.MonthlyPDF(c.Context(), q.Month, q.Year)
		if err != nil {
			return respondError(c, err)
		}
		return sendPDF(c, fmt.Sprintf("reporte_%04d_%02d.pdf", q.Year, q.Month), data)
	}
	out, err := h.uc.Monthly(c.Context(), q.Month, q.Year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
