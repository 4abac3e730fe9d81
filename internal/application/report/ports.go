package report

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

// PDFGenerator renderiza reportes ya calculados. No consulta ni recalcula montos.
type PDFGenerator interface {
	GenerateGeneralReportPDF(ctx context.Context, r *dto.GeneralReportDTO) ([]byte, error)
	GenerateMonthlyReportPDF(ctx context.Context, r *dto.MonthlyReportDTO) ([]byte, error)
}
