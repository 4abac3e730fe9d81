// Package report contiene los reportes de ventas y compras. Todos los montos salen de
// documentos FINALIZED; el desglose mensual por producto pasa por el totalizador.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

const topProducts = 5 // productos más vendidos en cada reporte

// UseCase arma los reportes general y mensual.
//
// Fuente de datos: ReportRepository (consultas read-only).
type UseCase struct {
	repo repository.ReportRepository
	pdf  PDFGenerator
	now  func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si solo se sirve JSON.
func NewUseCase(repo repository.ReportRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{repo: repo, pdf: pdf, now: time.Now}
}

type aggregates struct {
	sales     repository.DocumentTotalsResult
	purchases repository.DocumentTotalsResult
	products  []repository.ProductSalesResult
	suppliers []repository.SupplierPurchasesResult
}

// gather ejecuta las cuatro consultas del período en paralelo.
func (uc *UseCase) gather(ctx context.Context, p repository.Period) (aggregates, error) {
	type totalsResult struct {
		res repository.DocumentTotalsResult
		err error
	}
	type productsResult struct {
		rows []repository.ProductSalesResult
		err  error
	}
	type suppliersResult struct {
		rows []repository.SupplierPurchasesResult
		err  error
	}

	salesCh := make(chan totalsResult, 1)
	purchasesCh := make(chan totalsResult, 1)
	productsCh := make(chan productsResult, 1)
	suppliersCh := make(chan suppliersResult, 1)

	go func() {
		res, err := uc.repo.GetSalesTotals(ctx, p)
		salesCh <- totalsResult{res, err}
	}()
	go func() {
		res, err := uc.repo.GetPurchaseTotals(ctx, p)
		purchasesCh <- totalsResult{res, err}
	}()
	go func() {
		rows, err := uc.repo.GetTopProducts(ctx, p, topProducts)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.GetTopSuppliers(ctx, p, usecase.TopSuppliersLimit)
		suppliersCh <- suppliersResult{rows, err}
	}()

	sales := <-salesCh
	purchases := <-purchasesCh
	products := <-productsCh
	suppliers := <-suppliersCh

	if sales.err != nil {
		return aggregates{}, fmt.Errorf("report: totales de ventas: %w", sales.err)
	}
	if purchases.err != nil {
		return aggregates{}, fmt.Errorf("report: totales de compras: %w", purchases.err)
	}
	if products.err != nil {
		return aggregates{}, fmt.Errorf("report: productos más vendidos: %w", products.err)
	}
	if suppliers.err != nil {
		return aggregates{}, fmt.Errorf("report: ranking de proveedores: %w", suppliers.err)
	}
	return aggregates{
		sales:     sales.res,
		purchases: purchases.res,
		products:  products.rows,
		suppliers: suppliers.rows,
	}, nil
}

// General reporte histórico completo.
func (uc *UseCase) General(ctx context.Context) (*dto.GeneralReportDTO, error) {
	agg, err := uc.gather(ctx, repository.Period{})
	if err != nil {
		return nil, err
	}
	return &dto.GeneralReportDTO{
		Sales:        totalsDTO(agg.sales),
		Purchases:    totalsDTO(agg.purchases),
		NetProfit:    agg.sales.Total.Sub(agg.purchases.Total),
		TopProducts:  topProductsDTO(agg.products),
		TopSuppliers: usecase.TopSuppliersFrom(agg.suppliers),
		GeneratedAt:  uc.now().Format(time.RFC3339),
	}, nil
}

// Monthly reporte del mes indicado, con desglose de ventas por producto.
func (uc *UseCase) Monthly(ctx context.Context, month, year int) (*dto.MonthlyReportDTO, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, fmt.Errorf("mes %d/%d: %w", month, year, domain.ErrInvalidInput)
	}
	period := repository.MonthPeriod(month, year)
	agg, err := uc.gather(ctx, period)
	if err != nil {
		return nil, err
	}
	sold, err := uc.repo.ListSoldLines(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("report: líneas vendidas: %w", err)
	}
	return &dto.MonthlyReportDTO{
		Month:        month,
		Year:         year,
		Label:        monthLabel(period.Start),
		Sales:        totalsDTO(agg.sales),
		Purchases:    totalsDTO(agg.purchases),
		NetProfit:    agg.sales.Total.Sub(agg.purchases.Total),
		TopProducts:  topProductsDTO(agg.products),
		TopSuppliers: usecase.TopSuppliersFrom(agg.suppliers),
		Breakdown:    Breakdown(sold),
		GeneratedAt:  uc.now().Format(time.RFC3339),
	}, nil
}

// GeneralPDF reporte general renderizado como PDF.
func (uc *UseCase) GeneralPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("report: generador PDF no configurado")
	}
	r, err := uc.General(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateGeneralReportPDF(ctx, r)
}

// MonthlyPDF reporte mensual renderizado como PDF.
func (uc *UseCase) MonthlyPDF(ctx context.Context, month, year int) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("report: generador PDF no configurado")
	}
	r, err := uc.Monthly(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateMonthlyReportPDF(ctx, r)
}

// Breakdown agrupa las líneas vendidas por producto y calcula subtotal, IGV y total
// de cada grupo con el mismo totalizador que usan las facturas. Ordena por unidades.
func Breakdown(sold []repository.SoldLineResult) []dto.ProductSalesBreakdownDTO {
	type group struct {
		name  string
		units int64
		lines []entity.LineItem
	}
	byProduct := map[string]*group{}
	order := make([]string, 0)
	for _, s := range sold {
		g, ok := byProduct[s.ProductID]
		if !ok {
			g = &group{name: s.ProductName}
			byProduct[s.ProductID] = g
			order = append(order, s.ProductID)
		}
		g.units += s.Quantity
		g.lines = append(g.lines, entity.LineItem{
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			UnitPrice: s.UnitPrice,
			Subtotal:  s.Subtotal,
		})
	}
	out := make([]dto.ProductSalesBreakdownDTO, 0, len(order))
	for _, id := range order {
		g := byProduct[id]
		t := document.Totalize(g.lines)
		out = append(out, dto.ProductSalesBreakdownDTO{
			ProductID:   id,
			ProductName: g.name,
			UnitsSold:   g.units,
			Subtotal:    t.Subtotal,
			Tax:         t.Tax,
			Total:       t.Total,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	return out
}

func totalsDTO(r repository.DocumentTotalsResult) dto.DocumentTotalsDTO {
	return dto.DocumentTotalsDTO{Count: r.Count, Subtotal: r.Subtotal, Tax: r.Tax, Total: r.Total}
}

func topProductsDTO(rows []repository.ProductSalesResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			UnitsSold:   r.UnitsSold,
			Revenue:     r.Revenue,
		})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
