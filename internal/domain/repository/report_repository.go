package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period rango [Start, End) de fechas para los reportes. Un Period cero no filtra.
type Period struct {
	Start time.Time
	End   time.Time
}

// IsZero indica si el período no restringe fechas.
func (p Period) IsZero() bool { return p.Start.IsZero() && p.End.IsZero() }

// MonthPeriod devuelve el período del mes indicado en UTC.
func MonthPeriod(month, year int) Period {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// DocumentTotalsResult suma de agregados ya persistidos de documentos FINALIZED.
type DocumentTotalsResult struct {
	Count    int
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ProductSalesResult unidades e ingresos por producto vendido.
type ProductSalesResult struct {
	ProductID   string
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal // suma de subtotales de línea
}

// SupplierPurchasesResult ranking de proveedores por monto comprado.
type SupplierPurchasesResult struct {
	SupplierID   string
	SupplierName string
	OrderCount   int
	Total        decimal.Decimal
}

// SoldLineResult línea de factura finalizada, con el precio congelado al crearla.
type SoldLineResult struct {
	InvoiceID   string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReportRepository consultas de lectura para reportes. Solo consideran documentos FINALIZED.
type ReportRepository interface {
	GetSalesTotals(ctx context.Context, period Period) (DocumentTotalsResult, error)
	GetPurchaseTotals(ctx context.Context, period Period) (DocumentTotalsResult, error)
	// GetTopProducts ordena por unidades vendidas descendente.
	GetTopProducts(ctx context.Context, period Period, limit int) ([]ProductSalesResult, error)
	// GetTopSuppliers ordena por total comprado descendente.
	GetTopSuppliers(ctx context.Context, period Period, limit int) ([]SupplierPurchasesResult, error)
	ListSoldLines(ctx context.Context, period Period) ([]SoldLineResult, error)
}
