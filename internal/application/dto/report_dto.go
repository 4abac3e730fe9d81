package dto

import "github.com/shopspring/decimal"

// DocumentTotalsDTO agregados de documentos finalizados.
type DocumentTotalsDTO struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// TopProductDTO producto en el ranking de ventas.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProductSalesBreakdownDTO ventas de un producto en el mes, con IGV calculado por el totalizador.
type ProductSalesBreakdownDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// GeneralReportDTO respuesta de GET /api/v1/reports/general.
type GeneralReportDTO struct {
	Sales        DocumentTotalsDTO     `json:"sales"`
	Purchases    DocumentTotalsDTO     `json:"purchases"`
	NetProfit    decimal.Decimal       `json:"net_profit"` // ventas.total - compras.total
	TopProducts  []TopProductDTO       `json:"top_products"`
	TopSuppliers []TopSupplierResponse `json:"top_suppliers"`
	GeneratedAt  string                `json:"generated_at"`
}

// MonthlyReportDTO respuesta de GET /api/v1/reports/monthly.
type MonthlyReportDTO struct {
	Month        int                        `json:"month"`
	Year         int                        `json:"year"`
	Label        string                     `json:"label"` // ej. "Marzo 2025"
	Sales        DocumentTotalsDTO          `json:"sales"`
	Purchases    DocumentTotalsDTO          `json:"purchases"`
	NetProfit    decimal.Decimal            `json:"net_profit"`
	TopProducts  []TopProductDTO            `json:"top_products"`
	TopSuppliers []TopSupplierResponse      `json:"top_suppliers"`
	Breakdown    []ProductSalesBreakdownDTO `json:"breakdown"`
	GeneratedAt  string                     `json:"generated_at"`
}

// MonthlyReportQuery parámetros de GET /api/v1/reports/monthly.
type MonthlyReportQuery struct {
	Month  int    `query:"month" validate:"required,min=1,max=12"`
	Year   int    `query:"year" validate:"required,min=2000,max=2100"`
	Format string `query:"format" validate:"omitempty,oneof=json pdf"`
}
