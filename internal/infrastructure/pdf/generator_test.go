package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0.00", groupThousands("0.00"))
	assert.Equal(t, "999", groupThousands("999"))
	assert.Equal(t, "1,000", groupThousands("1000"))
	assert.Equal(t, "25,000.50", groupThousands("25000.50"))
	assert.Equal(t, "1,234,567.89", groupThousands("1234567.89"))
	assert.Equal(t, "-1,000.00", groupThousands("-1000.00"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "S/ 35.40", money(decimal.RequireFromString("35.4")))
	assert.Equal(t, "S/ 1,234.50", money(decimal.RequireFromString("1234.5")))
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Farmacia Vida")
	inv := &entity.Invoice{
		ID:       "5a8e5c0e-0000-4000-8000-000000000001",
		Date:     time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC),
		Status:   entity.StatusFinalized,
		Subtotal: decimal.RequireFromString("30.00"),
		Tax:      decimal.RequireFromString("5.40"),
		Total:    decimal.RequireFromString("35.40"),
	}
	line := entity.LineItem{
		ProductID: "p1",
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("10.00"),
		Subtotal:  decimal.RequireFromString("30.00"),
	}
	out, err := g.GenerateInvoicePDF(context.Background(), inv,
		&entity.Customer{FirstName: "Ana", LastName: "Pérez", DNI: "12345678"},
		&entity.Employee{Person: entity.Person{FirstName: "Luis", LastNames: "Soto"}},
		[]billing.InvoiceLineForPDF{{LineItem: line, ProductName: "Paracetamol 500mg"}},
	)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReportPDFs(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	sales := dto.DocumentTotalsDTO{
		Count:    2,
		Subtotal: decimal.RequireFromString("43.33"),
		Tax:      decimal.RequireFromString("7.80"),
		Total:    decimal.RequireFromString("51.13"),
	}

	out, err := g.GenerateGeneralReportPDF(context.Background(), &dto.GeneralReportDTO{
		Sales:       sales,
		NetProfit:   sales.Total,
		TopProducts: []dto.TopProductDTO{{ProductName: "Paracetamol", UnitsSold: 4, Revenue: decimal.RequireFromString("40.00")}},
		GeneratedAt: "2025-04-01T00:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))

	out, err = g.GenerateMonthlyReportPDF(context.Background(), &dto.MonthlyReportDTO{
		Month:     3,
		Year:      2025,
		Label:     "Marzo 2025",
		Sales:     sales,
		Breakdown: []dto.ProductSalesBreakdownDTO{{
			ProductName: "Paracetamol",
			UnitsSold:   3,
			Subtotal:    decimal.RequireFromString("30.00"),
			Tax:         decimal.RequireFromString("5.40"),
			Total:       decimal.RequireFromString("35.40"),
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
