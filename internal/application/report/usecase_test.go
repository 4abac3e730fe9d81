package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/report"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
)

type seeded struct {
	store *memory.Store
	a, b  *entity.Product
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	s := seeded{
		store: store,
		a:     &entity.Product{ID: uuid.New().String(), Name: "Paracetamol", Price: decimal.RequireFromString("10.00")},
		b:     &entity.Product{ID: uuid.New().String(), Name: "Vitamina C", Price: decimal.RequireFromString("3.33")},
	}
	require.NoError(t, products.Create(ctx, s.a))
	require.NoError(t, products.Create(ctx, s.b))

	invoices := memory.NewInvoiceRepository(store)
	addInvoice := func(when time.Time, status entity.DocumentStatus, items map[*entity.Product]int64) {
		var lines []entity.LineItem
		for _, p := range []*entity.Product{s.a, s.b} {
			qty, ok := items[p]
			if !ok {
				continue
			}
			l, err := document.NewLineItem(p, qty, nil)
			require.NoError(t, err)
			lines = append(lines, l)
		}
		tot := document.Totalize(lines)
		require.NoError(t, invoices.Create(ctx, &entity.Invoice{
			ID: uuid.New().String(), Date: when, Status: status, Lines: lines,
			Subtotal: tot.Subtotal, Tax: tot.Tax, Total: tot.Total,
		}))
	}
	addInvoice(date(2025, time.March, 5), entity.StatusFinalized, map[*entity.Product]int64{s.a: 3, s.b: 1})
	addInvoice(date(2025, time.April, 2), entity.StatusFinalized, map[*entity.Product]int64{s.a: 1})
	addInvoice(date(2025, time.March, 9), entity.StatusDraft, map[*entity.Product]int64{s.a: 100})

	suppliers := memory.NewSupplierRepository(store)
	supplierID := uuid.New().String()
	require.NoError(t, suppliers.Create(ctx, &entity.Supplier{ID: supplierID, Name: "Droguería Lima"}))
	require.NoError(t, memory.NewPurchaseOrderRepository(store).Create(ctx, &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		OrderDate:  date(2025, time.March, 1),
		Status:     entity.StatusFinalized,
		Subtotal:   decimal.RequireFromString("20.00"),
		Tax:        decimal.RequireFromString("3.60"),
		Total:      decimal.RequireFromString("23.60"),
	}))
	return s
}

func TestUseCase_General(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(memory.NewReportRepository(s.store), nil)

	r, err := uc.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Sales.Count)
	assert.Equal(t, "51.13", r.Sales.Total.StringFixed(2))
	assert.Equal(t, "7.80", r.Sales.Tax.StringFixed(2))
	assert.Equal(t, 1, r.Purchases.Count)
	assert.Equal(t, "23.60", r.Purchases.Total.StringFixed(2))
	assert.Equal(t, "27.53", r.NetProfit.StringFixed(2))

	require.Len(t, r.TopProducts, 2)
	assert.Equal(t, s.a.ID, r.TopProducts[0].ProductID)
	assert.Equal(t, int64(4), r.TopProducts[0].UnitsSold)
	assert.Equal(t, "40.00", r.TopProducts[0].Revenue.StringFixed(2))

	require.Len(t, r.TopSuppliers, 1)
	assert.Equal(t, "Droguería Lima", r.TopSuppliers[0].SupplierName)
	assert.NotEmpty(t, r.GeneratedAt)
}

func TestUseCase_Monthly(t *testing.T) {
	s := seed(t)
	uc := report.NewUseCase(memory.NewReportRepository(s.store), nil)

	r, err := uc.Monthly(context.Background(), 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, "Marzo 2025", r.Label)
	assert.Equal(t, 1, r.Sales.Count)
	assert.Equal(t, "33.33", r.Sales.Subtotal.StringFixed(2))
	assert.Equal(t, "6.00", r.Sales.Tax.StringFixed(2))
	assert.Equal(t, "39.33", r.Sales.Total.StringFixed(2))
	assert.Equal(t, "15.73", r.NetProfit.StringFixed(2))

	require.Len(t, r.Breakdown, 2)
	assert.Equal(t, "Paracetamol", r.Breakdown[0].ProductName)
	assert.Equal(t, int64(3), r.Breakdown[0].UnitsSold)
	assert.Equal(t, "30.00", r.Breakdown[0].Subtotal.StringFixed(2))
	assert.Equal(t, "5.40", r.Breakdown[0].Tax.StringFixed(2))
	assert.Equal(t, "35.40", r.Breakdown[0].Total.StringFixed(2))
	assert.Equal(t, "0.60", r.Breakdown[1].Tax.StringFixed(2))
	assert.Equal(t, "3.93", r.Breakdown[1].Total.StringFixed(2))

	empty, err := uc.Monthly(context.Background(), 1, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Sales.Count)
	assert.Empty(t, empty.Breakdown)

	_, err = uc.Monthly(context.Background(), 13, 2025)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeReportPDF struct {
	general *dto.GeneralReportDTO
	monthly *dto.MonthlyReportDTO
}

func (f *fakeReportPDF) GenerateGeneralReportPDF(_ context.Context, r *dto.GeneralReportDTO) ([]byte, error) {
	f.general = r
	return []byte("%PDF-general"), nil
}

func (f *fakeReportPDF) GenerateMonthlyReportPDF(_ context.Context, r *dto.MonthlyReportDTO) ([]byte, error) {
	f.monthly = r
	return []byte("%PDF-monthly"), nil
}

func TestUseCase_PDF(t *testing.T) {
	s := seed(t)
	gen := &fakeReportPDF{}
	uc := report.NewUseCase(memory.NewReportRepository(s.store), gen)

	out, err := uc.GeneralPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-general", string(out))
	require.NotNil(t, gen.general)
	assert.Equal(t, "51.13", gen.general.Sales.Total.StringFixed(2))

	out, err = uc.MonthlyPDF(context.Background(), 4, 2025)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-monthly", string(out))
	assert.Equal(t, "11.80", gen.monthly.Sales.Total.StringFixed(2))

	_, err = report.NewUseCase(memory.NewReportRepository(s.store), nil).GeneralPDF(context.Background())
	assert.Error(t, err)
}
