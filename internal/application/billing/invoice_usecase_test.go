package billing_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/billing"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

type fixture struct {
	store      *memory.Store
	products   *memory.ProductRepo
	invoices   *memory.InvoiceRepo
	customers  *memory.CustomerRepo
	employees  *memory.EmployeeRepo
	reg        *prometheus.Registry
	uc         *billing.InvoiceUseCase
	customerID string
	employeeID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:      store,
		products:   memory.NewProductRepository(store),
		invoices:   memory.NewInvoiceRepository(store),
		customers:  memory.NewCustomerRepository(store),
		employees:  memory.NewEmployeeRepository(store),
		reg:        prometheus.NewRegistry(),
		customerID: uuid.New().String(),
		employeeID: uuid.New().String(),
	}
	ctx := context.Background()
	require.NoError(t, f.customers.Create(ctx, &entity.Customer{
		ID: f.customerID, FirstName: "Ana", LastName: "Pérez", DNI: "12345678", RegisteredAt: time.Now(),
	}))
	require.NoError(t, f.employees.Create(ctx, &entity.Employee{
		ID:     f.employeeID,
		Person: entity.Person{ID: uuid.New().String(), FirstName: "Luis", Identification: "E-001"},
		Role:   entity.RoleEmpleado,
	}))

	m := metrics.NewDocumentMetrics(f.reg)
	f.uc = billing.NewInvoiceUseCase(
		memory.NewTxRunner(store), f.invoices, f.products, f.customers, f.employees,
		inventory.NewAdjuster(m, nil), m, nil,
	)
	return f
}

func (f *fixture) addProduct(t *testing.T, price string, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID:             id,
		Name:           "Paracetamol " + id[:4],
		Price:          decimal.RequireFromString(price),
		Stock:          stock,
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	}))
	return id
}

func (f *fixture) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) request(productID string, qty int64, draft bool) dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		EmployeeID: f.employeeID,
		CustomerID: f.customerID,
		Draft:      draft,
		Items:      []dto.LineItemRequest{{ProductID: productID, Quantity: qty}},
	}
}

func counter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestInvoiceUseCase_CreateFinalizaYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "10.00", 5)

	inv, err := f.uc.Create(ctx, f.request(pid, 3, false))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusFinalized), inv.Status)
	assert.Equal(t, "30.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "5.40", inv.Tax.StringFixed(2))
	assert.Equal(t, "35.40", inv.Total.StringFixed(2))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "10.00", inv.Lines[0].UnitPrice.StringFixed(2))
	assert.NotEmpty(t, inv.Lines[0].ProductName)
	assert.Equal(t, int64(2), f.stock(t, pid))
	assert.Equal(t, 1.0, counter(t, f.reg, "documents_finalized_total"))

	_, err = f.uc.Create(ctx, f.request(pid, 4, false))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, pid, stockErr.ProductID)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(4), stockErr.Requested)

	assert.Equal(t, int64(2), f.stock(t, pid))
	list, err := f.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "la factura rechazada no debe quedar guardada")
	assert.Equal(t, 1.0, counter(t, f.reg, "stock_rejections_total"))
}

func TestInvoiceUseCase_CreateConPrecioExplicito(t *testing.T) {
	f := newFixture(t)
	pid := f.addProduct(t, "10.00", 5)
	price := decimal.RequireFromString("7.50")
	req := f.request(pid, 2, false)
	req.Items[0].UnitPrice = &price

	inv, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "15.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "2.70", inv.Tax.StringFixed(2))
	assert.Equal(t, "17.70", inv.Total.StringFixed(2))
}

func TestInvoiceUseCase_CreateValidaReferencias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "10.00", 5)

	req := f.request(pid, 1, false)
	req.CustomerID = uuid.New().String()
	_, err := f.uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request(pid, 1, false)
	req.EmployeeID = uuid.New().String()
	_, err = f.uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, f.request(uuid.New().String(), 1, false))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.uc.Create(ctx, f.request(pid, 0, false))
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	req = f.request(pid, 1, false)
	req.Items = nil
	_, err = f.uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, int64(5), f.stock(t, pid))
}

func TestInvoiceUseCase_BorradorYFinalizarDosVeces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "4.20", 10)

	draft, err := f.uc.Create(ctx, f.request(pid, 3, true))
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), draft.Status)
	assert.Equal(t, int64(10), f.stock(t, pid), "un borrador no mueve stock")

	first, err := f.uc.Finalize(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusFinalized), first.Status)
	assert.Equal(t, int64(7), f.stock(t, pid))

	second, err := f.uc.Finalize(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusFinalized), second.Status)
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, int64(7), f.stock(t, pid), "finalizar de nuevo no descuenta otra vez")
	assert.Equal(t, 1.0, counter(t, f.reg, "documents_finalized_total"))
}

func TestInvoiceUseCase_FinalizarBorradorSinStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "1.00", 2)

	draft, err := f.uc.Create(ctx, f.request(pid, 5, true))
	require.NoError(t, err)

	_, err = f.uc.Finalize(ctx, draft.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.uc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), got.Status)
	assert.Equal(t, int64(2), f.stock(t, pid))
}

// Un borrador de otro mes se cuenta como venta del día en que se finaliza.
func TestInvoiceUseCase_FinalizarFijaFechaDeVenta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "10.00", 5)
	p, err := f.products.GetByID(ctx, pid)
	require.NoError(t, err)

	l, err := document.NewLineItem(p, 2, nil)
	require.NoError(t, err)
	totals := document.Totalize([]entity.LineItem{l})
	drafted := time.Now().AddDate(0, -2, 0)
	id := uuid.New().String()
	require.NoError(t, f.invoices.Create(ctx, &entity.Invoice{
		ID:         id,
		EmployeeID: f.employeeID,
		CustomerID: f.customerID,
		Date:       drafted,
		Status:     entity.StatusDraft,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Lines:      []entity.LineItem{l},
		CreatedAt:  drafted,
		UpdatedAt:  drafted,
	}))

	out, err := f.uc.Finalize(ctx, id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), out.Date, time.Minute)

	stored, err := f.invoices.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.WithinDuration(t, time.Now(), stored.Date, time.Minute)
	assert.Equal(t, int64(3), f.stock(t, pid))
}

// Un total que no cabe en NUMERIC(12,2) es un error de entrada y no toca nada.
func TestInvoiceUseCase_CreateTotalFueraDeRango(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "10.00", 5)
	price := decimal.RequireFromString("9000000000.00")
	req := f.request(pid, 1, false)
	req.Items[0].UnitPrice = &price

	_, err := f.uc.Create(ctx, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(5), f.stock(t, pid))

	list, err := f.invoices.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInvoiceUseCase_FinalizarInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Finalize(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

// Varias ventas concurrentes por la última unidad: exactamente una gana.
func TestInvoiceUseCase_UltimaUnidadConcurrente(t *testing.T) {
	f := newFixture(t)
	pid := f.addProduct(t, "3.00", 1)

	const buyers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(context.Background(), f.request(pid, 1, false))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, buyers-1, rejected)
	assert.Equal(t, int64(0), f.stock(t, pid))
}

func TestInvoiceUseCase_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := f.addProduct(t, "2.00", 10)

	final, err := f.uc.Create(ctx, f.request(pid, 1, false))
	require.NoError(t, err)
	assert.ErrorIs(t, f.uc.Delete(ctx, final.ID), domain.ErrConflict)

	draft, err := f.uc.Create(ctx, f.request(pid, 1, true))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, draft.ID))
	_, err = f.uc.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	assert.ErrorIs(t, f.uc.Delete(ctx, draft.ID), domain.ErrDocumentNotFound)
}
