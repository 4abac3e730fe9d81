package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/application/purchasing"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

type env struct {
	products   *memory.ProductRepo
	orders     *memory.PurchaseOrderRepo
	uc         *purchasing.UseCase
	supplierID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.NewStore()
	suppliers := memory.NewSupplierRepository(store)
	e := &env{
		products:   memory.NewProductRepository(store),
		orders:     memory.NewPurchaseOrderRepository(store),
		supplierID: uuid.New().String(),
	}
	require.NoError(t, suppliers.Create(context.Background(), &entity.Supplier{ID: e.supplierID, Name: "Droguería Central"}))
	m := metrics.NewDocumentMetrics(prometheus.NewRegistry())
	e.uc = purchasing.NewUseCase(
		memory.NewTxRunner(store), e.orders, e.products, suppliers,
		inventory.NewAdjuster(m, nil), m, nil,
	)
	return e
}

func (e *env) addProduct(t *testing.T, price string, stock int64) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.products.Create(context.Background(), &entity.Product{
		ID:             id,
		Name:           "Amoxicilina " + id[:4],
		Price:          decimal.RequireFromString(price),
		Stock:          stock,
		ExpirationDate: time.Now().AddDate(2, 0, 0),
	}))
	return id
}

func (e *env) stock(t *testing.T, id string) int64 {
	t.Helper()
	p, err := e.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestUseCase_CreateYCompletar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "5.00", 1)
	b := e.addProduct(t, "2.50", 0)
	cost := decimal.RequireFromString("3.20")

	po, err := e.uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		OrderDate:  "2025-03-10",
		Items: []dto.LineItemRequest{
			{ProductID: a, Quantity: 10, UnitPrice: &cost},
			{ProductID: b, Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), po.Status)
	assert.Equal(t, "42.00", po.Subtotal.StringFixed(2))
	assert.Equal(t, "7.56", po.Tax.StringFixed(2))
	assert.Equal(t, "49.56", po.Total.StringFixed(2))
	assert.Equal(t, 2025, po.OrderDate.Year())
	assert.Equal(t, int64(1), e.stock(t, a), "crear no mueve stock")

	got, err := e.uc.UpdateStatus(ctx, po.ID, "En Proceso")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusInProcess), got.Status)
	assert.Equal(t, int64(1), e.stock(t, a))

	got, err = e.uc.UpdateStatus(ctx, po.ID, "Completado")
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusFinalized), got.Status)
	assert.Equal(t, int64(11), e.stock(t, a))
	assert.Equal(t, int64(4), e.stock(t, b))

	_, err = e.uc.UpdateStatus(ctx, po.ID, "FINALIZED")
	require.NoError(t, err)
	assert.Equal(t, int64(11), e.stock(t, a), "repetir el estado final no repone dos veces")
}

func TestUseCase_UpdateStatusRetroceso(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "1.00", 0)

	po, err := e.uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: 3}},
	})
	require.NoError(t, err)
	_, err = e.uc.UpdateStatus(ctx, po.ID, "FINALIZED")
	require.NoError(t, err)

	_, err = e.uc.UpdateStatus(ctx, po.ID, "Pendiente")
	var trErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, string(entity.StatusFinalized), trErr.From)
	assert.Equal(t, string(entity.StatusDraft), trErr.To)
	assert.Equal(t, int64(3), e.stock(t, a))

	_, err = e.uc.UpdateStatus(ctx, po.ID, "cancelado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.UpdateStatus(ctx, uuid.New().String(), "FINALIZED")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestUseCase_CreateValida(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "1.00", 0)

	_, err := e.uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: uuid.New().String(),
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: -2}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = e.uc.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		OrderDate:  "10/03/2025",
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_CreateTotalFueraDeRango(t *testing.T) {
	e := newEnv(t)
	a := e.addProduct(t, "1.00", 0)

	// 9 000 000 000 × 1.00 + IGV no cabe en NUMERIC(12,2).
	_, err := e.uc.Create(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: 9_000_000_000}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un pedido con totales guardados incoherentes no se completa ni mueve stock.
func TestUseCase_UpdateStatusTotalesIncoherentes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "2.00", 1)
	id := uuid.New().String()
	require.NoError(t, e.orders.Create(ctx, &entity.PurchaseOrder{
		ID:         id,
		SupplierID: e.supplierID,
		OrderDate:  time.Now(),
		Status:     entity.StatusDraft,
		Subtotal:   decimal.RequireFromString("4.00"),
		Tax:        decimal.RequireFromString("0.72"),
		Total:      decimal.RequireFromString("5.00"),
		Lines: []entity.LineItem{{
			ID:        uuid.New().String(),
			ProductID: a,
			Quantity:  2,
			UnitPrice: decimal.RequireFromString("2.00"),
			Subtotal:  decimal.RequireFromString("4.00"),
		}},
	}))

	_, err := e.uc.UpdateStatus(ctx, id, "FINALIZED")
	require.Error(t, err)
	assert.Equal(t, int64(1), e.stock(t, a))

	got, err := e.uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusDraft), got.Status)
}

func TestUseCase_Delete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := e.addProduct(t, "1.00", 0)
	req := dto.CreatePurchaseOrderRequest{
		SupplierID: e.supplierID,
		Items:      []dto.LineItemRequest{{ProductID: a, Quantity: 1}},
	}

	done, err := e.uc.Create(ctx, req)
	require.NoError(t, err)
	_, err = e.uc.UpdateStatus(ctx, done.ID, "FINALIZED")
	require.NoError(t, err)
	assert.ErrorIs(t, e.uc.Delete(ctx, done.ID), domain.ErrConflict)

	pending, err := e.uc.Create(ctx, req)
	require.NoError(t, err)
	require.NoError(t, e.uc.Delete(ctx, pending.ID))
	_, err = e.uc.Get(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	list, err := e.uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
