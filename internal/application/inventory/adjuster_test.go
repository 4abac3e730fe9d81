package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

func seedProduct(t *testing.T, repo *memory.ProductRepo, id string, stock int64) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &entity.Product{
		ID:             id,
		Name:           "Producto " + id,
		Price:          decimal.RequireFromString("10.00"),
		Stock:          stock,
		ExpirationDate: time.Now().AddDate(1, 0, 0),
	}))
}

func stockOf(t *testing.T, repo *memory.ProductRepo, id string) int64 {
	t.Helper()
	p, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func TestAdjuster_Sale(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seedProduct(t, products, "a", 5)
	seedProduct(t, products, "b", 2)

	reg := prometheus.NewRegistry()
	adj := inventory.NewAdjuster(metrics.NewDocumentMetrics(reg), nil)

	next, err := adj.Apply(context.Background(), products, metrics.KindInvoice, "inv-1", document.Sale, []entity.LineItem{
		{ProductID: "a", Quantity: 3},
		{ProductID: "b", Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 2, "b": 0}, next)
	assert.Equal(t, int64(2), stockOf(t, products, "a"))
	assert.Equal(t, int64(0), stockOf(t, products, "b"))
}

// Si una línea no alcanza no se toca ningún producto.
func TestAdjuster_SaleAllOrNothing(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seedProduct(t, products, "a", 5)
	seedProduct(t, products, "b", 1)

	reg := prometheus.NewRegistry()
	m := metrics.NewDocumentMetrics(reg)
	adj := inventory.NewAdjuster(m, nil)

	_, err := adj.Apply(context.Background(), products, metrics.KindInvoice, "inv-1", document.Sale, []entity.LineItem{
		{ProductID: "a", Quantity: 3},
		{ProductID: "b", Quantity: 2},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "b", stockErr.ProductID)

	assert.Equal(t, int64(5), stockOf(t, products, "a"))
	assert.Equal(t, int64(1), stockOf(t, products, "b"))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var rejections float64
	for _, mf := range mfs {
		if mf.GetName() == "stock_rejections_total" {
			for _, metric := range mf.GetMetric() {
				rejections += metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, rejections)
}

func TestAdjuster_Replenishment(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	seedProduct(t, products, "a", 0)

	adj := inventory.NewAdjuster(nil, nil)
	_, err := adj.Apply(context.Background(), products, metrics.KindPurchaseOrder, "po-1", document.Replenishment, []entity.LineItem{
		{ProductID: "a", Quantity: 10},
		{ProductID: "a", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), stockOf(t, products, "a"))
}

func TestAdjuster_ProductoInexistente(t *testing.T) {
	store := memory.NewStore()
	products := memory.NewProductRepository(store)

	adj := inventory.NewAdjuster(nil, nil)
	_, err := adj.Apply(context.Background(), products, metrics.KindInvoice, "inv-1", document.Sale, []entity.LineItem{
		{ProductID: "fantasma", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjuster_SinLineas(t *testing.T) {
	adj := inventory.NewAdjuster(nil, nil)
	next, err := adj.Apply(context.Background(), memory.NewProductRepository(memory.NewStore()),
		metrics.KindInvoice, "inv-1", document.Sale, nil)
	require.NoError(t, err)
	assert.Empty(t, next)
}
