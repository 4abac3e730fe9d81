package document_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func TestPlanStockAdjustment_VentaDescuenta(t *testing.T) {
	next, err := document.PlanStockAdjustment(document.Sale,
		[]entity.LineItem{line("p1", "10.00", 3)},
		map[string]int64{"p1": 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"p1": 2}, next)
}

// Dos líneas del mismo producto se validan contra el total pedido, no por separado.
func TestPlanStockAdjustment_AgrupaPorProducto(t *testing.T) {
	_, err := document.PlanStockAdjustment(document.Sale,
		[]entity.LineItem{line("p1", "1.00", 3), line("p1", "1.00", 3)},
		map[string]int64{"p1": 5})

	var se *domain.InsufficientStockError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "p1", se.ProductID)
	assert.EqualValues(t, 5, se.Available)
	assert.EqualValues(t, 6, se.Requested)
}

// Todo o nada: si un producto falla no se devuelve ningún nivel.
func TestPlanStockAdjustment_TodoONada(t *testing.T) {
	levels := map[string]int64{"a": 10, "b": 1}
	next, err := document.PlanStockAdjustment(document.Sale,
		[]entity.LineItem{line("a", "1.00", 2), line("b", "1.00", 4)},
		levels)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, next)
	assert.Equal(t, map[string]int64{"a": 10, "b": 1}, levels, "los niveles de entrada no se modifican")
}

func TestPlanStockAdjustment_ReposicionSuma(t *testing.T) {
	next, err := document.PlanStockAdjustment(document.Replenishment,
		[]entity.LineItem{line("p1", "4.00", 7), line("p2", "1.00", 1)},
		map[string]int64{"p1": 0, "p2": 3})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"p1": 7, "p2": 4}, next)
}

func TestPlanStockAdjustment_ProductoFaltante(t *testing.T) {
	_, err := document.PlanStockAdjustment(document.Sale,
		[]entity.LineItem{line("x", "1.00", 1)},
		map[string]int64{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestPlanStockAdjustment_DesbordeNoSeEnvuelve(t *testing.T) {
	_, err := document.PlanStockAdjustment(document.Replenishment,
		[]entity.LineItem{line("p1", "1.00", 10)},
		map[string]int64{"p1": math.MaxInt64 - 5})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestProductIDs_OrdenadosYUnicos(t *testing.T) {
	ids := document.ProductIDs([]entity.LineItem{line("c", "1", 1), line("a", "1", 1), line("c", "1", 2)})
	assert.Equal(t, []string{"a", "c"}, ids)
}
