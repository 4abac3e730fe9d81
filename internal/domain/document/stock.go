package document

import (
	"math"
	"sort"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Direction sentido del ajuste de stock al finalizar un documento.
type Direction int

const (
	// Sale descuenta stock (factura de venta).
	Sale Direction = iota
	// Replenishment suma stock (pedido de compra completado).
	Replenishment
)

func (d Direction) String() string {
	if d == Replenishment {
		return "replenishment"
	}
	return "sale"
}

// QuantitiesByProduct agrupa las cantidades de las líneas por producto.
func QuantitiesByProduct(lines []entity.LineItem) map[string]int64 {
	out := make(map[string]int64, len(lines))
	for _, l := range lines {
		out[l.ProductID] += l.Quantity
	}
	return out
}

// ProductIDs ids distintos de las líneas, ordenados. El orden fijo evita interbloqueos
// cuando dos transacciones bloquean los mismos productos.
func ProductIDs(lines []entity.LineItem) []string {
	qty := QuantitiesByProduct(lines)
	ids := make([]string, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PlanStockAdjustment calcula el nuevo stock de cada producto tocado por las líneas.
// levels trae el stock actual (leído con bloqueo). Para ventas se validan todos los
// productos antes de devolver nada: si alguno no alcanza, se devuelve
// InsufficientStockError y ningún nivel. Un producto ausente en levels es ProductNotFoundError.
func PlanStockAdjustment(dir Direction, lines []entity.LineItem, levels map[string]int64) (map[string]int64, error) {
	requested := QuantitiesByProduct(lines)
	for _, id := range ProductIDs(lines) {
		q := requested[id]
		if q <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		current, ok := levels[id]
		if !ok {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		if dir == Sale && current < q {
			return nil, &domain.InsufficientStockError{ProductID: id, Available: current, Requested: q}
		}
		if dir == Replenishment && current > math.MaxInt64-q {
			return nil, domain.ErrInvalidQuantity
		}
	}
	next := make(map[string]int64, len(requested))
	for id, q := range requested {
		if dir == Sale {
			next[id] = levels[id] - q
		} else {
			next[id] = levels[id] + q
		}
	}
	return next, nil
}
