// Package inventory aplica al stock el efecto de un documento finalizado.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

// Adjuster ajusta el stock de los productos de un documento. Debe llamarse dentro de
// la transacción que marca el documento como FINALIZED, con el ProductRepository de esa tx.
type Adjuster struct {
	metrics *metrics.DocumentMetrics
	log     *logger.Logger
}

// NewAdjuster construye el ajustador. m y log pueden ser nil.
func NewAdjuster(m *metrics.DocumentMetrics, log *logger.Logger) *Adjuster {
	if log == nil {
		log = logger.Nop()
	}
	return &Adjuster{metrics: m, log: log.Component("inventory")}
}

// Apply bloquea los productos en orden de id, valida que todas las líneas se puedan
// cubrir y recién entonces escribe el nuevo stock. kind es el tipo de documento
// (metrics.KindInvoice | metrics.KindPurchaseOrder) y documentID se usa en logs.
// Devuelve el stock resultante por producto.
func (a *Adjuster) Apply(
	ctx context.Context,
	products repository.ProductRepository,
	kind, documentID string,
	dir document.Direction,
	lines []entity.LineItem,
) (map[string]int64, error) {
	if len(lines) == 0 {
		return map[string]int64{}, nil
	}
	ids := document.ProductIDs(lines)

	levels, err := products.GetStockForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("inventory: bloquear productos: %w", err)
	}

	next, err := document.PlanStockAdjustment(dir, lines, levels)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrProductNotFound) {
			a.metrics.IncRejection(kind)
			a.log.Warn().Err(err).
				Str("kind", kind).
				Str("document_id", documentID).
				Str("direction", dir.String()).
				Msg("ajuste de stock rechazado")
		}
		return nil, err
	}

	var moved int64
	for _, id := range ids {
		if err := products.UpdateStock(ctx, id, next[id]); err != nil {
			return nil, fmt.Errorf("inventory: actualizar stock %s: %w", id, err)
		}
		delta := next[id] - levels[id]
		if delta < 0 {
			delta = -delta
		}
		moved += delta
	}
	a.metrics.AddUnits(dir.String(), moved)
	a.log.Info().
		Str("kind", kind).
		Str("document_id", documentID).
		Str("direction", dir.String()).
		Int("products", len(ids)).
		Int64("units", moved).
		Msg("stock ajustado")
	return next, nil
}
