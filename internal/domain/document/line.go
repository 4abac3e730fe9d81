// Package document concentra el cálculo de facturas y pedidos de compra:
// subtotal por línea, totales con IGV, máquina de estados y el plan de ajuste de stock.
// Es lógica pura; la persistencia y los bloqueos viven en la capa de aplicación.
package document

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// NewLineItem construye una línea para el producto dado.
// Si unitPrice es nil se toma el precio actual del producto; el precio queda
// congelado en la línea. Un precio explícito admite a lo sumo dos decimales y no
// supera MaxAmount.
// Subtotal = UnitPrice × Quantity, sin redondeo.
func NewLineItem(product *entity.Product, quantity int64, unitPrice *decimal.Decimal) (entity.LineItem, error) {
	if quantity <= 0 {
		return entity.LineItem{}, domain.ErrInvalidQuantity
	}
	if product == nil {
		return entity.LineItem{}, domain.ErrProductNotFound
	}
	price := product.Price
	if unitPrice != nil {
		if unitPrice.IsNegative() || unitPrice.GreaterThan(MaxAmount) ||
			!unitPrice.Equal(unitPrice.Round(currencyPlaces)) {
			return entity.LineItem{}, domain.ErrInvalidInput
		}
		price = *unitPrice
	}
	return entity.LineItem{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Quantity:  quantity,
		UnitPrice: price,
		Subtotal:  LineSubtotal(price, quantity),
	}, nil
}

// LineSubtotal precio × cantidad en aritmética decimal exacta.
func LineSubtotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}
