package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// BuildLines convierte los ítems del request en líneas con el precio congelado.
// Devuelve también los productos leídos, indexados por id.
func BuildLines(
	ctx context.Context,
	products repository.ProductRepository,
	items []dto.LineItemRequest,
) ([]entity.LineItem, map[string]*entity.Product, error) {
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("el documento no tiene líneas: %w", domain.ErrInvalidInput)
	}
	byID := make(map[string]*entity.Product, len(items))
	lines := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidQuantity
		}
		product, ok := byID[item.ProductID]
		if !ok {
			var err error
			product, err = products.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, nil, fmt.Errorf("obtener producto: %w", err)
			}
			if product == nil {
				return nil, nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			byID[item.ProductID] = product
		}
		line, err := document.NewLineItem(product, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, line)
	}
	return lines, byID, nil
}
