package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// ProductFilter filtros opcionales para listar productos.
type ProductFilter struct {
	CategoryID string
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update no toca Stock: el stock solo cambia vía UpdateStock.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error

	// GetStockForUpdate bloquea las filas (SELECT ... FOR UPDATE) en el orden recibido
	// y devuelve el stock actual por id. Solo tiene sentido dentro de una transacción.
	GetStockForUpdate(ctx context.Context, ids []string) (map[string]int64, error)
	// UpdateStock fija el stock de un producto. Falla si el valor es negativo.
	UpdateStock(ctx context.Context, id string, stock int64) error
}

// MedicineRepository puerto de persistencia para Medicine.
type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	Update(ctx context.Context, medicine *entity.Medicine) error
	List(ctx context.Context, limit, offset int) ([]*entity.Medicine, error)
	Delete(ctx context.Context, id string) error
}
