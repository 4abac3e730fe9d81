package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// PurchaseOrderRepository puerto de persistencia para PurchaseOrder y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, order *entity.PurchaseOrder) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error)
	Delete(ctx context.Context, id string) error
}
