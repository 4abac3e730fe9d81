package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	// Create persiste cabecera y líneas.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID devuelve la factura con sus líneas; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error)
	// UpdateStatus persiste estado, totales y fecha.
	UpdateStatus(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	// Delete elimina la factura; las líneas caen en cascada.
	Delete(ctx context.Context, id string) error
}
