package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia para Employee y su Person asociada.
// Create y Update escriben ambas filas en la misma operación.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByIdentification(ctx context.Context, identification string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	List(ctx context.Context, limit, offset int) ([]*entity.Employee, error)
	Delete(ctx context.Context, id string) error
}
