package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/names"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo cliente. El DNI es único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validDNI(in.DNI); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDNI(ctx, in.DNI)
	if err != nil {
		return nil, fmt.Errorf("customer: buscar dni: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("dni %s: %w", in.DNI, domain.ErrDuplicate)
	}
	now := uc.now()
	c := &entity.Customer{
		ID:           uuid.New().String(),
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	applyCustomer(c, in)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Register alta pública de clientes. Solo crea el registro de cliente; el acceso
// a la API sigue reservado a usuarios creados por /auth/register.
func (uc *CustomerUseCase) Register(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	return uc.Create(ctx, in)
}

// Get obtiene un cliente por id.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.CustomerResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.CustomerResponse]{}, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return dto.NewListResponse(out, page), nil
}

// Update reemplaza los datos del cliente. Cambiar el DNI a uno ya usado es ErrDuplicate.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validDNI(in.DNI); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.DNI != c.DNI {
		other, err := uc.repo.GetByDNI(ctx, in.DNI)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, fmt.Errorf("dni %s: %w", in.DNI, domain.ErrDuplicate)
		}
	}
	applyCustomer(c, in)
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Delete elimina un cliente. Si tiene facturas el repositorio devuelve ErrConflict.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validDNI(dni string) error {
	if len(dni) != 8 {
		return fmt.Errorf("el DNI debe tener exactamente 8 dígitos: %w", domain.ErrInvalidInput)
	}
	for _, r := range dni {
		if r < '0' || r > '9' {
			return fmt.Errorf("el DNI debe contener solo números: %w", domain.ErrInvalidInput)
		}
	}
	return nil
}

func applyCustomer(c *entity.Customer, in dto.CustomerRequest) {
	c.FirstName = names.Normalize(in.FirstName)
	c.LastName = names.Normalize(in.LastName)
	c.Email = in.Email
	c.Address = in.Address
	c.DNI = in.DNI
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		FullName:     c.FullName(),
		Email:        c.Email,
		Address:      c.Address,
		DNI:          c.DNI,
		RegisteredAt: c.RegisteredAt,
	}
}
