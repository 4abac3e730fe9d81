package usecase

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

// EmployeeUseCase CRUD de empleados con su persona anidada.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra el empleado. La identificación de la persona es única.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	existing, err := uc.repo.GetByIdentification(ctx, in.Person.Identification)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("identificación %s: %w", in.Person.Identification, domain.ErrDuplicate)
	}
	now := time.Now()
	e := &entity.Employee{
		ID:        uuid.New().String(),
		Person:    entity.Person{ID: uuid.New().String()},
		CreatedAt: now,
	}
	if err := applyEmployee(e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = now
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(e), nil
}

// Update reemplaza los datos del empleado y de su persona.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyEmployee(e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

func (uc *EmployeeUseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.EmployeeResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.EmployeeResponse]{}, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return dto.NewListResponse(out, page), nil
}

// Delete elimina al empleado. Si ya emitió facturas el repositorio devuelve ErrConflict.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func applyEmployee(e *entity.Employee, in dto.EmployeeRequest) error {
	if in.Salary.IsNegative() {
		return fmt.Errorf("salario negativo: %w", domain.ErrInvalidInput)
	}
	var hire time.Time
	if in.HireDate != "" {
		d, err := time.Parse(dto.DateLayout, in.HireDate)
		if err != nil {
			return fmt.Errorf("fecha de contratación %q: %w", in.HireDate, domain.ErrInvalidInput)
		}
		hire = d
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmpleado
	}
	e.Person.FirstName = names.Normalize(in.Person.FirstName)
	e.Person.LastNames = names.Normalize(in.Person.LastNames)
	e.Person.Address = in.Person.Address
	e.Person.Email = in.Person.Email
	e.Person.Phone = in.Person.Phone
	e.Person.Identification = in.Person.Identification
	e.Position = in.Position
	e.HireDate = hire
	e.Salary = in.Salary
	e.Role = role
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID: e.ID,
		Person: dto.PersonResponse{
			ID:             e.Person.ID,
			FirstName:      e.Person.FirstName,
			LastNames:      e.Person.LastNames,
			FullName:       names.Join(e.Person.FirstName, e.Person.LastNames),
			Address:        e.Person.Address,
			Email:          e.Person.Email,
			Phone:          e.Person.Phone,
			Identification: e.Person.Identification,
		},
		Position: e.Position,
		HireDate: formatDate(e.HireDate),
		Salary:   e.Salary,
		Role:     e.Role,
	}
}
