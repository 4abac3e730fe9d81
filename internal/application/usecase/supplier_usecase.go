package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TopSuppliersLimit tamaño del ranking de proveedores.
const TopSuppliersLimit = 10

// SupplierUseCase CRUD de proveedores y ranking por compras.
type SupplierUseCase struct {
	repo       repository.SupplierRepository
	reportRepo repository.ReportRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, reportRepo repository.ReportRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, reportRepo: reportRepo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name, s.Address, s.Phone, s.Email = in.Name, in.Address, in.Phone, in.Email
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.SupplierResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.SupplierResponse]{}, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return dto.NewListResponse(out, page), nil
}

// Delete elimina un proveedor sin pedidos; con pedidos el repositorio devuelve ErrConflict.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Top devuelve los proveedores con mayor monto comprado en pedidos completados.
func (uc *SupplierUseCase) Top(ctx context.Context) ([]dto.TopSupplierResponse, error) {
	rows, err := uc.reportRepo.GetTopSuppliers(ctx, repository.Period{}, TopSuppliersLimit)
	if err != nil {
		return nil, err
	}
	return TopSuppliersFrom(rows), nil
}

// TopSuppliersFrom mapea el ranking del repositorio.
func TopSuppliersFrom(rows []repository.SupplierPurchasesResult) []dto.TopSupplierResponse {
	out := make([]dto.TopSupplierResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSupplierResponse{
			SupplierID:   r.SupplierID,
			SupplierName: r.SupplierName,
			OrderCount:   r.OrderCount,
			Total:        r.Total,
		})
	}
	return out
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, Name: s.Name, Address: s.Address, Phone: s.Phone, Email: s.Email}
}
