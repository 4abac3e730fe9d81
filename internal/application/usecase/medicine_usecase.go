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

// MedicineUseCase marca productos como medicamentos (1:1 con Product).
type MedicineUseCase struct {
	repo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(repo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{repo: repo}
}

// Create registra el medicamento. Un producto solo puede ser un medicamento una vez.
func (uc *MedicineUseCase) Create(ctx context.Context, in dto.MedicineRequest) (*dto.MedicineResponse, error) {
	m := &entity.Medicine{
		ID:                   uuid.New().String(),
		ProductID:            in.ProductID,
		PrescriptionRequired: in.PrescriptionRequired,
		CreatedAt:            time.Now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMedicineResponse(m), nil
}

func (uc *MedicineUseCase) GetByID(ctx context.Context, id string) (*dto.MedicineResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return toMedicineResponse(m), nil
}

func (uc *MedicineUseCase) Update(ctx context.Context, id string, in dto.MedicineRequest) (*dto.MedicineResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	m.ProductID = in.ProductID
	m.PrescriptionRequired = in.PrescriptionRequired
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMedicineResponse(m), nil
}

func (uc *MedicineUseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.MedicineResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.MedicineResponse]{}, err
	}
	out := make([]dto.MedicineResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMedicineResponse(m))
	}
	return dto.NewListResponse(out, page), nil
}

func (uc *MedicineUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:                   m.ID,
		ProductID:            m.ProductID,
		PrescriptionRequired: m.PrescriptionRequired,
		CreatedAt:            m.CreatedAt,
	}
}
