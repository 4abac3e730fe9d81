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
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se fija al crear;
// después cambia únicamente al finalizar facturas o pedidos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo, now: time.Now}
}

// Create crea un nuevo producto con su stock inicial.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Stock < 0 {
		return nil, fmt.Errorf("stock inicial negativo: %w", domain.ErrInvalidInput)
	}
	if err := validPrice(in.Price); err != nil {
		return nil, err
	}
	now := uc.now()
	exp, err := parseExpiration(in.ExpirationDate, now)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		Presentation:   in.Presentation,
		ExpirationDate: exp,
		SupplierID:     in.SupplierID,
		CategoryID:     in.CategoryID,
		ImageURL:       in.ImageURL,
		Stock:          in.Stock,
		Price:          in.Price,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock; las líneas ya emitidas
// conservan el precio con el que se crearon.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	now := uc.now()
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Presentation != nil {
		product.Presentation = *in.Presentation
	}
	if in.ExpirationDate != nil {
		exp, err := parseExpiration(*in.ExpirationDate, now)
		if err != nil {
			return nil, err
		}
		product.ExpirationDate = exp
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Price != nil {
		if err := validPrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	var categoryID, supplierID string
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
		product.CategoryID = categoryID
	}
	if in.SupplierID != nil {
		supplierID = *in.SupplierID
		product.SupplierID = supplierID
	}
	if err := uc.checkRefs(ctx, categoryID, supplierID); err != nil {
		return nil, err
	}
	product.UpdatedAt = now
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string, page dto.PageRequest) (dto.ListResponse[dto.ProductResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{CategoryID: categoryID, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return dto.ListResponse[dto.ProductResponse]{}, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return dto.NewListResponse(items, page), nil
}

// ListByCategory lista los productos de una categoría existente.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID string, page dto.PageRequest) (dto.ListResponse[dto.ProductResponse], error) {
	cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return dto.ListResponse[dto.ProductResponse]{}, err
	}
	if cat == nil {
		return dto.ListResponse[dto.ProductResponse]{}, fmt.Errorf("categoría %s: %w", categoryID, domain.ErrNotFound)
	}
	return uc.List(ctx, categoryID, page)
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, supplierID string) error {
	if categoryID != "" {
		cat, err := uc.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("categoría %s no existe: %w", categoryID, domain.ErrInvalidInput)
		}
	}
	if supplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return fmt.Errorf("proveedor %s no existe: %w", supplierID, domain.ErrInvalidInput)
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Presentation:   p.Presentation,
		ExpirationDate: formatDate(p.ExpirationDate),
		SupplierID:     p.SupplierID,
		CategoryID:     p.CategoryID,
		ImageURL:       p.ImageURL,
		Stock:          p.Stock,
		Price:          p.Price,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
