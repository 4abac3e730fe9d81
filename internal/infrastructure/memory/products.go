package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MedicineRepository = (*MedicineRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

// NewProductRepository construye el repositorio de productos sobre s.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

// Create guarda el producto.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.Stock < 0 {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update conserva el stock almacenado.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	next := *p
	next.Stock = cur.Stock
	next.CreatedAt = cur.CreatedAt
	r.s.products[p.ID] = next
	return nil
}

// List devuelve una página de productos.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Product
	for _, p := range r.s.products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		all = append(all, &p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, f.Limit, f.Offset), nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	return nil
}

// GetStockForUpdate no bloquea nada: el TxRunner ya serializa las transacciones.
func (r *ProductRepo) GetStockForUpdate(_ context.Context, ids []string) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	levels := make(map[string]int64, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			levels[id] = p.Stock
		}
	}
	return levels, nil
}

// UpdateStock fija el stock de un producto; rechaza valores negativos.
func (r *ProductRepo) UpdateStock(_ context.Context, id string, stock int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	if stock < 0 {
		return fmt.Errorf("stock negativo para %s: %w", id, domain.ErrInsufficientStock)
	}
	p.Stock = stock
	r.s.products[id] = p
	return nil
}

// MedicineRepo medicamentos en memoria.
type MedicineRepo struct {
	s *Store
}

// NewMedicineRepository construye el repositorio de medicamentos sobre s.
func NewMedicineRepository(s *Store) *MedicineRepo { return &MedicineRepo{s: s} }

// Create guarda el medicamento.
func (r *MedicineRepo) Create(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	for _, other := range r.s.medicines {
		if other.ProductID == m.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.s.medicines[m.ID] = *m
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MedicineRepo) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.medicines[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Update reemplaza el medicamento existente.
func (r *MedicineRepo) Update(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.medicines[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.products[m.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.medicines[m.ID] = *m
	return nil
}

// List devuelve una página de medicamentos.
func (r *MedicineRepo) List(_ context.Context, limit, offset int) ([]*entity.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []*entity.Medicine
	for _, m := range r.s.medicines {
		all = append(all, &m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

// Delete elimina el medicamento.
func (r *MedicineRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.medicines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.medicines, id)
	return nil
}
