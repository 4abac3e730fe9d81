package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo categorías en memoria; el nombre es único sin distinguir mayúsculas.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio de categorías sobre s.
func NewCategoryRepository(s *Store) *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) nameTaken(name, exceptID string) bool {
	for id, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) && id != exceptID {
			return true
		}
	}
	return false
}

// Create guarda la categoría.
func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(c.Name, "") {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByName busca sin distinguir mayúsculas.
func (r *CategoryRepo) GetByName(_ context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if strings.EqualFold(c.Name, name) {
			return &c, nil
		}
	}
	return nil, nil
}

// Update reemplaza la categoría existente.
func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return domain.ErrDuplicate
	}
	r.s.categories[c.ID] = *c
	return nil
}

// List devuelve una página de categorías.
func (r *CategoryRepo) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

// Delete deja huérfanos a los productos de la categoría (ON DELETE SET NULL).
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID == id {
			p.CategoryID = ""
			r.s.products[pid] = p
		}
	}
	return nil
}

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	s *Store
}

// NewSupplierRepository construye el repositorio de proveedores sobre s.
func NewSupplierRepository(s *Store) *SupplierRepo { return &SupplierRepo{s: s} }

// Create guarda el proveedor.
func (r *SupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sup.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

// Update reemplaza el proveedor existente.
func (r *SupplierRepo) Update(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[sup.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

// List devuelve una página de proveedores.
func (r *SupplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		all = append(all, &sup)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, limit, offset), nil
}

// Delete elimina el proveedor.
func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, po := range r.s.orders {
		if po.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.suppliers, id)
	return nil
}
