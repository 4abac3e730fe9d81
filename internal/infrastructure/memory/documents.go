package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var (
	_ repository.InvoiceRepository       = (*InvoiceRepo)(nil)
	_ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)
)

// checkDocumentID rechaza ids que una columna UUID de PostgreSQL no aceptaría.
func checkDocumentID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("memory: id de documento %q inválido: %w", id, err)
	}
	return nil
}

// InvoiceRepo facturas en memoria.
type InvoiceRepo struct {
	s *Store
}

// NewInvoiceRepository construye el repositorio de facturas sobre s.
func NewInvoiceRepository(s *Store) *InvoiceRepo { return &InvoiceRepo{s: s} }

// Create guarda la factura.
func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, l := range inv.Lines {
		if _, ok := r.s.products[l.ProductID]; !ok {
			return &domain.ProductNotFoundError{ProductID: l.ProductID}
		}
	}
	for i := range inv.Lines {
		inv.Lines[i].DocumentID = inv.ID
	}
	r.s.invoices[inv.ID] = copyInvoice(*inv)
	return nil
}

// GetByID devuelve (nil, nil) si no existe y error si id no es un UUID.
func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if err := checkDocumentID(id); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	inv = copyInvoice(inv)
	return &inv, nil
}

// GetForUpdate equivale a GetByID: el TxRunner ya serializa las transacciones.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus persiste estado, totales y fecha.
func (r *InvoiceRepo) UpdateStatus(_ context.Context, inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoices[inv.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	cur.Status = inv.Status
	cur.Subtotal, cur.Tax, cur.Total = inv.Subtotal, inv.Tax, inv.Total
	cur.Date = inv.Date
	cur.UpdatedAt = inv.UpdatedAt
	r.s.invoices[inv.ID] = cur
	return nil
}

// List devuelve una página de facturas.
func (r *InvoiceRepo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.Invoice, 0, len(r.s.invoices))
	for _, inv := range r.s.invoices {
		inv.Lines = nil
		all = append(all, &inv)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date.Equal(all[j].Date) {
			return all[i].ID < all[j].ID
		}
		return all[i].Date.After(all[j].Date)
	})
	return page(all, limit, offset), nil
}

// Delete elimina la factura.
func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	if err := checkDocumentID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

// PurchaseOrderRepo pedidos de compra en memoria.
type PurchaseOrderRepo struct {
	s *Store
}

// NewPurchaseOrderRepository construye el repositorio de pedidos de compra sobre s.
func NewPurchaseOrderRepository(s *Store) *PurchaseOrderRepo { return &PurchaseOrderRepo{s: s} }

// Create guarda el pedido.
func (r *PurchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[po.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, l := range po.Lines {
		if _, ok := r.s.products[l.ProductID]; !ok {
			return &domain.ProductNotFoundError{ProductID: l.ProductID}
		}
	}
	for i := range po.Lines {
		po.Lines[i].DocumentID = po.ID
	}
	r.s.orders[po.ID] = copyOrder(*po)
	return nil
}

// GetByID devuelve (nil, nil) si no existe y error si id no es un UUID.
func (r *PurchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	if err := checkDocumentID(id); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	po, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	po = copyOrder(po)
	return &po, nil
}

// GetForUpdate equivale a GetByID: el TxRunner ya serializa las transacciones.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

// UpdateStatus persiste estado y totales.
func (r *PurchaseOrderRepo) UpdateStatus(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.orders[po.ID]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	cur.Status = po.Status
	cur.Subtotal, cur.Tax, cur.Total = po.Subtotal, po.Tax, po.Total
	cur.UpdatedAt = po.UpdatedAt
	r.s.orders[po.ID] = cur
	return nil
}

// List devuelve una página de pedidos de compra.
func (r *PurchaseOrderRepo) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.PurchaseOrder, 0, len(r.s.orders))
	for _, po := range r.s.orders {
		po.Lines = nil
		all = append(all, &po)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].OrderDate.Equal(all[j].OrderDate) {
			return all[i].ID < all[j].ID
		}
		return all[i].OrderDate.After(all[j].OrderDate)
	})
	return page(all, limit, offset), nil
}

// Delete elimina el pedido.
func (r *PurchaseOrderRepo) Delete(_ context.Context, id string) error {
	if err := checkDocumentID(id); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.s.orders, id)
	return nil
}
