// Package purchasing gestiona pedidos de compra a proveedores. Completar un pedido
// repone stock dentro de la misma transacción que cambia su estado.
package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/application/inventory"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/document"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/logger"
	"github.com/jhoicas/Farmacia-api/pkg/metrics"
)

// UseCase casos de uso de pedidos de compra.
type UseCase struct {
	txRunner     repository.TxRunner
	orderRepo    repository.PurchaseOrderRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	adjuster     *inventory.Adjuster
	metrics      *metrics.DocumentMetrics
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	adjuster *inventory.Adjuster,
	m *metrics.DocumentMetrics,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		adjuster:     adjuster,
		metrics:      m,
		log:          log.Component("purchasing"),
		now:          time.Now,
	}
}

// Create registra un pedido en DRAFT. Cada línea usa el precio de compra indicado o,
// si no viene, el precio actual del producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("purchasing: obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %s: %w", in.SupplierID, domain.ErrNotFound)
	}

	now := uc.now()
	orderDate := now
	if in.OrderDate != "" {
		orderDate, err = time.Parse(dto.DateLayout, in.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de pedido %q: %w", in.OrderDate, domain.ErrInvalidInput)
		}
	}

	lines, products, err := inventory.BuildLines(ctx, uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}
	totals := document.Totalize(lines)
	if err := totals.Validate(); err != nil {
		return nil, err
	}
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: supplier.ID,
		OrderDate:  orderDate,
		Status:     entity.StatusDraft,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.orderRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", po.ID).Str("supplier_id", po.SupplierID).
		Str("total", po.Total.StringFixed(2)).Msg("pedido de compra creado")

	names := make(map[string]string, len(products))
	for id, p := range products {
		names[id] = p.Name
	}
	resp := dto.PurchaseOrderFrom(po, names)
	return &resp, nil
}

// UpdateStatus avanza el estado del pedido. Entrar a FINALIZED suma las cantidades
// al stock; pedir el estado actual no hace nada.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.PurchaseOrderResponse, error) {
	target, err := document.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("estado %q: %w", status, err)
	}

	var po *entity.PurchaseOrder
	var t document.Transition
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		po, err = repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrDocumentNotFound
		}
		t, err = document.Evaluate(po.Status, target)
		if err != nil {
			return err
		}
		if !t.Changed {
			return nil
		}
		if t.Finalizes {
			if _, err := uc.adjuster.Apply(ctx, repos.Products, metrics.KindPurchaseOrder, po.ID, document.Replenishment, po.Lines); err != nil {
				return err
			}
		}
		stored := document.Totals{Subtotal: po.Subtotal, Tax: po.Tax, Total: po.Total}
		if err := stored.Validate(); err != nil {
			return fmt.Errorf("pedido %s: %w", po.ID, err)
		}
		po.Status = t.To
		po.UpdatedAt = uc.now()
		return repos.PurchaseOrders.UpdateStatus(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	if t.Changed {
		uc.log.Info().Str("order_id", po.ID).Str("from", string(t.From)).Str("to", string(t.To)).
			Bool("stock", t.Finalizes).Msg("estado de pedido actualizado")
	}
	if t.Finalizes {
		uc.metrics.IncFinalized(metrics.KindPurchaseOrder)
	}
	resp := dto.PurchaseOrderFrom(po, uc.lineProductNames(ctx, po.Lines))
	return &resp, nil
}

// Get devuelve el pedido con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("purchasing: obtener pedido: %w", err)
	}
	if po == nil {
		return nil, domain.ErrDocumentNotFound
	}
	resp := dto.PurchaseOrderFrom(po, uc.lineProductNames(ctx, po.Lines))
	return &resp, nil
}

// List lista cabeceras de pedidos.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.PurchaseOrderResponse], error) {
	page.DefaultPage()
	list, err := uc.orderRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.PurchaseOrderResponse]{}, fmt.Errorf("purchasing: listar pedidos: %w", err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, dto.PurchaseOrderFrom(po, nil))
	}
	return dto.NewListResponse(out, page), nil
}

// Delete elimina un pedido que todavía no repuso stock.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		po, err := repos.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrDocumentNotFound
		}
		if po.Status == entity.StatusFinalized {
			return fmt.Errorf("el pedido %s ya está completado: %w", id, domain.ErrConflict)
		}
		return repos.PurchaseOrders.Delete(ctx, id)
	})
}

func (uc *UseCase) lineProductNames(ctx context.Context, lines []entity.LineItem) map[string]string {
	names := make(map[string]string, len(lines))
	for _, l := range lines {
		if _, ok := names[l.ProductID]; ok {
			continue
		}
		if p, err := uc.productRepo.GetByID(ctx, l.ProductID); err == nil && p != nil {
			names[l.ProductID] = p.Name
		}
	}
	return names
}
