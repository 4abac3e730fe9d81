package billing

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

// InvoiceUseCase crea y finaliza facturas. Finalizar descuenta el stock en la misma
// transacción que cambia el estado, así que el descuento ocurre una sola vez.
type InvoiceUseCase struct {
	txRunner     repository.TxRunner
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	adjuster     *inventory.Adjuster
	metrics      *metrics.DocumentMetrics
	log          *logger.Logger
	now          func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner repository.TxRunner,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	adjuster *inventory.Adjuster,
	m *metrics.DocumentMetrics,
	log *logger.Logger,
) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		adjuster:     adjuster,
		metrics:      m,
		log:          log.Component("billing"),
		now:          time.Now,
	}
}

// Create arma la factura, la guarda en DRAFT y, salvo que in.Draft sea true, la
// finaliza en la misma transacción. Si falta stock no queda nada persistido.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", in.CustomerID, domain.ErrNotFound)
	}
	employee, err := uc.employeeRepo.GetByID(ctx, in.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener empleado: %w", err)
	}
	if employee == nil {
		return nil, fmt.Errorf("empleado %s: %w", in.EmployeeID, domain.ErrNotFound)
	}

	lines, products, err := inventory.BuildLines(ctx, uc.productRepo, in.Items)
	if err != nil {
		return nil, err
	}
	totals := document.Totalize(lines)
	if err := totals.Validate(); err != nil {
		return nil, err
	}

	now := uc.now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		EmployeeID: employee.ID,
		CustomerID: customer.ID,
		Date:       now,
		Status:     entity.StatusDraft,
		Subtotal:   totals.Subtotal,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Lines:      lines,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var finalized bool
	err = uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		if err := repos.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		if in.Draft {
			return nil
		}
		finalized, err = uc.finalizeInTx(ctx, repos, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	if finalized {
		uc.metrics.IncFinalized(metrics.KindInvoice)
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("status", string(inv.Status)).
		Str("total", inv.Total.StringFixed(2)).Msg("factura creada")

	resp := dto.InvoiceFrom(inv, productNames(products))
	return &resp, nil
}

// Finalize pasa una factura a FINALIZED y descuenta stock. Sobre una factura ya
// finalizada es un no-op que devuelve la factura tal cual.
func (uc *InvoiceUseCase) Finalize(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	var finalized bool
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		var err error
		inv, err = repos.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrDocumentNotFound
		}
		finalized, err = uc.finalizeInTx(ctx, repos, inv)
		return err
	})
	if err != nil {
		return nil, err
	}
	if finalized {
		uc.metrics.IncFinalized(metrics.KindInvoice)
	}
	resp := dto.InvoiceFrom(inv, uc.lineProductNames(ctx, inv.Lines))
	return &resp, nil
}

// finalizeInTx aplica la transición a FINALIZED sobre una factura ya bloqueada:
// descuenta stock, recalcula totales y fija la fecha de la venta. Devuelve true si el estado cambió.
func (uc *InvoiceUseCase) finalizeInTx(ctx context.Context, repos repository.TxRepositories, inv *entity.Invoice) (bool, error) {
	t, err := document.Evaluate(inv.Status, entity.StatusFinalized)
	if err != nil {
		return false, err
	}
	if !t.Changed {
		return false, nil
	}
	if t.Finalizes {
		if _, err := uc.adjuster.Apply(ctx, repos.Products, metrics.KindInvoice, inv.ID, document.Sale, inv.Lines); err != nil {
			return false, err
		}
	}
	totals := document.Totalize(inv.Lines)
	if err := totals.Validate(); err != nil {
		return false, fmt.Errorf("factura %s: %w", inv.ID, err)
	}
	inv.Subtotal, inv.Tax, inv.Total = totals.Subtotal, totals.Tax, totals.Total
	inv.Status = t.To
	// La venta cuenta en el período en que se finaliza, no en el del borrador.
	now := uc.now()
	inv.Date = now
	inv.UpdatedAt = now
	if err := repos.Invoices.UpdateStatus(ctx, inv); err != nil {
		return false, err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("from", string(t.From)).Str("to", string(t.To)).
		Msg("factura finalizada")
	return true, nil
}

// Get devuelve la factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("billing: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrDocumentNotFound
	}
	resp := dto.InvoiceFrom(inv, uc.lineProductNames(ctx, inv.Lines))
	return &resp, nil
}

// List lista cabeceras de facturas.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (dto.ListResponse[dto.InvoiceResponse], error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return dto.ListResponse[dto.InvoiceResponse]{}, fmt.Errorf("billing: listar facturas: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InvoiceFrom(inv, nil))
	}
	return dto.NewListResponse(out, page), nil
}

// Delete elimina una factura en DRAFT. Una factura finalizada ya movió stock y no se borra.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.TxRepositories) error {
		inv, err := repos.Invoices.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrDocumentNotFound
		}
		if inv.Status == entity.StatusFinalized {
			return fmt.Errorf("la factura %s ya está finalizada: %w", id, domain.ErrConflict)
		}
		return repos.Invoices.Delete(ctx, id)
	})
}

func (uc *InvoiceUseCase) lineProductNames(ctx context.Context, lines []entity.LineItem) map[string]string {
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

func productNames(products map[string]*entity.Product) map[string]string {
	names := make(map[string]string, len(products))
	for id, p := range products {
		names[id] = p.Name
	}
	return names
}
