package memory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones y revierte los cambios si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn en exclusión mutua con otras transacciones.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := r.s.snapshot()
	err := fn(repository.TxRepositories{
		Products:       NewProductRepository(r.s),
		Invoices:       NewInvoiceRepository(r.s),
		PurchaseOrders: NewPurchaseOrderRepository(r.s),
	})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
