package repository

import "context"

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Products       ProductRepository
	Invoices       InvoiceRepository
	PurchaseOrders PurchaseOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback si no.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}
