// Package memory implementa los puertos de repositorio en memoria. Las transacciones se
// serializan con un mutex global y se revierten restaurando una copia del estado, lo que
// reproduce el efecto de los bloqueos FOR UPDATE de PostgreSQL. Se usa en tests.
package memory

import (
	"sync"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	txMu sync.Mutex // una transacción a la vez
	mu   sync.Mutex // protege los mapas

	products   map[string]entity.Product
	medicines  map[string]entity.Medicine
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	customers  map[string]entity.Customer
	employees  map[string]entity.Employee
	users      map[string]entity.User
	invoices   map[string]entity.Invoice
	orders     map[string]entity.PurchaseOrder
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{
		products:   map[string]entity.Product{},
		medicines:  map[string]entity.Medicine{},
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		customers:  map[string]entity.Customer{},
		employees:  map[string]entity.Employee{},
		users:      map[string]entity.User{},
		invoices:   map[string]entity.Invoice{},
		orders:     map[string]entity.PurchaseOrder{},
	}
}

type snapshot struct {
	products map[string]entity.Product
	invoices map[string]entity.Invoice
	orders   map[string]entity.PurchaseOrder
}

// snapshot copia lo que una transacción puede modificar.
func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		products: make(map[string]entity.Product, len(s.products)),
		invoices: make(map[string]entity.Invoice, len(s.invoices)),
		orders:   make(map[string]entity.PurchaseOrder, len(s.orders)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.invoices {
		snap.invoices[k] = copyInvoice(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = copyOrder(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.invoices = snap.invoices
	s.orders = snap.orders
}

func copyLines(lines []entity.LineItem) []entity.LineItem {
	if lines == nil {
		return nil
	}
	out := make([]entity.LineItem, len(lines))
	copy(out, lines)
	return out
}

func copyInvoice(inv entity.Invoice) entity.Invoice {
	inv.Lines = copyLines(inv.Lines)
	return inv
}

func copyOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	po.Lines = copyLines(po.Lines)
	return po
}

// page aplica limit/offset sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
