package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder pedido de compra a un proveedor. Al completarse repone stock.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	OrderDate  time.Time
	Status     DocumentStatus
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Lines      []LineItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
