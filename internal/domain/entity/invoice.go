package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura de venta. Subtotal, Tax y Total son consistentes entre sí
// (Total = Subtotal + Tax) una vez calculados.
type Invoice struct {
	ID         string
	EmployeeID string
	CustomerID string
	Date       time.Time
	Status     DocumentStatus
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal // IGV
	Total      decimal.Decimal
	Lines      []LineItem
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
