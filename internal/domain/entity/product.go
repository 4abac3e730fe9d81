package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible de la farmacia.
// Stock es la cantidad disponible (nunca negativa); solo lo modifica el ajuste de stock
// al finalizar un documento o la reposición externa.
type Product struct {
	ID             string
	Name           string
	Description    string
	Presentation   string // ej. "caja x 20 tabletas"
	ExpirationDate time.Time
	SupplierID     string
	CategoryID     string
	ImageURL       string
	Stock          int64
	Price          decimal.Decimal // precio de venta, 2 decimales
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Medicine marca un producto como medicamento (relación 1:1 con Product).
type Medicine struct {
	ID                   string
	ProductID            string
	PrescriptionRequired bool
	CreatedAt            time.Time
}
