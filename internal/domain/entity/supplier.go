package entity

import "time"

// Supplier representa un proveedor al que se emiten pedidos de compra.
type Supplier struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
