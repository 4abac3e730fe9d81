package entity

import "time"

// Customer representa un cliente de la farmacia (facturación).
type Customer struct {
	ID           string
	UserID       string // vacío si el cliente no tiene acceso al sistema
	FirstName    string
	LastName     string
	Email        string
	Address      string
	DNI          string // 8 dígitos, único
	RegisteredAt time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve nombre y apellido separados por espacio.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
