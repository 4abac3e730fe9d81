package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Person datos personales compartidos por empleados.
type Person struct {
	ID             string
	FirstName      string
	LastNames      string
	Address        string
	Email          string
	Phone          string
	Identification string
}

// Employee representa un empleado que emite facturas.
type Employee struct {
	ID        string
	Person    Person
	Position  string
	HireDate  time.Time
	Salary    decimal.Decimal
	Role      string // admin, empleado
	CreatedAt time.Time
	UpdatedAt time.Time
}
