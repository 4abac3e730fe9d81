package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada para registro (auth). Role por defecto "empleado".
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
	Name     string `json:"name" validate:"omitempty,max=255"`
	Role     string `json:"role" validate:"omitempty,oneof=admin empleado"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// PersonRequest datos personales de un empleado.
type PersonRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastNames      string `json:"last_names" validate:"max=100"`
	Address        string `json:"address" validate:"max=255"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"max=30"`
	Identification string `json:"identification" validate:"required,max=30"`
}

// EmployeeRequest crea o actualiza un empleado con su persona anidada.
type EmployeeRequest struct {
	Person   PersonRequest   `json:"person" validate:"required"`
	Position string          `json:"position" validate:"max=100"`
	HireDate string          `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Salary   decimal.Decimal `json:"salary"`
	Role     string          `json:"role" validate:"omitempty,oneof=admin empleado"`
}

// PersonResponse datos personales en respuestas.
type PersonResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastNames      string `json:"last_names"`
	FullName       string `json:"full_name"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Identification string `json:"identification"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID       string          `json:"id"`
	Person   PersonResponse  `json:"person"`
	Position string          `json:"position"`
	HireDate string          `json:"hire_date"`
	Salary   decimal.Decimal `json:"salary"`
	Role     string          `json:"role"`
}
