package entity

import "time"

// Roles válidos para User y Employee.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
)

// User representa un usuario con acceso a la API.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, empleado
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
