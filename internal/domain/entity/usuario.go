package entity

import "time"

// Roles válidos para Usuario.
const (
	RoleAdmin          = "admin"
	RoleMensajeroLider = "mensajero-lider"
	RoleMensajero      = "mensajero"
)

// Usuario representa una persona con acceso al dashboard.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Nombre       string // para mensajeros coincide con pedidos.mensajero_asignado
	Role         string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
