package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin    = "ADMIN"
	RolOperador = "OPERADOR"
)

// Usuario representa un usuario del sistema. Es la identidad del actor que
// queda registrada en el historial de movimientos.
type Usuario struct {
	ID             string
	Username       string
	PasswordHash   string // bcrypt, nunca en claro después de persistir
	NombreCompleto string
	Rol            string
	Activo         bool
	FechaCreacion  time.Time
}
