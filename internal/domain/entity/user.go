package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User usuario interno: llama a la API y puede ser destinatario de reportes.
// TZ es la zona horaria preferida (IANA); vacío = UTC.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active, inactive, suspended
	TZ           string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
