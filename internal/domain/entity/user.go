package entity

import "time"

// Roles de usuario de la plataforma.
const (
	RoleAdmin      = "admin"
	RoleAgricultor = "agricultor" // vendedor de productos, dueño de stock
	RoleRepartidor = "repartidor" // livreur
	RoleCliente    = "cliente"
)

// User representa un usuario autenticable.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Language     string // "fr" por defecto
	Verified     bool
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
