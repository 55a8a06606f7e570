package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para perfiles de cliente.
type ClientRepository interface {
	Create(client *entity.ClientProfile) error
	GetByID(id string) (*entity.ClientProfile, error)
	GetByUserID(userID string) (*entity.ClientProfile, error)
	// GetForUpdate bloquea la fila del perfil (serializa los pagos BALANCE).
	GetForUpdate(id string) (*entity.ClientProfile, error)
	UpdateBalance(id string, balance decimal.Decimal) error
}

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListAdmins() ([]*entity.User, error)
}
