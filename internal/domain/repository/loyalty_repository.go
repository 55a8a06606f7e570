package repository

import "github.com/jhoicas/Agromercado-api/internal/domain/entity"

// LoyaltyRepository define el puerto de persistencia para cuentas de
// fidelidad. El log de transacciones viaja embebido en la cuenta (JSONB).
type LoyaltyRepository interface {
	Create(account *entity.LoyaltyAccount) error
	GetByClientID(clientID string) (*entity.LoyaltyAccount, error)
	// GetForUpdate bloquea la fila de la cuenta (serializa acumulación y canje).
	GetForUpdate(clientID string) (*entity.LoyaltyAccount, error)
	// Update persiste puntos y log de transacciones como una sola escritura.
	Update(account *entity.LoyaltyAccount) error
}
