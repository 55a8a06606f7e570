package loyalty

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Acumulación y canje de puntos se serializan
// por cuenta mediante bloqueo de fila.
type TxRunner interface {
	RunLoyalty(ctx context.Context, fn func(
		loyaltyRepo repository.LoyaltyRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
