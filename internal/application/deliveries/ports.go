package deliveries

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Marcar una livraison TERMINEE, pasar la
// orden a DELIVERED y acreditar fidelidad son una sola unidad.
type TxRunner interface {
	RunDelivery(ctx context.Context, fn func(
		deliveryRepo repository.DeliveryRepository,
		orderRepo repository.OrderRepository,
		loyaltyRepo repository.LoyaltyRepository,
	) error) error
}
