package orders

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La orden, sus líneas y la livraison inicial
// se crean como una sola unidad.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		deliveryRepo repository.DeliveryRepository,
	) error) error
}
