package payments

import (
	"context"

	"github.com/jhoicas/Agromercado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La verificación del saldo pendiente y la
// inserción del pago ocurren en un único ámbito serializado por orden
// (bloqueo de la fila de la orden).
type TxRunner interface {
	RunPayment(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		clientRepo repository.ClientRepository,
	) error) error
}
