package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Agromercado-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
// Las líneas viajan con la orden (agregado); el borrado es en cascada.
type OrderRepository interface {
	Create(order *entity.Order) error
	// GetByID devuelve la orden con sus líneas cargadas.
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE); es el
	// punto de serialización de pagos y transiciones de estado.
	GetForUpdate(id string) (*entity.Order, error)
	UpdateStatus(id, status string) error
	UpdateTotal(id string, total decimal.Decimal) error
	AddLine(line *entity.OrderLine) error
	UpdateLine(line *entity.OrderLine) error
	DeleteLine(lineID string) error
	ListByClient(clientID string, limit, offset int) ([]*entity.Order, error)
}

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	// SumPaidByOrder devuelve la suma de montos con estado PAID de la orden.
	SumPaidByOrder(orderID string) (decimal.Decimal, error)
	ListByOrder(orderID string) ([]*entity.Payment, error)
}
