package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. PENDING -> EN_COURS (pago completo) -> DELIVERED
// (proceso externo de entrega) -> terminal; PENDING/EN_COURS -> CANCELLED.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusEnCours   = "EN_COURS"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Order representa una comanda de un cliente. Total se deriva siempre de las
// líneas; las líneas pertenecen en exclusiva a la orden (borrado en cascada).
type Order struct {
	ID          string
	ClientID    string
	DateOrdered time.Time
	Status      string
	Total       decimal.Decimal
	Lines       []OrderLine
}

// OrderLine es una línea de la orden. UnitPrice se congela del precio de
// venta del producto al momento de crear la línea.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal devuelve cantidad por precio unitario.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ComputeTotal re-deriva el total desde las líneas actuales. Es idempotente:
// dos llamadas sin cambios en las líneas producen el mismo valor.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsTerminal indica si el estado no admite más transiciones.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}
